package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"knoxtech-api/internal/domain"
)

type settingsRequest struct {
	SiteName     string `json:"site_name" binding:"required"`
	SupportEmail string `json:"support_email"`
	SupportPhone string `json:"support_phone"`
	Address      string `json:"address"`
	OutageBanner string `json:"outage_banner"`
}

type SettingsResponse struct {
	SiteName     string `json:"site_name"`
	SupportEmail string `json:"support_email"`
	SupportPhone string `json:"support_phone"`
	Address      string `json:"address"`
	OutageBanner string `json:"outage_banner"`
	UpdatedAt    string `json:"updated_at"`
}

func settingsToResponse(s domain.Settings) SettingsResponse {
	return SettingsResponse{
		SiteName:     s.SiteName,
		SupportEmail: s.SupportEmail,
		SupportPhone: s.SupportPhone,
		Address:      s.Address,
		OutageBanner: s.OutageBanner,
		UpdatedAt:    formatTime(s.UpdatedAt),
	}
}

func (h *Handler) getSettings(c *gin.Context) {
	settings, err := h.site.GetSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settingsToResponse(*settings))
}

func (h *Handler) updateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.site.UpdateSettings(c.Request.Context(), &domain.Settings{
		SiteName:     req.SiteName,
		SupportEmail: req.SupportEmail,
		SupportPhone: req.SupportPhone,
		Address:      req.Address,
		OutageBanner: req.OutageBanner,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settingsToResponse(*settings))
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

type ContactMessageResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

func messageToResponse(m domain.ContactMessage) ContactMessageResponse {
	return ContactMessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Subject:   m.Subject,
		Body:      m.Body,
		CreatedAt: formatTime(m.CreatedAt),
	}
}

func (h *Handler) submitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.site.SubmitMessage(c.Request.Context(), &domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, messageToResponse(*msg))
}

func (h *Handler) listContactMessages(c *gin.Context) {
	msgs, err := h.site.ListMessages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	resp := make([]ContactMessageResponse, len(msgs))
	for i := range msgs {
		resp[i] = messageToResponse(msgs[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) deleteContactMessage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.site.DeleteMessage(c.Request.Context(), id); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

type StorageObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified,omitempty"`
}

// listMedia exposes the uploaded-object inventory to the back office.
func (h *Handler) listMedia(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage service not configured"})
		return
	}

	objects, err := h.storage.ListObjects(c.Request.Context(), h.bucket, c.Query("prefix"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]StorageObjectResponse, len(objects))
	for i, obj := range objects {
		resp[i] = StorageObjectResponse{Key: obj.Key, Size: obj.Size}
		if obj.LastModified != nil && !obj.LastModified.IsZero() {
			v := formatTime(*obj.LastModified)
			resp[i].LastModified = &v
		}
	}
	c.JSON(http.StatusOK, resp)
}
