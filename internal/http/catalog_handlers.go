package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"knoxtech-api/internal/domain"
	"knoxtech-api/internal/repository"
)

type planRequest struct {
	Name        string `json:"name" binding:"required"`
	SpeedMbps   int    `json:"speed_mbps" binding:"required"`
	PriceCents  int64  `json:"price_cents"`
	Description string `json:"description"`
	Featured    bool   `json:"featured"`
	SortOrder   int    `json:"sort_order"`
}

type PlanResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	SpeedMbps   int    `json:"speed_mbps"`
	PriceCents  int64  `json:"price_cents"`
	Description string `json:"description"`
	Featured    bool   `json:"featured"`
	SortOrder   int    `json:"sort_order"`
}

func planToResponse(p domain.Plan) PlanResponse {
	return PlanResponse{
		ID:          p.ID,
		Name:        p.Name,
		SpeedMbps:   p.SpeedMbps,
		PriceCents:  p.PriceCents,
		Description: p.Description,
		Featured:    p.Featured,
		SortOrder:   p.SortOrder,
	}
}

func (h *Handler) listPlans(c *gin.Context) {
	plans, err := h.catalog.ListPlans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	resp := make([]PlanResponse, len(plans))
	for i := range plans {
		resp[i] = planToResponse(plans[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createPlan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := h.catalog.CreatePlan(c.Request.Context(), &domain.Plan{
		Name:        req.Name,
		SpeedMbps:   req.SpeedMbps,
		PriceCents:  req.PriceCents,
		Description: req.Description,
		Featured:    req.Featured,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, planToResponse(*plan))
}

func (h *Handler) updatePlan(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan := domain.Plan{
		ID:          id,
		Name:        req.Name,
		SpeedMbps:   req.SpeedMbps,
		PriceCents:  req.PriceCents,
		Description: req.Description,
		Featured:    req.Featured,
		SortOrder:   req.SortOrder,
	}
	if err := h.catalog.UpdatePlan(c.Request.Context(), &plan); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, planToResponse(plan))
}

func (h *Handler) deletePlan(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeletePlan(c.Request.Context(), id); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

type faqRequest struct {
	Question  string `json:"question" binding:"required"`
	Answer    string `json:"answer" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

type FAQResponse struct {
	ID        int64  `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	SortOrder int    `json:"sort_order"`
}

func (h *Handler) listFAQs(c *gin.Context) {
	faqs, err := h.catalog.ListFAQs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	resp := make([]FAQResponse, len(faqs))
	for i, f := range faqs {
		resp[i] = FAQResponse{ID: f.ID, Question: f.Question, Answer: f.Answer, SortOrder: f.SortOrder}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createFAQ(c *gin.Context) {
	var req faqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	faq, err := h.catalog.CreateFAQ(c.Request.Context(), &domain.FAQ{
		Question:  req.Question,
		Answer:    req.Answer,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, FAQResponse{ID: faq.ID, Question: faq.Question, Answer: faq.Answer, SortOrder: faq.SortOrder})
}

func (h *Handler) updateFAQ(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req faqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	faq := domain.FAQ{ID: id, Question: req.Question, Answer: req.Answer, SortOrder: req.SortOrder}
	if err := h.catalog.UpdateFAQ(c.Request.Context(), &faq); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, FAQResponse{ID: faq.ID, Question: faq.Question, Answer: faq.Answer, SortOrder: faq.SortOrder})
}

func (h *Handler) deleteFAQ(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteFAQ(c.Request.Context(), id); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

type technicianRequest struct {
	Name     string `json:"name" binding:"required"`
	Title    string `json:"title"`
	Region   string `json:"region"`
	Phone    string `json:"phone"`
	PhotoURL string `json:"photo_url"`
	Active   *bool  `json:"active"`
}

type TechnicianResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Region   string `json:"region"`
	Phone    string `json:"phone"`
	PhotoURL string `json:"photo_url"`
	Active   bool   `json:"active"`
}

func technicianToResponse(t domain.Technician) TechnicianResponse {
	return TechnicianResponse{
		ID:       t.ID,
		Name:     t.Name,
		Title:    t.Title,
		Region:   t.Region,
		Phone:    t.Phone,
		PhotoURL: t.PhotoURL,
		Active:   t.Active,
	}
}

func (h *Handler) listTechnicians(c *gin.Context) {
	techs, err := h.catalog.ListTechnicians(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	resp := make([]TechnicianResponse, len(techs))
	for i := range techs {
		resp[i] = technicianToResponse(techs[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createTechnician(c *gin.Context) {
	var req technicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	tech, err := h.catalog.CreateTechnician(c.Request.Context(), &domain.Technician{
		Name:     req.Name,
		Title:    req.Title,
		Region:   req.Region,
		Phone:    req.Phone,
		PhotoURL: req.PhotoURL,
		Active:   active,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, technicianToResponse(*tech))
}

func (h *Handler) updateTechnician(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req technicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	tech := domain.Technician{
		ID:       id,
		Name:     req.Name,
		Title:    req.Title,
		Region:   req.Region,
		Phone:    req.Phone,
		PhotoURL: req.PhotoURL,
		Active:   active,
	}
	if err := h.catalog.UpdateTechnician(c.Request.Context(), &tech); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, technicianToResponse(tech))
}

func (h *Handler) deleteTechnician(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteTechnician(c.Request.Context(), id); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// writeRepoError maps a repository miss to 404 and anything else to 500.
func writeRepoError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
