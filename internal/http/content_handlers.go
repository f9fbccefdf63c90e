package http

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"knoxtech-api/internal/domain"
	"knoxtech-api/internal/repository"
)

type postRequest struct {
	Slug      string `json:"slug"`
	Title     string `json:"title" binding:"required"`
	Excerpt   string `json:"excerpt"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

type PostResponse struct {
	ID            int64  `json:"id"`
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Excerpt       string `json:"excerpt"`
	Body          string `json:"body"`
	Author        string `json:"author"`
	CoverLocation string `json:"cover_location,omitempty"`
	Published     bool   `json:"published"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func postToResponse(post domain.Post) PostResponse {
	return PostResponse{
		ID:            post.ID,
		Slug:          post.Slug,
		Title:         post.Title,
		Excerpt:       post.Excerpt,
		Body:          post.Body,
		Author:        post.Author,
		CoverLocation: post.CoverLocation,
		Published:     post.Published,
		CreatedAt:     formatTime(post.CreatedAt),
		UpdatedAt:     formatTime(post.UpdatedAt),
	}
}

func postsToResponse(posts []domain.Post) []PostResponse {
	resp := make([]PostResponse, len(posts))
	for i := range posts {
		resp[i] = postToResponse(posts[i])
	}
	return resp
}

func (h *Handler) listPosts(c *gin.Context) {
	posts, err := h.content.ListPublished(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, postsToResponse(posts))
}

func (h *Handler) listAllPosts(c *gin.Context) {
	posts, err := h.content.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, postsToResponse(posts))
}

func (h *Handler) getPost(c *gin.Context) {
	post, err := h.content.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repository.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "post not found"})
		return
	}
	if !post.Published {
		// Drafts are invisible on the public route even with a valid slug.
		if id, ok := currentIdentity(c); !ok || id.Role != domain.RoleAdmin {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
	}
	c.JSON(http.StatusOK, postToResponse(*post))
}

func (h *Handler) createPost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := &domain.Post{
		Slug:      req.Slug,
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Body:      req.Body,
		Published: req.Published,
	}
	if id, ok := currentIdentity(c); ok {
		post.Author = id.Email
	}

	created, err := h.content.Create(c.Request.Context(), post)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, postToResponse(*created))
}

func (h *Handler) updatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.content.Update(c.Request.Context(), c.Param("slug"), &domain.Post{
		Slug:      req.Slug,
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Body:      req.Body,
		Published: req.Published,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repository.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, postToResponse(*updated))
}

func (h *Handler) deletePost(c *gin.Context) {
	slug := c.Param("slug")
	if err := h.content.Delete(c.Request.Context(), slug); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repository.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": slug})
}

func (h *Handler) uploadPostCover(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage service not configured"})
		return
	}

	slug := c.Param("slug")
	if _, err := h.content.GetBySlug(c.Request.Context(), slug); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	location, err := h.uploadFormFile(c, fmt.Sprintf("covers/%s/%s", slug, uuid.NewString()))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.content.SetCover(c.Request.Context(), slug, location)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, postToResponse(*post))
}

// uploadFormFile stores the multipart "file" field under keyBase plus the
// original extension and returns the s3 location.
func (h *Handler) uploadFormFile(c *gin.Context, keyBase string) (string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", fmt.Errorf("file field is required: %w", err)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	return h.storage.UploadObject(c.Request.Context(), f, storageOptions(h.bucket, keyBase+filepath.Ext(fileHeader.Filename), fileHeader.Header.Get("Content-Type")))
}
