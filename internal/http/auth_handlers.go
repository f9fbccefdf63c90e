package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"knoxtech-api/internal/auth"
	"knoxtech-api/internal/domain"
	"knoxtech-api/internal/service"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: formatTime(user.CreatedAt),
		UpdatedAt: formatTime(user.UpdatedAt),
	}
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Store misses, password mismatches and storage failures all read
		// the same from outside; details go to the log only.
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.logger.Warnf("login failed for %s: %v", req.Email, err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
		return
	}

	token, err := h.tokens.Issue(auth.Identity{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		h.logger.Errorf("issue token for %s: %v", user.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userToResponse(user),
	})
}

// verify lets the client decide at page load whether a stored token is still
// worth trusting. The middleware already did the work; echo the identity back.
func (h *Handler) verify(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id.UserID)
	if err != nil {
		// Token verified but the account is gone; treat as unverifiable.
		h.logger.Warnf("verify: account %d missing: %v", id.UserID, err)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userToResponse(user)})
}
