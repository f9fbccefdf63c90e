package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"knoxtech-api/internal/auth"
)

const identityKey = "identity"

// requireAuth runs the gate over the Authorization header. On success the
// verified identity is attached to the request context; on failure the
// request is aborted with a generic 401 and the internal reason stays in the
// server log.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		out := h.gate.Check(c.GetHeader("Authorization"))
		if out.Decision != auth.DecisionAuthorized {
			h.logger.WithField("path", c.FullPath()).Warnf("auth rejected: %v", out.Reason)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}
		c.Set(identityKey, out.Identity)
		c.Next()
	}
}

// requireAdmin is requireAuth plus the role gate. A verified non-admin gets
// 403; an unverifiable caller still gets 401.
func (h *Handler) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		out := h.gate.CheckAdmin(c.GetHeader("Authorization"))
		switch out.Decision {
		case auth.DecisionAuthorized:
			c.Set(identityKey, out.Identity)
			c.Next()
		case auth.DecisionForbidden:
			h.logger.WithField("path", c.FullPath()).Warnf("forbidden: %s is not admin", out.Identity.Email)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden"})
		default:
			h.logger.WithField("path", c.FullPath()).Warnf("auth rejected: %v", out.Reason)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		}
	}
}

// optionalAuth attaches an identity when the caller presents a valid token
// but never rejects the request. Public routes use it to let signed-in admins
// see more than anonymous visitors.
func (h *Handler) optionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if out := h.gate.Check(c.GetHeader("Authorization")); out.Decision == auth.DecisionAuthorized {
			c.Set(identityKey, out.Identity)
		}
		c.Next()
	}
}

// currentIdentity returns the identity attached by the middleware.
func currentIdentity(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}
