package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"knoxtech-api/internal/auth"
	"knoxtech-api/internal/service"
	"knoxtech-api/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users   service.UserService
	content service.ContentService
	catalog service.CatalogService
	billing service.BillingService
	site    service.SiteService

	tokens  *auth.Tokens
	gate    *auth.Gate
	storage storage.Service
	bucket  string
	logger  *logrus.Logger
}

func NewHandler(
	users service.UserService,
	content service.ContentService,
	catalog service.CatalogService,
	billing service.BillingService,
	site service.SiteService,
	tokens *auth.Tokens,
	store storage.Service,
	bucket string,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		users:   users,
		content: content,
		catalog: catalog,
		billing: billing,
		site:    site,
		tokens:  tokens,
		gate:    auth.NewGate(tokens),
		storage: store,
		bucket:  bucket,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		api.POST("/auth/login", h.login)
		api.GET("/auth/verify", h.requireAuth(), h.verify)

		api.GET("/posts", h.listPosts)
		api.GET("/posts/:slug", h.optionalAuth(), h.getPost)
		api.GET("/plans", h.listPlans)
		api.GET("/faqs", h.listFAQs)
		api.GET("/technicians", h.listTechnicians)
		api.POST("/contact", h.submitContact)
	}

	// Any verified account.
	authed := api.Group("", h.requireAuth())
	{
		authed.GET("/settings", h.getSettings)
		authed.PUT("/settings", h.updateSettings)

		authed.GET("/invoices", h.listInvoices)
		authed.POST("/invoices", h.createInvoice)
		authed.GET("/invoices/:id", h.getInvoice)
		authed.PUT("/invoices/:id", h.updateInvoice)
		authed.DELETE("/invoices/:id", h.deleteInvoice)

		authed.GET("/receipts", h.listReceipts)
		authed.POST("/receipts", h.createReceipt)
		authed.GET("/receipts/:id", h.getReceipt)
		authed.DELETE("/receipts/:id", h.deleteReceipt)
		authed.POST("/receipts/:id/document", h.uploadReceiptDocument)
		authed.GET("/receipts/:id/document", h.getReceiptDocument)
	}

	// Admin role required.
	admin := api.Group("", h.requireAdmin())
	{
		admin.GET("/admin/posts", h.listAllPosts)
		admin.POST("/posts", h.createPost)
		admin.PUT("/posts/:slug", h.updatePost)
		admin.DELETE("/posts/:slug", h.deletePost)
		admin.POST("/posts/:slug/cover", h.uploadPostCover)

		admin.POST("/plans", h.createPlan)
		admin.PUT("/plans/:id", h.updatePlan)
		admin.DELETE("/plans/:id", h.deletePlan)

		admin.POST("/faqs", h.createFAQ)
		admin.PUT("/faqs/:id", h.updateFAQ)
		admin.DELETE("/faqs/:id", h.deleteFAQ)

		admin.POST("/technicians", h.createTechnician)
		admin.PUT("/technicians/:id", h.updateTechnician)
		admin.DELETE("/technicians/:id", h.deleteTechnician)

		admin.GET("/contact", h.listContactMessages)
		admin.DELETE("/contact/:id", h.deleteContactMessage)

		admin.GET("/media", h.listMedia)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func storageOptions(bucket, key, contentType string) storage.UploadOptions {
	return storage.UploadOptions{Bucket: bucket, Key: key, ContentType: contentType}
}
