package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"knoxtech-api/internal/domain"
	"knoxtech-api/internal/storage"
)

const documentURLTTL = 15 * time.Minute

type invoiceRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	AmountCents   int64  `json:"amount_cents" binding:"required"`
	Status        string `json:"status"`
	DueDate       string `json:"due_date"`
}

type InvoiceResponse struct {
	ID            int64  `json:"id"`
	Number        string `json:"number"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	AmountCents   int64  `json:"amount_cents"`
	Status        string `json:"status"`
	DueDate       string `json:"due_date,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func invoiceToResponse(inv domain.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		CustomerName:  inv.CustomerName,
		CustomerEmail: inv.CustomerEmail,
		AmountCents:   inv.AmountCents,
		Status:        string(inv.Status),
		CreatedAt:     formatTime(inv.CreatedAt),
		UpdatedAt:     formatTime(inv.UpdatedAt),
	}
	if inv.DueDate != nil {
		resp.DueDate = formatTime(*inv.DueDate)
	}
	return resp
}

func (r invoiceRequest) toDomain(id int64) (*domain.Invoice, error) {
	inv := &domain.Invoice{
		ID:            id,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		AmountCents:   r.AmountCents,
		Status:        domain.InvoiceStatus(r.Status),
	}
	if r.DueDate != "" {
		due, err := time.Parse(time.RFC3339, r.DueDate)
		if err != nil {
			return nil, fmt.Errorf("invalid due_date: %w", err)
		}
		inv.DueDate = &due
	}
	return inv, nil
}

func (h *Handler) listInvoices(c *gin.Context) {
	invoices, err := h.billing.ListInvoices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	resp := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		resp[i] = invoiceToResponse(invoices[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	inv, err := req.toDomain(0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.billing.CreateInvoice(c.Request.Context(), inv)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, invoiceToResponse(*created))
}

func (h *Handler) getInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	inv, err := h.billing.GetInvoice(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoiceToResponse(*inv))
}

func (h *Handler) updateInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	inv, err := req.toDomain(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if inv.Status == "" {
		inv.Status = domain.InvoiceDraft
	}

	existing, err := h.billing.GetInvoice(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	inv.Number = existing.Number

	if err := h.billing.UpdateInvoice(c.Request.Context(), inv); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoiceToResponse(*inv))
}

func (h *Handler) deleteInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.billing.DeleteInvoice(c.Request.Context(), id); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

type receiptRequest struct {
	InvoiceID    int64  `json:"invoice_id"`
	CustomerName string `json:"customer_name" binding:"required"`
	AmountCents  int64  `json:"amount_cents" binding:"required"`
	Method       string `json:"method"`
	IssuedAt     string `json:"issued_at"`
}

type ReceiptResponse struct {
	ID               int64  `json:"id"`
	Number           string `json:"number"`
	InvoiceID        int64  `json:"invoice_id,omitempty"`
	CustomerName     string `json:"customer_name"`
	AmountCents      int64  `json:"amount_cents"`
	Method           string `json:"method"`
	DocumentLocation string `json:"document_location,omitempty"`
	IssuedAt         string `json:"issued_at"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

func receiptToResponse(rec domain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ID:               rec.ID,
		Number:           rec.Number,
		InvoiceID:        rec.InvoiceID,
		CustomerName:     rec.CustomerName,
		AmountCents:      rec.AmountCents,
		Method:           rec.Method,
		DocumentLocation: rec.DocumentLocation,
		IssuedAt:         formatTime(rec.IssuedAt),
		CreatedAt:        formatTime(rec.CreatedAt),
		UpdatedAt:        formatTime(rec.UpdatedAt),
	}
}

func (h *Handler) listReceipts(c *gin.Context) {
	receipts, err := h.billing.ListReceipts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	resp := make([]ReceiptResponse, len(receipts))
	for i := range receipts {
		resp[i] = receiptToResponse(receipts[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createReceipt(c *gin.Context) {
	var req receiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec := &domain.Receipt{
		InvoiceID:    req.InvoiceID,
		CustomerName: req.CustomerName,
		AmountCents:  req.AmountCents,
		Method:       req.Method,
	}
	if req.IssuedAt != "" {
		issued, err := time.Parse(time.RFC3339, req.IssuedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid issued_at"})
			return
		}
		rec.IssuedAt = issued
	}

	created, err := h.billing.CreateReceipt(c.Request.Context(), rec)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, receiptToResponse(*created))
}

func (h *Handler) getReceipt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rec, err := h.billing.GetReceipt(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, receiptToResponse(*rec))
}

func (h *Handler) deleteReceipt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	rec, err := h.billing.GetReceipt(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, err)
		return
	}

	if err := h.billing.DeleteReceipt(c.Request.Context(), id); err != nil {
		writeRepoError(c, err)
		return
	}

	// Best effort: a dangling document is a warning, not a failure.
	if rec.DocumentLocation != "" && h.storage != nil {
		if bucket, key, err := storage.ParseLocation(rec.DocumentLocation); err == nil {
			if err := h.storage.DeleteObject(c.Request.Context(), bucket, key); err != nil {
				h.logger.Warnf("delete receipt document %s: %v", rec.DocumentLocation, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) uploadReceiptDocument(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage service not configured"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}
	rec, err := h.billing.GetReceipt(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, err)
		return
	}

	location, err := h.uploadFormFile(c, fmt.Sprintf("receipts/%s/%s", rec.Number, uuid.NewString()))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.billing.AttachDocument(c.Request.Context(), id, location)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, receiptToResponse(*updated))
}

func (h *Handler) getReceiptDocument(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage service not configured"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}
	rec, err := h.billing.GetReceipt(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	if rec.DocumentLocation == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "receipt has no document"})
		return
	}

	bucket, key, err := storage.ParseLocation(rec.DocumentLocation)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	url, err := h.storage.PresignGet(c.Request.Context(), bucket, key, documentURLTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "expires_in_seconds": int(documentURLTTL.Seconds())})
}
