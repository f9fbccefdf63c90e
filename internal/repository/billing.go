package repository

import (
	"context"

	"knoxtech-api/internal/domain"
)

// BillingRepository persists invoices and receipts.
type BillingRepository interface {
	Init(ctx context.Context) error

	CreateInvoice(ctx context.Context, inv *domain.Invoice) (int64, error)
	GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error)
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	UpdateInvoice(ctx context.Context, inv *domain.Invoice) error
	DeleteInvoice(ctx context.Context, id int64) error

	CreateReceipt(ctx context.Context, rec *domain.Receipt) (int64, error)
	GetReceipt(ctx context.Context, id int64) (*domain.Receipt, error)
	ListReceipts(ctx context.Context) ([]domain.Receipt, error)
	UpdateReceipt(ctx context.Context, rec *domain.Receipt) error
	DeleteReceipt(ctx context.Context, id int64) error
}
