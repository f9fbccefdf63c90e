package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"knoxtech-api/internal/domain"
	"knoxtech-api/internal/repository"
)

// BillingService manages invoices and receipts for the back office.
type BillingService interface {
	CreateInvoice(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error)
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	UpdateInvoice(ctx context.Context, inv *domain.Invoice) error
	DeleteInvoice(ctx context.Context, id int64) error

	CreateReceipt(ctx context.Context, rec *domain.Receipt) (*domain.Receipt, error)
	GetReceipt(ctx context.Context, id int64) (*domain.Receipt, error)
	ListReceipts(ctx context.Context) ([]domain.Receipt, error)
	DeleteReceipt(ctx context.Context, id int64) error
	AttachDocument(ctx context.Context, id int64, location string) (*domain.Receipt, error)
}

type billingService struct {
	billing repository.BillingRepository
}

func NewBillingService(billing repository.BillingRepository) BillingService {
	return &billingService{billing: billing}
}

// newNumber mints a short public identifier like INV-9f86d081.
func newNumber(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

func (s *billingService) CreateInvoice(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	inv.CustomerName = strings.TrimSpace(inv.CustomerName)
	if inv.CustomerName == "" {
		return nil, errors.New("customer name is required")
	}
	if inv.AmountCents <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if inv.Status == "" {
		inv.Status = domain.InvoiceDraft
	}
	if !inv.Status.Valid() {
		return nil, fmt.Errorf("invalid invoice status %q", inv.Status)
	}
	if inv.Number == "" {
		inv.Number = newNumber("INV")
	}

	if _, err := s.billing.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *billingService) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	return s.billing.GetInvoice(ctx, id)
}

func (s *billingService) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return s.billing.ListInvoices(ctx)
}

func (s *billingService) UpdateInvoice(ctx context.Context, inv *domain.Invoice) error {
	if strings.TrimSpace(inv.CustomerName) == "" {
		return errors.New("customer name is required")
	}
	if !inv.Status.Valid() {
		return fmt.Errorf("invalid invoice status %q", inv.Status)
	}
	return s.billing.UpdateInvoice(ctx, inv)
}

func (s *billingService) DeleteInvoice(ctx context.Context, id int64) error {
	return s.billing.DeleteInvoice(ctx, id)
}

func (s *billingService) CreateReceipt(ctx context.Context, rec *domain.Receipt) (*domain.Receipt, error) {
	rec.CustomerName = strings.TrimSpace(rec.CustomerName)
	if rec.CustomerName == "" {
		return nil, errors.New("customer name is required")
	}
	if rec.AmountCents <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if rec.InvoiceID != 0 {
		// Receipts may reference an invoice, but only a real one.
		if _, err := s.billing.GetInvoice(ctx, rec.InvoiceID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("invoice %d not found", rec.InvoiceID)
			}
			return nil, err
		}
	}
	if rec.Number == "" {
		rec.Number = newNumber("RCP")
	}

	if _, err := s.billing.CreateReceipt(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *billingService) GetReceipt(ctx context.Context, id int64) (*domain.Receipt, error) {
	return s.billing.GetReceipt(ctx, id)
}

func (s *billingService) ListReceipts(ctx context.Context) ([]domain.Receipt, error) {
	return s.billing.ListReceipts(ctx)
}

func (s *billingService) DeleteReceipt(ctx context.Context, id int64) error {
	return s.billing.DeleteReceipt(ctx, id)
}

func (s *billingService) AttachDocument(ctx context.Context, id int64, location string) (*domain.Receipt, error) {
	rec, err := s.billing.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.DocumentLocation = location
	if err := s.billing.UpdateReceipt(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
