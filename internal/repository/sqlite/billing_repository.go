package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"knoxtech-api/internal/domain"
	"knoxtech-api/internal/repository"
)

const createBillingTables = `
CREATE TABLE IF NOT EXISTS invoices (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	number TEXT NOT NULL UNIQUE,
	customer_name TEXT NOT NULL,
	customer_email TEXT NOT NULL DEFAULT '',
	amount_cents INTEGER NOT NULL,
	status TEXT NOT NULL DEFAULT 'draft',
	due_date DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS receipts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	number TEXT NOT NULL UNIQUE,
	invoice_id INTEGER NOT NULL DEFAULT 0,
	customer_name TEXT NOT NULL,
	amount_cents INTEGER NOT NULL,
	method TEXT NOT NULL DEFAULT '',
	document_location TEXT NOT NULL DEFAULT '',
	issued_at DATETIME NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type BillingRepository struct {
	db *sql.DB
}

func NewBillingRepository(db *sql.DB) repository.BillingRepository {
	return &BillingRepository{db: db}
}

func (r *BillingRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createBillingTables); err != nil {
		return fmt.Errorf("create billing tables: %w", err)
	}
	return nil
}

func (r *BillingRepository) CreateInvoice(ctx context.Context, inv *domain.Invoice) (int64, error) {
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO invoices (number, customer_name, customer_email, amount_cents, status, due_date, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.Number,
		inv.CustomerName,
		inv.CustomerEmail,
		inv.AmountCents,
		string(inv.Status),
		inv.DueDate,
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert invoice: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("invoice last insert id: %w", err)
	}
	inv.ID = id
	return id, nil
}

func (r *BillingRepository) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, number, customer_name, customer_email, amount_cents, status, due_date, created_at, updated_at
FROM invoices
WHERE id = ?`,
		id,
	)
	return scanInvoice(row)
}

func (r *BillingRepository) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, number, customer_name, customer_email, amount_cents, status, due_date, created_at, updated_at
FROM invoices
ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}
	return invoices, nil
}

func (r *BillingRepository) UpdateInvoice(ctx context.Context, inv *domain.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE invoices
SET customer_name = ?, customer_email = ?, amount_cents = ?, status = ?, due_date = ?, updated_at = ?
WHERE id = ?`,
		inv.CustomerName,
		inv.CustomerEmail,
		inv.AmountCents,
		string(inv.Status),
		inv.DueDate,
		inv.UpdatedAt,
		inv.ID,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return requireRow(res)
}

func (r *BillingRepository) DeleteInvoice(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return requireRow(res)
}

func (r *BillingRepository) CreateReceipt(ctx context.Context, rec *domain.Receipt) (int64, error) {
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if rec.IssuedAt.IsZero() {
		rec.IssuedAt = now
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO receipts (number, invoice_id, customer_name, amount_cents, method, document_location, issued_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Number,
		rec.InvoiceID,
		rec.CustomerName,
		rec.AmountCents,
		rec.Method,
		rec.DocumentLocation,
		rec.IssuedAt,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert receipt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("receipt last insert id: %w", err)
	}
	rec.ID = id
	return id, nil
}

func (r *BillingRepository) GetReceipt(ctx context.Context, id int64) (*domain.Receipt, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, number, invoice_id, customer_name, amount_cents, method, document_location, issued_at, created_at, updated_at
FROM receipts
WHERE id = ?`,
		id,
	)
	return scanReceipt(row)
}

func (r *BillingRepository) ListReceipts(ctx context.Context) ([]domain.Receipt, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, number, invoice_id, customer_name, amount_cents, method, document_location, issued_at, created_at, updated_at
FROM receipts
ORDER BY issued_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()

	var receipts []domain.Receipt
	for rows.Next() {
		rec, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate receipts: %w", err)
	}
	return receipts, nil
}

func (r *BillingRepository) UpdateReceipt(ctx context.Context, rec *domain.Receipt) error {
	rec.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE receipts
SET invoice_id = ?, customer_name = ?, amount_cents = ?, method = ?, document_location = ?, issued_at = ?, updated_at = ?
WHERE id = ?`,
		rec.InvoiceID,
		rec.CustomerName,
		rec.AmountCents,
		rec.Method,
		rec.DocumentLocation,
		rec.IssuedAt,
		rec.UpdatedAt,
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update receipt: %w", err)
	}
	return requireRow(res)
}

func (r *BillingRepository) DeleteReceipt(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM receipts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete receipt: %w", err)
	}
	return requireRow(res)
}

func scanInvoice(row interface {
	Scan(dest ...any) error
}) (*domain.Invoice, error) {
	var inv domain.Invoice
	var status string
	var due sql.NullTime
	if err := row.Scan(
		&inv.ID,
		&inv.Number,
		&inv.CustomerName,
		&inv.CustomerEmail,
		&inv.AmountCents,
		&status,
		&due,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	inv.Status = domain.InvoiceStatus(status)
	if due.Valid {
		t := due.Time
		inv.DueDate = &t
	}
	return &inv, nil
}

func scanReceipt(row interface {
	Scan(dest ...any) error
}) (*domain.Receipt, error) {
	var rec domain.Receipt
	if err := row.Scan(
		&rec.ID,
		&rec.Number,
		&rec.InvoiceID,
		&rec.CustomerName,
		&rec.AmountCents,
		&rec.Method,
		&rec.DocumentLocation,
		&rec.IssuedAt,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan receipt: %w", err)
	}
	return &rec, nil
}
