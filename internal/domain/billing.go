package domain

import "time"

// InvoiceStatus tracks the billing lifecycle of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "draft"
	InvoiceSent  InvoiceStatus = "sent"
	InvoicePaid  InvoiceStatus = "paid"
	InvoiceVoid  InvoiceStatus = "void"
)

// Valid reports whether the status is one of the known values.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceVoid:
		return true
	}
	return false
}

// Invoice is an amount owed by a customer. Number is the public identifier.
type Invoice struct {
	ID            int64
	Number        string
	CustomerName  string
	CustomerEmail string
	AmountCents   int64
	Status        InvoiceStatus
	DueDate       *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Receipt records a payment. InvoiceID is zero for walk-in payments that were
// never invoiced. DocumentLocation holds an s3:// URI when a scanned document
// has been attached.
type Receipt struct {
	ID               int64
	Number           string
	InvoiceID        int64
	CustomerName     string
	AmountCents      int64
	Method           string
	DocumentLocation string
	IssuedAt         time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
