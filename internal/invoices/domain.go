// Package invoices owns supplier invoices issued by the order workflow.
// An invoice is created exactly once per completed order; afterwards the only
// permitted mutation is the external payment service marking it paid.
package invoices

import (
	"errors"
	"time"
)

// Status represents invoice payment state.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
)

// Invoice models an amount owed to a supplier for a completed order.
type Invoice struct {
	ID          int64      `json:"id"`
	Number      string     `json:"number"`
	OrderID     int64      `json:"order_id"`
	SupplierID  int64      `json:"supplier_id"`
	Amount      float64    `json:"amount"`
	Status      Status     `json:"status"`
	IssuedAt    time.Time  `json:"issued_at"`
	DueDate     time.Time  `json:"due_date"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
}

var (
	// ErrNotFound indicates the invoice does not exist.
	ErrNotFound = errors.New("invoices: not found")
	// ErrAlreadyPaid occurs when marking a paid invoice paid again.
	ErrAlreadyPaid = errors.New("invoices: already paid")
	// ErrDuplicate occurs when a second invoice is issued for the same order.
	ErrDuplicate = errors.New("invoices: order already invoiced")
)
