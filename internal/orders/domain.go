// Package orders implements the supplier purchase-order fulfillment workflow.
package orders

import (
	"errors"
	"time"
)

// Status represents the lifecycle of a purchase order.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusAccepted   Status = "ACCEPTED"
	StatusDispatched Status = "DISPATCHED"
	StatusDelivered  Status = "DELIVERED"
	StatusCompleted  Status = "COMPLETED"
	StatusRejected   Status = "REJECTED"
)

// IsValid checks if the status is valid.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDispatched, StatusDelivered, StatusCompleted, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// PurchaseOrder models a restock request placed with a supplier.
type PurchaseOrder struct {
	ID                   int64      `json:"id"`
	Number               string     `json:"number"`
	ProductID            int64      `json:"product_id"`
	SupplierID           int64      `json:"supplier_id"`
	Quantity             int64      `json:"quantity"`
	PricePerUnit         float64    `json:"price_per_unit"`
	Status               Status     `json:"status"`
	OrderDate            time.Time  `json:"order_date"`
	ExpectedDeliveryDate time.Time  `json:"expected_delivery_date"`
	ActualDeliveryDate   *time.Time `json:"actual_delivery_date,omitempty"`
	DeliveryNotes        *string    `json:"delivery_notes,omitempty"`
	RejectedReason       *string    `json:"rejected_reason,omitempty"`
	InvoiceID            *int64     `json:"invoice_id,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// TotalPrice is always derived from quantity and unit price, never stored.
func (o PurchaseOrder) TotalPrice() float64 {
	return float64(o.Quantity) * o.PricePerUnit
}

// TransitionMetadata carries per-edge payload for RequestTransition.
type TransitionMetadata struct {
	ActualDeliveryDate *time.Time
	DeliveryNotes      string
	Reason             string
}

var (
	// ErrNotFound indicates the purchase order does not exist.
	ErrNotFound = errors.New("orders: purchase order not found")
	// ErrValidation indicates invalid input, recoverable by resubmission.
	ErrValidation = errors.New("orders: invalid input")
	// ErrUnauthorized indicates the actor may not perform the transition.
	ErrUnauthorized = errors.New("orders: actor not permitted")
	// ErrInvalidTransition occurs when the requested edge is not in the permitted graph.
	ErrInvalidTransition = errors.New("orders: invalid state transition")
	// ErrDuplicateCompletion occurs when a completion would issue a second invoice.
	ErrDuplicateCompletion = errors.New("orders: order already completed")
	// ErrSupplierNotApproved occurs when creating an order against a pending supplier.
	ErrSupplierNotApproved = errors.New("orders: supplier not approved")
)
