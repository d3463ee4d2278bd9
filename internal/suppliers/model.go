// Package suppliers is the supplier directory consumed by order creation.
package suppliers

import (
	"errors"
	"time"
)

// Kind tags the two shapes a directory record can take. A pending application
// and an approved supplier are distinct states, not one loose object with
// optional fields.
type Kind string

const (
	KindPending  Kind = "PENDING"
	KindApproved Kind = "APPROVED"
)

// SupplierRecord is the tagged variant Pending | Approved.
type SupplierRecord struct {
	ID           int64      `json:"id"`
	Kind         Kind       `json:"kind"`
	CompanyName  string     `json:"company_name"`
	ContactEmail string     `json:"contact_email"`
	Phone        string     `json:"phone"`
	AppliedAt    time.Time  `json:"applied_at"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	ApprovedBy   *int64     `json:"approved_by,omitempty"`
}

// IsApproved reports whether the record may back purchase orders.
func (s SupplierRecord) IsApproved() bool {
	return s.Kind == KindApproved
}

// NewApplication builds a pending directory record.
func NewApplication(companyName, contactEmail, phone string, now time.Time) SupplierRecord {
	return SupplierRecord{
		Kind:         KindPending,
		CompanyName:  companyName,
		ContactEmail: contactEmail,
		Phone:        phone,
		AppliedAt:    now,
	}
}

var (
	// ErrNotFound indicates the supplier does not exist.
	ErrNotFound = errors.New("suppliers: not found")
	// ErrAlreadyApproved occurs when approving an approved supplier.
	ErrAlreadyApproved = errors.New("suppliers: already approved")
	// ErrValidation indicates invalid input.
	ErrValidation = errors.New("suppliers: invalid input")
)
