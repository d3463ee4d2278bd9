package invoices

import (
	"context"
	"fmt"
	"time"

	"github.com/shoplite/shoplite/internal/shared"
)

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	Get(ctx context.Context, id int64) (Invoice, error)
	GetByOrder(ctx context.Context, orderID int64) (Invoice, error)
	List(ctx context.Context, filters ListFilters, limit, offset int) ([]Invoice, error)
	MarkPaid(ctx context.Context, id int64, paidAt time.Time) error
}

// AuditPort reused from shared.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service exposes invoice reads and the payment-marking mutation.
type Service struct {
	repo  RepositoryPort
	audit AuditPort
}

// NewService constructs the service.
func NewService(repo RepositoryPort, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit}
}

// Get fetches an invoice.
func (s *Service) Get(ctx context.Context, id int64) (Invoice, error) {
	return s.repo.Get(ctx, id)
}

// GetByOrder fetches the invoice for an order.
func (s *Service) GetByOrder(ctx context.Context, orderID int64) (Invoice, error) {
	return s.repo.GetByOrder(ctx, orderID)
}

// List returns invoices matching filters.
func (s *Service) List(ctx context.Context, filters ListFilters, limit, offset int) ([]Invoice, error) {
	return s.repo.List(ctx, filters, limit, offset)
}

// MarkPaid records payment for a pending invoice.
func (s *Service) MarkPaid(ctx context.Context, id int64, actorID int64) (Invoice, error) {
	paidAt := time.Now().UTC()
	if err := s.repo.MarkPaid(ctx, id, paidAt); err != nil {
		return Invoice{}, err
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  actorID,
			Action:   "INVOICE_PAID",
			Entity:   "invoice",
			EntityID: fmt.Sprintf("%d", id),
			Meta:     map[string]any{"paid_at": paidAt},
		})
	}
	return s.repo.Get(ctx, id)
}
