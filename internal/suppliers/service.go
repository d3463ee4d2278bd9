package suppliers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shoplite/shoplite/internal/shared"
)

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	Get(ctx context.Context, id int64) (SupplierRecord, error)
	List(ctx context.Context, kind Kind, limit, offset int) ([]SupplierRecord, error)
	Create(ctx context.Context, rec SupplierRecord) (int64, error)
	Approve(ctx context.Context, id int64, approvedBy int64, approvedAt time.Time) error
}

// AuditPort reused from shared.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service manages the supplier directory.
type Service struct {
	repo  RepositoryPort
	audit AuditPort
}

// NewService constructs the service.
func NewService(repo RepositoryPort, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit}
}

// Get fetches a record.
func (s *Service) Get(ctx context.Context, id int64) (SupplierRecord, error) {
	if id <= 0 {
		return SupplierRecord{}, fmt.Errorf("%w: invalid supplier id", ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// List returns directory records.
func (s *Service) List(ctx context.Context, kind Kind, limit, offset int) ([]SupplierRecord, error) {
	return s.repo.List(ctx, kind, limit, offset)
}

// Apply registers a pending supplier application.
func (s *Service) Apply(ctx context.Context, companyName, contactEmail, phone string) (SupplierRecord, error) {
	if strings.TrimSpace(companyName) == "" {
		return SupplierRecord{}, fmt.Errorf("%w: company name is required", ErrValidation)
	}
	rec := NewApplication(strings.TrimSpace(companyName), strings.TrimSpace(contactEmail), strings.TrimSpace(phone), time.Now().UTC())
	id, err := s.repo.Create(ctx, rec)
	if err != nil {
		return SupplierRecord{}, err
	}
	rec.ID = id
	return rec, nil
}

// Approve promotes a pending application to an approved supplier.
func (s *Service) Approve(ctx context.Context, id int64, approvedBy int64) (SupplierRecord, error) {
	if err := s.repo.Approve(ctx, id, approvedBy, time.Now().UTC()); err != nil {
		return SupplierRecord{}, err
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  approvedBy,
			Action:   "SUPPLIER_APPROVE",
			Entity:   "supplier",
			EntityID: fmt.Sprintf("%d", id),
		})
	}
	return s.repo.Get(ctx, id)
}

// IsApproved reports whether the supplier may back purchase orders.
func (s *Service) IsApproved(ctx context.Context, id int64) (bool, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return rec.IsApproved(), nil
}
