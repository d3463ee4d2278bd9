package catalog

import (
	"context"
	"fmt"
	"strings"
)

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	Get(ctx context.Context, id int64) (Product, error)
	List(ctx context.Context, limit, offset int) ([]Product, error)
	Create(ctx context.Context, p Product) (int64, error)
	UpdatePrice(ctx context.Context, id int64, price float64) error
}

// Service manages catalog products.
type Service struct {
	repo RepositoryPort
}

// NewService constructs the service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Get fetches a product.
func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, fmt.Errorf("%w: invalid product id", ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// List returns catalog products.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Product, error) {
	return s.repo.List(ctx, limit, offset)
}

// Create adds a product to the catalog.
func (s *Service) Create(ctx context.Context, p Product) (Product, error) {
	p.SKU = strings.TrimSpace(p.SKU)
	p.Name = strings.TrimSpace(p.Name)
	if p.SKU == "" || p.Name == "" {
		return Product{}, fmt.Errorf("%w: sku and name are required", ErrValidation)
	}
	if p.CurrentPrice < 0 {
		return Product{}, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return Product{}, err
	}
	return s.repo.Get(ctx, id)
}

// UnitPrice returns the current price for order snapshots.
func (s *Service) UnitPrice(ctx context.Context, productID int64) (float64, error) {
	p, err := s.Get(ctx, productID)
	if err != nil {
		return 0, err
	}
	return p.CurrentPrice, nil
}

// UpdatePrice changes the unit price used by future orders.
func (s *Service) UpdatePrice(ctx context.Context, id int64, price float64) (Product, error) {
	if price < 0 {
		return Product{}, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if err := s.repo.UpdatePrice(ctx, id, price); err != nil {
		return Product{}, err
	}
	return s.repo.Get(ctx, id)
}
