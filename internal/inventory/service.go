package inventory

import (
	"context"
	"fmt"
)

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	GetByProduct(ctx context.Context, productID int64) (Item, error)
	List(ctx context.Context, limit, offset int) ([]Item, error)
}

// Service exposes inventory reads.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// GetByProduct returns the stock item for a product.
func (s *Service) GetByProduct(ctx context.Context, productID int64) (Item, error) {
	if productID <= 0 {
		return Item{}, fmt.Errorf("inventory: invalid product id %d", productID)
	}
	return s.repo.GetByProduct(ctx, productID)
}

// List returns stock items.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Item, error) {
	return s.repo.List(ctx, limit, offset)
}
