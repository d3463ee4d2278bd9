package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memoryProductRepo struct {
	products map[int64]Product
	nextID   int64
}

func newMemoryProductRepo() *memoryProductRepo {
	return &memoryProductRepo{products: make(map[int64]Product), nextID: 1}
}

func (r *memoryProductRepo) Get(ctx context.Context, id int64) (Product, error) {
	p, ok := r.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (r *memoryProductRepo) List(ctx context.Context, limit, offset int) ([]Product, error) {
	var out []Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *memoryProductRepo) Create(ctx context.Context, p Product) (int64, error) {
	for _, existing := range r.products {
		if existing.SKU == p.SKU {
			return 0, ErrDuplicateSKU
		}
	}
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.products[p.ID] = p
	r.nextID++
	return p.ID, nil
}

func (r *memoryProductRepo) UpdatePrice(ctx context.Context, id int64, price float64) error {
	p, ok := r.products[id]
	if !ok {
		return ErrNotFound
	}
	p.CurrentPrice = price
	p.UpdatedAt = time.Now()
	r.products[id] = p
	return nil
}

func TestCreateProduct(t *testing.T) {
	svc := NewService(newMemoryProductRepo())
	ctx := context.Background()

	p, err := svc.Create(ctx, Product{SKU: "SKU-1", Name: "Widget", CurrentPrice: 9.99})
	require.NoError(t, err)
	require.Equal(t, "SKU-1", p.SKU)

	_, err = svc.Create(ctx, Product{SKU: "SKU-1", Name: "Widget Again", CurrentPrice: 1})
	require.ErrorIs(t, err, ErrDuplicateSKU)

	_, err = svc.Create(ctx, Product{SKU: "", Name: "Nameless"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, Product{SKU: "SKU-2", Name: "Cheap", CurrentPrice: -1})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUnitPriceFollowsUpdates(t *testing.T) {
	svc := NewService(newMemoryProductRepo())
	ctx := context.Background()

	p, err := svc.Create(ctx, Product{SKU: "SKU-1", Name: "Widget", CurrentPrice: 9.99})
	require.NoError(t, err)

	price, err := svc.UnitPrice(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 9.99, price)

	_, err = svc.UpdatePrice(ctx, p.ID, 12.50)
	require.NoError(t, err)

	price, err = svc.UnitPrice(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 12.50, price)

	_, err = svc.UnitPrice(ctx, 404)
	require.ErrorIs(t, err, ErrNotFound)
}
