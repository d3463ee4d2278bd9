package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memoryItemRepo struct {
	items map[int64]Item
}

func (r *memoryItemRepo) GetByProduct(ctx context.Context, productID int64) (Item, error) {
	item, ok := r.items[productID]
	if !ok {
		return Item{}, ErrItemNotFound
	}
	return item, nil
}

func (r *memoryItemRepo) List(ctx context.Context, limit, offset int) ([]Item, error) {
	var out []Item
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func TestGetByProduct(t *testing.T) {
	repo := &memoryItemRepo{items: map[int64]Item{
		100: {ID: 1, ProductID: 100, Stock: 40, LastUpdated: time.Now()},
	}}
	svc := NewService(repo)

	item, err := svc.GetByProduct(context.Background(), 100)
	require.NoError(t, err)
	require.Equal(t, int64(40), item.Stock)

	_, err = svc.GetByProduct(context.Background(), 999)
	require.ErrorIs(t, err, ErrItemNotFound)
}
