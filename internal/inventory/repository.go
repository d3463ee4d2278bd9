package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByProduct returns the item for a product.
func (r *Repository) GetByProduct(ctx context.Context, productID int64) (Item, error) {
	var item Item
	err := r.pool.QueryRow(ctx, `SELECT id, product_id, stock, last_updated FROM inventory_items WHERE product_id=$1`, productID).
		Scan(&item.ID, &item.ProductID, &item.Stock, &item.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrItemNotFound
		}
		return Item{}, err
	}
	return item, nil
}

// List returns items ordered by product id.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Item, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `SELECT id, product_id, stock, last_updated FROM inventory_items ORDER BY product_id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Stock, &item.LastUpdated); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// CreditStockTx increments the stock for a product inside the caller's
// transaction. The caller owns commit/rollback; a missing row fails the whole
// unit so a completion never half-applies.
func CreditStockTx(ctx context.Context, tx pgx.Tx, productID, qty int64) (Item, error) {
	if qty <= 0 {
		return Item{}, ErrInvalidCredit
	}
	var item Item
	err := tx.QueryRow(ctx, `UPDATE inventory_items SET stock = stock + $1, last_updated = NOW()
WHERE product_id = $2 RETURNING id, product_id, stock, last_updated`, qty, productID).
		Scan(&item.ID, &item.ProductID, &item.Stock, &item.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, fmt.Errorf("%w: product %d", ErrItemNotFound, productID)
		}
		return Item{}, err
	}
	return item, nil
}
