// Package inventory tracks per-product stock levels. Stock is only ever
// credited by the order workflow's terminal transition; everything else here is
// a read surface for the admin panel.
package inventory

import (
	"errors"
	"time"
)

// Item summarises stock for a product.
type Item struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	Stock       int64     `json:"stock"`
	LastUpdated time.Time `json:"last_updated"`
}

var (
	// ErrItemNotFound indicates no inventory row exists for the product.
	ErrItemNotFound = errors.New("inventory: item not found")
	// ErrInvalidCredit indicates a non-positive credit quantity.
	ErrInvalidCredit = errors.New("inventory: credit quantity must be positive")
)
