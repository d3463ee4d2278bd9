// Package catalog holds the product list purchase orders draw from.
package catalog

import (
	"errors"
	"time"
)

// Product is a purchasable catalog entry. CurrentPrice is the unit price
// snapshotted onto new purchase orders.
type Product struct {
	ID           int64     `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	CurrentPrice float64   `json:"current_price"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var (
	// ErrNotFound indicates the product does not exist.
	ErrNotFound = errors.New("catalog: product not found")
	// ErrDuplicateSKU indicates a SKU collision on insert.
	ErrDuplicateSKU = errors.New("catalog: duplicate sku")
	// ErrValidation indicates invalid input.
	ErrValidation = errors.New("catalog: invalid input")
)
