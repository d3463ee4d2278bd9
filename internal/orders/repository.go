package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shoplite/shoplite/internal/inventory"
	"github.com/shoplite/shoplite/internal/invoices"
	"github.com/shoplite/shoplite/internal/platform/db"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListFilters narrows List results.
type ListFilters struct {
	Status     Status
	SupplierID int64
	ProductID  int64
}

// CompletionResult reports what the completion transaction produced.
type CompletionResult struct {
	InvoiceID int64
	Stock     int64
}

const orderColumns = `id, number, product_id, supplier_id, quantity, price_per_unit, status, order_date,
expected_delivery_date, actual_delivery_date, delivery_notes, rejected_reason, invoice_id, created_at, updated_at`

func scanOrder(row pgx.Row) (PurchaseOrder, error) {
	var o PurchaseOrder
	err := row.Scan(&o.ID, &o.Number, &o.ProductID, &o.SupplierID, &o.Quantity, &o.PricePerUnit, &o.Status,
		&o.OrderDate, &o.ExpectedDeliveryDate, &o.ActualDeliveryDate, &o.DeliveryNotes, &o.RejectedReason,
		&o.InvoiceID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PurchaseOrder{}, ErrNotFound
		}
		return PurchaseOrder{}, err
	}
	return o, nil
}

// Get fetches a purchase order by id.
func (r *Repository) Get(ctx context.Context, id int64) (PurchaseOrder, error) {
	return scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM purchase_orders WHERE id=$1`, id))
}

// List returns purchase orders matching filters, newest first.
func (r *Repository) List(ctx context.Context, filters ListFilters, limit, offset int) ([]PurchaseOrder, error) {
	if limit <= 0 {
		limit = 50
	}
	sql := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE 1=1`
	args := []any{}
	if filters.Status != "" {
		args = append(args, filters.Status)
		sql += fmt.Sprintf(` AND status=$%d`, len(args))
	}
	if filters.SupplierID > 0 {
		args = append(args, filters.SupplierID)
		sql += fmt.Sprintf(` AND supplier_id=$%d`, len(args))
	}
	if filters.ProductID > 0 {
		args = append(args, filters.ProductID)
		sql += fmt.Sprintf(` AND product_id=$%d`, len(args))
	}
	args = append(args, limit, offset)
	sql += fmt.Sprintf(` ORDER BY order_date DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []PurchaseOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// Create inserts a new PENDING purchase order.
func (r *Repository) Create(ctx context.Context, o PurchaseOrder) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO purchase_orders
(number, product_id, supplier_id, quantity, price_per_unit, status, order_date, expected_delivery_date, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW()) RETURNING id`,
		o.Number, o.ProductID, o.SupplierID, o.Quantity, o.PricePerUnit, o.Status, o.OrderDate, o.ExpectedDeliveryDate).Scan(&id)
	return id, err
}

// UpdateTransition persists a non-terminal transition. The status predicate
// makes the write conditional on the state the caller validated against, so a
// concurrent transition loses with zero rows instead of clobbering.
func (r *Repository) UpdateTransition(ctx context.Context, o PurchaseOrder, expected Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE purchase_orders
SET status=$1, actual_delivery_date=$2, delivery_notes=$3, rejected_reason=$4, updated_at=NOW()
WHERE id=$5 AND status=$6`,
		o.Status, o.ActualDeliveryDate, o.DeliveryNotes, o.RejectedReason, o.ID, expected)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.Get(ctx, o.ID); errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: order %d moved away from %s", ErrInvalidTransition, o.ID, expected)
	}
	return nil
}

// Complete runs the terminal transition as one transaction: flip the status,
// credit the received quantity back to stock, issue the invoice and link it to
// the order. Either every effect commits or none does. The conditional status
// update is the race arbiter; the unique order_id on invoices backs it up.
func (r *Repository) Complete(ctx context.Context, o PurchaseOrder, expected Status, inv invoices.Invoice) (CompletionResult, error) {
	var res CompletionResult
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE purchase_orders
SET status=$1, delivery_notes=$2, updated_at=NOW()
WHERE id=$3 AND status=$4`,
			o.Status, o.DeliveryNotes, o.ID, expected)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: order %d moved away from %s", ErrInvalidTransition, o.ID, expected)
		}
		item, err := inventory.CreditStockTx(ctx, tx, o.ProductID, o.Quantity)
		if err != nil {
			return err
		}
		invoiceID, err := invoices.InsertTx(ctx, tx, inv)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE purchase_orders SET invoice_id=$1 WHERE id=$2`, invoiceID, o.ID); err != nil {
			return err
		}
		res = CompletionResult{InvoiceID: invoiceID, Stock: item.Stock}
		return nil
	})
	if err != nil {
		return CompletionResult{}, completionErr(err, o.ID)
	}
	return res, nil
}

// completionErr maps transaction failures the race arbiter can produce. At
// RepeatableRead the losing concurrent completer may get SQLSTATE 40001
// instead of a zero-row update; both mean the same thing to the caller.
func completionErr(err error, orderID int64) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "40001" {
		return fmt.Errorf("%w: concurrent completion of order %d", ErrInvalidTransition, orderID)
	}
	return err
}
