package invoices

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

// ListFilters narrows List results.
type ListFilters struct {
	Status     Status
	SupplierID int64
}

const invoiceColumns = `id, number, order_id, supplier_id, amount, status, issued_at, due_date, payment_date`

// Get fetches an invoice by id.
func (r *Repository) Get(ctx context.Context, id int64) (Invoice, error) {
	var inv Invoice
	err := r.pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id=$1`, id).
		Scan(&inv.ID, &inv.Number, &inv.OrderID, &inv.SupplierID, &inv.Amount, &inv.Status, &inv.IssuedAt, &inv.DueDate, &inv.PaymentDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Invoice{}, ErrNotFound
		}
		return Invoice{}, err
	}
	return inv, nil
}

// GetByOrder fetches the invoice issued for an order.
func (r *Repository) GetByOrder(ctx context.Context, orderID int64) (Invoice, error) {
	var inv Invoice
	err := r.pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE order_id=$1`, orderID).
		Scan(&inv.ID, &inv.Number, &inv.OrderID, &inv.SupplierID, &inv.Amount, &inv.Status, &inv.IssuedAt, &inv.DueDate, &inv.PaymentDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Invoice{}, ErrNotFound
		}
		return Invoice{}, err
	}
	return inv, nil
}

// List returns invoices matching filters, newest first.
func (r *Repository) List(ctx context.Context, filters ListFilters, limit, offset int) ([]Invoice, error) {
	if limit <= 0 {
		limit = 50
	}
	sql := `SELECT ` + invoiceColumns + ` FROM invoices WHERE 1=1`
	args := []any{}
	if filters.Status != "" {
		args = append(args, filters.Status)
		sql += ` AND status=$1`
	}
	if filters.SupplierID > 0 {
		args = append(args, filters.SupplierID)
		sql += ` AND supplier_id=$` + itoa(len(args))
	}
	args = append(args, limit, offset)
	sql += ` ORDER BY issued_at DESC LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var invoices []Invoice
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.Number, &inv.OrderID, &inv.SupplierID, &inv.Amount, &inv.Status, &inv.IssuedAt, &inv.DueDate, &inv.PaymentDate); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return invoices, nil
}

// MarkPaid transitions PENDING -> PAID. The conditional update keeps a retried
// payment callback from rewriting the payment date.
func (r *Repository) MarkPaid(ctx context.Context, id int64, paidAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE invoices SET status=$1, payment_date=$2 WHERE id=$3 AND status=$4`,
		StatusPaid, paidAt, id, StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.Get(ctx, id); errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return ErrAlreadyPaid
	}
	return nil
}

// InsertTx creates the invoice inside the caller's transaction. The unique
// constraint on order_id is the last line of defence against duplicate issuance.
func InsertTx(ctx context.Context, tx pgx.Tx, inv Invoice) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `INSERT INTO invoices (number, order_id, supplier_id, amount, status, issued_at, due_date)
VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		inv.Number, inv.OrderID, inv.SupplierID, inv.Amount, inv.Status, inv.IssuedAt, inv.DueDate).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

// itoa converts int to string for dynamic query building.
func itoa(i int) string {
	return fmt.Sprintf("%d", i)
}
