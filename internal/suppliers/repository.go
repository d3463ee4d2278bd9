package suppliers

import (
	"context"
	"errors"
	"time"

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

const supplierColumns = `id, kind, company_name, contact_email, phone, applied_at, approved_at, approved_by`

// Get fetches a record by id.
func (r *Repository) Get(ctx context.Context, id int64) (SupplierRecord, error) {
	var rec SupplierRecord
	err := r.pool.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id=$1`, id).
		Scan(&rec.ID, &rec.Kind, &rec.CompanyName, &rec.ContactEmail, &rec.Phone, &rec.AppliedAt, &rec.ApprovedAt, &rec.ApprovedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SupplierRecord{}, ErrNotFound
		}
		return SupplierRecord{}, err
	}
	return rec, nil
}

// List returns records, optionally narrowed by kind.
func (r *Repository) List(ctx context.Context, kind Kind, limit, offset int) ([]SupplierRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	sql := `SELECT ` + supplierColumns + ` FROM suppliers`
	args := []any{}
	if kind != "" {
		sql += ` WHERE kind=$1`
		args = append(args, kind)
	}
	args = append(args, limit, offset)
	if kind != "" {
		sql += ` ORDER BY applied_at DESC LIMIT $2 OFFSET $3`
	} else {
		sql += ` ORDER BY applied_at DESC LIMIT $1 OFFSET $2`
	}
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []SupplierRecord
	for rows.Next() {
		var rec SupplierRecord
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.CompanyName, &rec.ContactEmail, &rec.Phone, &rec.AppliedAt, &rec.ApprovedAt, &rec.ApprovedBy); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Create inserts a pending application.
func (r *Repository) Create(ctx context.Context, rec SupplierRecord) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO suppliers (kind, company_name, contact_email, phone, applied_at)
VALUES ($1,$2,$3,$4,$5) RETURNING id`, rec.Kind, rec.CompanyName, rec.ContactEmail, rec.Phone, rec.AppliedAt).Scan(&id)
	return id, err
}

// Approve flips PENDING -> APPROVED. Conditional on kind so a double approval
// keeps the original approver.
func (r *Repository) Approve(ctx context.Context, id int64, approvedBy int64, approvedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE suppliers SET kind=$1, approved_at=$2, approved_by=$3 WHERE id=$4 AND kind=$5`,
		KindApproved, approvedAt, approvedBy, id, KindPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.Get(ctx, id); errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return ErrAlreadyApproved
	}
	return nil
}
