package suppliers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memorySupplierRepo struct {
	records map[int64]SupplierRecord
	nextID  int64
}

func newMemorySupplierRepo() *memorySupplierRepo {
	return &memorySupplierRepo{records: make(map[int64]SupplierRecord), nextID: 1}
}

func (r *memorySupplierRepo) Get(ctx context.Context, id int64) (SupplierRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return SupplierRecord{}, ErrNotFound
	}
	return rec, nil
}

func (r *memorySupplierRepo) List(ctx context.Context, kind Kind, limit, offset int) ([]SupplierRecord, error) {
	var out []SupplierRecord
	for _, rec := range r.records {
		if kind != "" && rec.Kind != kind {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *memorySupplierRepo) Create(ctx context.Context, rec SupplierRecord) (int64, error) {
	rec.ID = r.nextID
	r.records[rec.ID] = rec
	r.nextID++
	return rec.ID, nil
}

func (r *memorySupplierRepo) Approve(ctx context.Context, id int64, approvedBy int64, approvedAt time.Time) error {
	rec, ok := r.records[id]
	if !ok {
		return ErrNotFound
	}
	if rec.Kind == KindApproved {
		return ErrAlreadyApproved
	}
	rec.Kind = KindApproved
	rec.ApprovedAt = &approvedAt
	rec.ApprovedBy = &approvedBy
	r.records[id] = rec
	return nil
}

func TestApplyThenApprove(t *testing.T) {
	svc := NewService(newMemorySupplierRepo(), nil)
	ctx := context.Background()

	rec, err := svc.Apply(ctx, "Acme Parts", "sales@acme.example", "+1-555-0100")
	require.NoError(t, err)
	require.Equal(t, KindPending, rec.Kind)
	require.False(t, rec.IsApproved())

	ok, err := svc.IsApproved(ctx, rec.ID)
	require.NoError(t, err)
	require.False(t, ok)

	approved, err := svc.Approve(ctx, rec.ID, 7)
	require.NoError(t, err)
	require.Equal(t, KindApproved, approved.Kind)
	require.NotNil(t, approved.ApprovedAt)
	require.NotNil(t, approved.ApprovedBy)
	require.Equal(t, int64(7), *approved.ApprovedBy)

	ok, err = svc.IsApproved(ctx, rec.ID)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestApproveTwice(t *testing.T) {
	svc := NewService(newMemorySupplierRepo(), nil)
	ctx := context.Background()

	rec, err := svc.Apply(ctx, "Beta Logistics", "ops@beta.example", "")
	require.NoError(t, err)

	_, err = svc.Approve(ctx, rec.ID, 1)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, rec.ID, 2)
	require.ErrorIs(t, err, ErrAlreadyApproved)
}

func TestApplyValidation(t *testing.T) {
	svc := NewService(newMemorySupplierRepo(), nil)
	_, err := svc.Apply(context.Background(), "   ", "x@y.example", "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestApproveMissing(t *testing.T) {
	svc := NewService(newMemorySupplierRepo(), nil)
	_, err := svc.Approve(context.Background(), 404, 1)
	require.ErrorIs(t, err, ErrNotFound)
}
