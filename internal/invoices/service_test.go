package invoices

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memoryInvoiceRepo struct {
	invoices map[int64]Invoice
}

func newMemoryInvoiceRepo() *memoryInvoiceRepo {
	return &memoryInvoiceRepo{invoices: make(map[int64]Invoice)}
}

func (r *memoryInvoiceRepo) Get(ctx context.Context, id int64) (Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return Invoice{}, ErrNotFound
	}
	return inv, nil
}

func (r *memoryInvoiceRepo) GetByOrder(ctx context.Context, orderID int64) (Invoice, error) {
	for _, inv := range r.invoices {
		if inv.OrderID == orderID {
			return inv, nil
		}
	}
	return Invoice{}, ErrNotFound
}

func (r *memoryInvoiceRepo) List(ctx context.Context, filters ListFilters, limit, offset int) ([]Invoice, error) {
	var out []Invoice
	for _, inv := range r.invoices {
		if filters.Status != "" && inv.Status != filters.Status {
			continue
		}
		if filters.SupplierID > 0 && inv.SupplierID != filters.SupplierID {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (r *memoryInvoiceRepo) MarkPaid(ctx context.Context, id int64, paidAt time.Time) error {
	inv, ok := r.invoices[id]
	if !ok {
		return ErrNotFound
	}
	if inv.Status == StatusPaid {
		return ErrAlreadyPaid
	}
	inv.Status = StatusPaid
	inv.PaymentDate = &paidAt
	r.invoices[id] = inv
	return nil
}

func TestMarkPaid(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	repo.invoices[1] = Invoice{ID: 1, Number: "INV-1", OrderID: 10, SupplierID: 3, Amount: 5000, Status: StatusPending}
	svc := NewService(repo, nil)
	ctx := context.Background()

	inv, err := svc.MarkPaid(ctx, 1, 99)
	require.NoError(t, err)
	require.Equal(t, StatusPaid, inv.Status)
	require.NotNil(t, inv.PaymentDate)

	_, err = svc.MarkPaid(ctx, 1, 99)
	require.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestMarkPaidNotFound(t *testing.T) {
	svc := NewService(newMemoryInvoiceRepo(), nil)
	_, err := svc.MarkPaid(context.Background(), 42, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListFiltersBySupplier(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	repo.invoices[1] = Invoice{ID: 1, SupplierID: 3, Status: StatusPending}
	repo.invoices[2] = Invoice{ID: 2, SupplierID: 4, Status: StatusPending}
	svc := NewService(repo, nil)

	out, err := svc.List(context.Background(), ListFilters{SupplierID: 3}, 0, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, int64(3), out[0].SupplierID)
}
