package orders

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shoplite/shoplite/internal/auth"
)

func TestRoleGateSupplierEdges(t *testing.T) {
	gate := NewRoleGate()
	supplier := auth.Actor{UserID: 1, Role: auth.RoleSupplier, SupplierID: 3}
	order := PurchaseOrder{ID: 10, SupplierID: 3}

	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusRejected, true},
		{StatusAccepted, StatusDispatched, true},
		{StatusDispatched, StatusDelivered, true},
		{StatusDelivered, StatusCompleted, false},
	}
	for _, tc := range cases {
		order.Status = tc.from
		err := gate.Authorize(supplier, order, tc.to)
		if tc.ok {
			require.NoError(t, err, "%s -> %s", tc.from, tc.to)
		} else {
			require.ErrorIs(t, err, ErrUnauthorized, "%s -> %s", tc.from, tc.to)
		}
	}
}

func TestRoleGateAdminEdges(t *testing.T) {
	gate := NewRoleGate()
	admin := auth.Actor{UserID: 2, Role: auth.RoleAdmin}
	order := PurchaseOrder{ID: 10, SupplierID: 3}

	order.Status = StatusDelivered
	require.NoError(t, gate.Authorize(admin, order, StatusCompleted))

	order.Status = StatusPending
	require.NoError(t, gate.Authorize(admin, order, StatusRejected))

	// admins do not act the supplier's part of the workflow
	require.ErrorIs(t, gate.Authorize(admin, order, StatusAccepted), ErrUnauthorized)
	order.Status = StatusAccepted
	require.ErrorIs(t, gate.Authorize(admin, order, StatusDispatched), ErrUnauthorized)
}

func TestRoleGateSupplierOwnership(t *testing.T) {
	gate := NewRoleGate()
	supplier := auth.Actor{UserID: 1, Role: auth.RoleSupplier, SupplierID: 3}
	foreign := PurchaseOrder{ID: 10, SupplierID: 4, Status: StatusPending}

	require.ErrorIs(t, gate.Authorize(supplier, foreign, StatusAccepted), ErrUnauthorized)
}

func TestRoleGateUnknownRole(t *testing.T) {
	gate := NewRoleGate()
	actor := auth.Actor{UserID: 1, Role: auth.Role("AUDITOR")}
	order := PurchaseOrder{ID: 10, SupplierID: 3, Status: StatusPending}

	require.ErrorIs(t, gate.Authorize(actor, order, StatusAccepted), ErrUnauthorized)
}
