package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusRejected, true},
		{StatusAccepted, StatusDispatched, true},
		{StatusDispatched, StatusDelivered, true},
		{StatusDelivered, StatusCompleted, true},
		{StatusPending, StatusDispatched, false},
		{StatusPending, StatusDelivered, false},
		{StatusAccepted, StatusPending, false},
		{StatusAccepted, StatusRejected, false},
		{StatusDelivered, StatusRejected, false},
		{StatusCompleted, StatusPending, false},
		{StatusRejected, StatusAccepted, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, terminal := range []Status{StatusCompleted, StatusRejected} {
		require.True(t, terminal.IsTerminal())
		require.Empty(t, transitions[terminal])
	}
}

func TestValidateTransitionRejectionNeedsReason(t *testing.T) {
	order := PurchaseOrder{ID: 1, Status: StatusPending}

	err := ValidateTransition(order, StatusRejected, TransitionMetadata{})
	require.ErrorIs(t, err, ErrValidation)

	err = ValidateTransition(order, StatusRejected, TransitionMetadata{Reason: "price no longer viable"})
	require.NoError(t, err)
}

func TestValidateTransitionDeliveryNeedsDate(t *testing.T) {
	order := PurchaseOrder{ID: 1, Status: StatusDispatched}

	err := ValidateTransition(order, StatusDelivered, TransitionMetadata{})
	require.ErrorIs(t, err, ErrValidation)

	now := time.Now()
	err = ValidateTransition(order, StatusDelivered, TransitionMetadata{ActualDeliveryDate: &now})
	require.NoError(t, err)
}

func TestValidateTransitionUnknownStatus(t *testing.T) {
	order := PurchaseOrder{ID: 1, Status: StatusPending}
	err := ValidateTransition(order, Status("SHIPPED"), TransitionMetadata{})
	require.ErrorIs(t, err, ErrValidation)
}

func TestApplyTransitionSetsMetadata(t *testing.T) {
	now := time.Now().UTC()
	delivered := now.Add(-2 * time.Hour)

	order := PurchaseOrder{ID: 1, Status: StatusDispatched}
	got := ApplyTransition(order, StatusDelivered, TransitionMetadata{
		ActualDeliveryDate: &delivered,
		DeliveryNotes:      "left at loading dock",
	}, now)

	require.Equal(t, StatusDelivered, got.Status)
	require.Equal(t, &delivered, got.ActualDeliveryDate)
	require.NotNil(t, got.DeliveryNotes)
	require.Equal(t, "left at loading dock", *got.DeliveryNotes)
	require.Equal(t, now, got.UpdatedAt)
	// the input is not mutated
	require.Equal(t, StatusDispatched, order.Status)
}
