package orders

import (
	"fmt"
	"strings"
	"time"
)

// transitions is the permitted workflow graph. Orders move forward along
// PENDING -> ACCEPTED -> DISPATCHED -> DELIVERED -> COMPLETED with a single
// escape edge PENDING -> REJECTED. Nothing moves backward or skips a step.
var transitions = map[Status][]Status{
	StatusPending:    {StatusAccepted, StatusRejected},
	StatusAccepted:   {StatusDispatched},
	StatusDispatched: {StatusDelivered},
	StatusDelivered:  {StatusCompleted},
}

// CanTransition reports whether the edge is in the permitted graph.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition checks the edge and its required metadata.
// A request for the order's current status is an idempotent retry and is the
// caller's responsibility to short-circuit before invoking this.
func ValidateTransition(order PurchaseOrder, requested Status, meta TransitionMetadata) error {
	if !requested.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, requested)
	}
	if !CanTransition(order.Status, requested) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, requested)
	}
	switch requested {
	case StatusRejected:
		if strings.TrimSpace(meta.Reason) == "" {
			return fmt.Errorf("%w: rejection requires a reason", ErrValidation)
		}
	case StatusDelivered:
		if meta.ActualDeliveryDate == nil || meta.ActualDeliveryDate.IsZero() {
			return fmt.Errorf("%w: delivery requires actual_delivery_date", ErrValidation)
		}
	}
	return nil
}

// ApplyTransition returns a copy of the order with the new status and edge
// metadata applied. It does not persist anything.
func ApplyTransition(order PurchaseOrder, requested Status, meta TransitionMetadata, now time.Time) PurchaseOrder {
	order.Status = requested
	order.UpdatedAt = now
	switch requested {
	case StatusRejected:
		reason := strings.TrimSpace(meta.Reason)
		order.RejectedReason = &reason
	case StatusDelivered:
		order.ActualDeliveryDate = meta.ActualDeliveryDate
		if notes := strings.TrimSpace(meta.DeliveryNotes); notes != "" {
			order.DeliveryNotes = &notes
		}
	case StatusCompleted:
		if notes := strings.TrimSpace(meta.DeliveryNotes); notes != "" {
			order.DeliveryNotes = &notes
		}
	}
	return order
}
