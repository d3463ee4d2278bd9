package orders

import (
	"fmt"

	"github.com/shoplite/shoplite/internal/auth"
)

// Edge identifies a status transition in the workflow graph.
type Edge struct {
	From Status
	To   Status
}

// RoleGate decides which actor role may invoke which transition. It is a pure
// policy table with no side effects; ownership of supplier orders is checked here
// as well so a supplier can never act on another supplier's order.
type RoleGate struct {
	policy map[auth.Role]map[Edge]struct{}
}

// NewRoleGate builds the default policy table.
func NewRoleGate() *RoleGate {
	supplier := map[Edge]struct{}{
		{StatusPending, StatusAccepted}:     {},
		{StatusPending, StatusRejected}:     {},
		{StatusAccepted, StatusDispatched}:  {},
		{StatusDispatched, StatusDelivered}: {},
	}
	admin := map[Edge]struct{}{
		{StatusDelivered, StatusCompleted}: {},
		{StatusPending, StatusRejected}:    {},
	}
	return &RoleGate{policy: map[auth.Role]map[Edge]struct{}{
		auth.RoleSupplier: supplier,
		auth.RoleAdmin:    admin,
	}}
}

// Authorize returns nil when the actor may move the order along the edge.
func (g *RoleGate) Authorize(actor auth.Actor, order PurchaseOrder, requested Status) error {
	if actor.Role == auth.RoleSupplier && actor.SupplierID != order.SupplierID {
		return fmt.Errorf("%w: supplier %d does not own order %d", ErrUnauthorized, actor.SupplierID, order.ID)
	}
	edges, ok := g.policy[actor.Role]
	if !ok {
		return fmt.Errorf("%w: unknown role %q", ErrUnauthorized, actor.Role)
	}
	if _, ok := edges[Edge{From: order.Status, To: requested}]; !ok {
		return fmt.Errorf("%w: role %s may not move %s to %s", ErrUnauthorized, actor.Role, order.Status, requested)
	}
	return nil
}
