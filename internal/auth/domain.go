// Package auth resolves caller identity for the API. Token issuance lives in an
// external identity service; this package only looks tokens up and exposes the
// resulting actor to downstream handlers.
package auth

import (
	"context"
	"errors"
)

// Role enumerates caller roles recognised by the workflow.
type Role string

const (
	// RoleSupplier is a supplier-side user acting on its own orders.
	RoleSupplier Role = "SUPPLIER"
	// RoleAdmin is a back-office user.
	RoleAdmin Role = "ADMIN"
)

// IsValid checks if the role is recognised.
func (r Role) IsValid() bool {
	return r == RoleSupplier || r == RoleAdmin
}

// Actor is the resolved identity of the caller.
type Actor struct {
	UserID     int64 `json:"user_id"`
	Role       Role  `json:"role"`
	SupplierID int64 `json:"supplier_id,omitempty"`
}

// ErrTokenUnknown indicates the bearer token has no stored identity.
var ErrTokenUnknown = errors.New("auth: unknown token")

type actorContextKey struct{}

// ContextWithActor stores the actor in context.
func ContextWithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the actor from context.
func ActorFromContext(ctx context.Context) *Actor {
	actor, _ := ctx.Value(actorContextKey{}).(*Actor)
	return actor
}
