package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *TokenStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenStore(client, time.Hour)
}

func TestTokenStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	actor := Actor{UserID: 7, Role: RoleSupplier, SupplierID: 3}
	require.NoError(t, store.Bind(ctx, "tok-supplier", actor))

	resolved, err := store.Resolve(ctx, "tok-supplier")
	require.NoError(t, err)
	require.Equal(t, actor, resolved)
}

func TestTokenStoreUnknownToken(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Resolve(context.Background(), "nope")
	require.ErrorIs(t, err, ErrTokenUnknown)

	_, err = store.Resolve(context.Background(), "")
	require.ErrorIs(t, err, ErrTokenUnknown)
}

func TestTokenStoreRevoke(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Bind(ctx, "tok-admin", Actor{UserID: 1, Role: RoleAdmin}))
	require.NoError(t, store.Revoke(ctx, "tok-admin"))

	_, err := store.Resolve(ctx, "tok-admin")
	require.ErrorIs(t, err, ErrTokenUnknown)
}

func TestTokenStoreRejectsInvalidRole(t *testing.T) {
	store := newTestStore(t)
	err := store.Bind(context.Background(), "tok-x", Actor{UserID: 2, Role: "MANAGER"})
	require.Error(t, err)
}
