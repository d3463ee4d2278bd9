package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore resolves bearer tokens to actors using Redis.
type TokenStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewTokenStore constructs a TokenStore.
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	if ttl <= 0 {
		ttl = 720 * time.Hour
	}
	return &TokenStore{client: client, prefix: "shoplite:token:", ttl: ttl}
}

// Resolve returns the actor bound to the token.
func (s *TokenStore) Resolve(ctx context.Context, token string) (Actor, error) {
	if token == "" {
		return Actor{}, ErrTokenUnknown
	}
	raw, err := s.client.Get(ctx, s.prefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Actor{}, ErrTokenUnknown
		}
		return Actor{}, fmt.Errorf("auth: resolve token: %w", err)
	}
	var actor Actor
	if err := json.Unmarshal([]byte(raw), &actor); err != nil {
		return Actor{}, fmt.Errorf("auth: decode actor: %w", err)
	}
	if !actor.Role.IsValid() {
		return Actor{}, ErrTokenUnknown
	}
	return actor, nil
}

// Bind stores the actor under the token. Used by the external identity service
// and by seed tooling; exposed here so tests and ops scripts share one codec.
func (s *TokenStore) Bind(ctx context.Context, token string, actor Actor) error {
	if token == "" {
		return errors.New("auth: token required")
	}
	if !actor.Role.IsValid() {
		return fmt.Errorf("auth: invalid role %q", actor.Role)
	}
	raw, err := json.Marshal(actor)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+token, raw, s.ttl).Err()
}

// Revoke removes a token binding.
func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.prefix+token).Err()
}
