package token

import (
	"context"
	"time"
)

// Token is an opaque session credential. Eviction is handled by the store's
// TTL, so revocation (logout) and expiry share one mechanism.
type Token struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Kind      string    `json:"kind"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Store interface {
	Create(ctx context.Context, t Token, ttl time.Duration) error
	// Get returns domain.ErrNotFound for unknown or expired tokens.
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
}
