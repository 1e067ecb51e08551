package user

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	tokenstore "marketplace-api/internal/repository/token"
)

type tokenManager struct {
	store tokenstore.Store
}

func newTokenManager(store tokenstore.Store) *tokenManager {
	return &tokenManager{store: store}
}

func (m *tokenManager) Issue(ctx context.Context, userID, kind string, ttl time.Duration) (string, error) {
	token, err := randomToken()
	if err != nil {
		return "", err
	}
	err = m.store.Create(ctx, tokenstore.Token{
		Token:     token,
		UserID:    userID,
		Kind:      kind,
		ExpiresAt: time.Now().Add(ttl),
	}, ttl)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Validate resolves a live token of the expected kind to its user id.
func (m *tokenManager) Validate(ctx context.Context, token, kind string) (string, error) {
	t, err := m.store.Get(ctx, token)
	if err != nil {
		return "", ErrInvalidToken
	}
	if t.Kind != kind {
		return "", ErrInvalidToken
	}
	if time.Now().After(t.ExpiresAt) {
		_ = m.store.Delete(ctx, token)
		return "", ErrInvalidToken
	}
	return t.UserID, nil
}

func (m *tokenManager) Revoke(ctx context.Context, token string) error {
	return m.store.Delete(ctx, token)
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
