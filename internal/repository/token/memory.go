package token

import (
	"context"
	"sync"
	"time"

	"marketplace-api/internal/domain"
)

// memoryStore is a process-local Store with lazy TTL eviction. Used by tests
// and single-node deployments without redis.
type memoryStore struct {
	mu     sync.Mutex
	tokens map[string]memoryEntry
	now    func() time.Time
}

type memoryEntry struct {
	token    Token
	evictAt  time.Time
}

func NewMemory() Store {
	return &memoryStore{tokens: make(map[string]memoryEntry), now: time.Now}
}

func (s *memoryStore) Create(_ context.Context, t Token, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[t.Token] = memoryEntry{token: t, evictAt: s.now().Add(ttl)}
	return nil
}

func (s *memoryStore) Get(_ context.Context, token string) (*Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if s.now().After(entry.evictAt) {
		delete(s.tokens, token)
		return nil, domain.ErrNotFound
	}
	t := entry.token
	return &t, nil
}

func (s *memoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(s.tokens, token)
	return nil
}
