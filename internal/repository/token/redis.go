package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"marketplace-api/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "token:"

type redisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Create(ctx context.Context, t Token, ttl time.Duration) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	return s.client.Set(ctx, keyPrefix+t.Token, payload, ttl).Err()
}

func (s *redisStore) Get(ctx context.Context, token string) (*Token, error) {
	raw, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var t Token
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("unmarshal token: %w", err)
	}
	return &t, nil
}

func (s *redisStore) Delete(ctx context.Context, token string) error {
	removed, err := s.client.Del(ctx, keyPrefix+token).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return domain.ErrNotFound
	}
	return nil
}
