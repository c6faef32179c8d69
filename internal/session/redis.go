package session

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the token under a fixed key. No TTL: expiry is the server's concern.
type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client}
}

func (s *RedisStore) TokenKey() string {
	return namespace + ":" + tokenKey
}

func (s *RedisStore) Token(ctx context.Context) (string, error) {
	token, err := s.Client.Get(ctx, s.TokenKey()).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (s *RedisStore) SaveToken(ctx context.Context, token string) error {
	return s.Client.Set(ctx, s.TokenKey(), token, 0).Err()
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.Client.Del(ctx, s.TokenKey()).Err()
}
