package cart

import (
	"context"
	"errors"
	"time"

	"github.com/ekinderauto/storefront-backend/pkg/redis"
)

// RedisStorage persists carts under the shared cart key namespace with a
// sliding retention window: every write refreshes the TTL.
type RedisStorage struct {
	client    *redis.Client
	retention time.Duration
}

func NewRedisStorage(client *redis.Client, retention time.Duration) *RedisStorage {
	return &RedisStorage{client: client, retention: retention}
}

func (r *RedisStorage) Get(ctx context.Context, sessionID string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.client.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(value), nil
}

func (r *RedisStorage) Set(ctx context.Context, sessionID string, value []byte) error {
	return r.client.Set(ctx, r.client.CartKey(sessionID), value, r.retention)
}

func (r *RedisStorage) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.client.CartKey(sessionID))
}
