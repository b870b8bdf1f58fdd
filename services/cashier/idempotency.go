package cashier

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const idempotencyPrefix = "idem:"

// IdempotencyStore claims request keys so a retried write is applied once.
type IdempotencyStore interface {
	// Acquire claims key for ttl and reports whether this caller got it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// RedisIdempotencyStore keeps claimed keys in redis with SETNX.
type RedisIdempotencyStore struct {
	Client *redis.Client
}

func NewRedisIdempotencyStore(client *redis.Client) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{Client: client}
}

func (s *RedisIdempotencyStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.Client.SetNX(ctx, idempotencyPrefix+key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim idempotency key: %w", err)
	}
	return ok, nil
}

func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	return s.Client.Del(ctx, idempotencyPrefix+key).Err()
}

// Idempotent runs fn once per key. An empty key always runs fn. When fn fails
// the key is released so the client may retry.
func Idempotent(ctx context.Context, store IdempotencyStore, key string, ttl time.Duration, fn func() error) error {
	if key == "" || store == nil {
		return fn()
	}
	ok, err := store.Acquire(ctx, key, ttl)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDuplicateRequest
	}
	if err := fn(); err != nil {
		if relErr := store.Release(ctx, key); relErr != nil {
			return fmt.Errorf("%w (release idempotency key: %v)", err, relErr)
		}
		return err
	}
	return nil
}
