package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 2 * time.Second

// RedisStore is a KeyValueStore backed by a shared redis instance, for
// garages where several workstations feed the same learned phrase pool.
// Concurrent writers race last-write-wins; the learned store re-dedupes by
// semantic key on load, so a lost write costs at most one phrase.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to addr and verifies the server responds. Returns
// an error when redis is unreachable so callers can fall back to memory.
func NewRedisStore(addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

// Get returns the blob stored under key; "" when the key is absent.
func (r *RedisStore) Get(key string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	value, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores the blob under key with no expiry.
func (r *RedisStore) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	return r.client.Set(ctx, key, value, 0).Err()
}

// Close releases the underlying client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
