package vault

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// ErrStorageUnavailable wraps backend failures from a [Storage] implementation.
var ErrStorageUnavailable = errors.New("vault storage unavailable")

// Storage is the persistence contract for remembered credentials. A missing
// key returns ("", nil); only backend failures return an error.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// MemoryStorage is an in-process [Storage]. Safe for concurrent use.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

// Get returns the stored value for key, or "" when absent.
func (m *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

// Set stores value under key, overwriting any prior value.
func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Delete removes the given keys. Missing keys are not an error.
func (m *MemoryStorage) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

// RedisStorage is a Redis-backed [Storage] for deployments where remembered
// credentials follow the operator across console nodes.
type RedisStorage struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStorage creates a RedisStorage. prefix namespaces the keys;
// an empty prefix defaults to "ca:vault".
func NewRedisStorage(client redis.UniversalClient, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = "ca:vault"
	}
	return &RedisStorage{redis: client, prefix: prefix}
}

func (r *RedisStorage) key(k string) string {
	return r.prefix + ":" + k
}

// Get returns the stored value for key, or "" when the key does not exist.
func (r *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	val, err := r.redis.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return val, nil
}

// Set stores value under key without expiry: remembered credentials live
// until Forget.
func (r *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := r.redis.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Delete removes the given keys.
func (r *RedisStorage) Delete(ctx context.Context, keys ...string) error {
	namespaced := make([]string, len(keys))
	for i, k := range keys {
		namespaced[i] = r.key(k)
	}
	if err := r.redis.Del(ctx, namespaced...).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}
