package cache

import (
	"context"
	"errors"
	"time"
)

// ErrEmptyKey is returned when an operation is called without a key.
var ErrEmptyKey = errors.New("cache: empty key")

// Cache is the key/value store shared by the listing cache and the task queue.
// A zero ttl stores the value without expiration.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// New returns a redis cache when an address is configured and a memory cache otherwise.
func New(ctx context.Context, cfg Config) (Cache, error) {
	if cfg.Addr == "" {
		return NewMemory(), nil
	}
	return OpenRedis(ctx, cfg.Addr, cfg.Password, cfg.DB)
}
