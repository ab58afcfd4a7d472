package cache

import (
	"context"
	"time"
)

// Cache is a generic key-value store with TTL support whose only write
// path is an atomic read-modify-write.
//
// TTL semantics for Update:
//   - Positive duration: item expires after this duration
//   - Zero: use the cache's configured default TTL
//   - Negative: item never expires
type Cache[V any] interface {
	// Update atomically reads the current value (found reports whether it
	// exists and is live), stores the value returned by fn with the TTL
	// returned by fn, and returns it. If fn returns keep=false the key is
	// removed instead.
	Update(ctx context.Context, key string, fn UpdateFunc[V]) (V, error)

	// Close releases resources (stops background goroutines, etc.).
	Close() error
}

// UpdateFunc computes a new value from the current one.
type UpdateFunc[V any] func(current V, found bool) (next V, ttl time.Duration, keep bool)
