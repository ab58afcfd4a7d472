// Package cache provides a generic in-memory key-value store with TTL
// expiration, LRU eviction and atomic read-modify-write.
//
// It backs the in-process rate limiter used when no Redis URL is configured,
// so every operation honours an injectable clock:
//
//	c := cache.NewMemory[[]time.Time](
//	    cache.WithMaxEntries(100_000),
//	    cache.WithClock(clock.Now),
//	)
//	defer c.Close()
//
// # TTL
//
//   - Positive duration: item expires after this duration
//   - Zero: use the configured default TTL (1 hour by default)
//   - Negative: item never expires
//
// # Atomic updates
//
// [Memory.Update] hands the current value to a callback while holding the
// cache lock and stores whatever the callback returns:
//
//	hits, err := c.Update(ctx, key, func(cur int, found bool) (int, time.Duration, bool) {
//	    return cur + 1, time.Minute, true
//	})
//
// # Errors
//
//   - [ErrClosed]: operation on a closed cache
package cache
