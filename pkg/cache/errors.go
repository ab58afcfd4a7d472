package cache

import "errors"

// Sentinel errors for cache operations.
var (
	// ErrClosed is returned when an operation is attempted on a closed cache.
	ErrClosed = errors.New("cache: closed")
)
