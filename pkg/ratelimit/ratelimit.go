package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether one more event for key fits into the window.
// Implementations are safe for concurrent use.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Decision is the result of a single Allow call.
type Decision struct {
	// ResetAt is the instant the oldest admitted event leaves the window.
	ResetAt time.Time
	Key     string
	// ResetAfter is the time from now until ResetAt.
	ResetAfter time.Duration
	Limit      int
	Remaining  int
	Allowed    bool
}

// RetryAfter rounds a denied caller's wait up to whole seconds, never below
// one, as sent in the Retry-After header. A non-positive wait yields zero.
func RetryAfter(wait time.Duration) time.Duration {
	if wait <= 0 {
		return 0
	}
	secs := (wait + time.Second - 1) / time.Second
	return secs * time.Second
}

func newDecision(key string, limit, used int, allowed bool, now time.Time, resetAfter time.Duration) Decision {
	resetAfter = max(resetAfter, 0)
	return Decision{
		Key:        key,
		Limit:      limit,
		Remaining:  max(limit-used, 0),
		Allowed:    allowed,
		ResetAfter: resetAfter,
		ResetAt:    now.Add(resetAfter),
	}
}

func validate(limit int, window time.Duration) error {
	if limit <= 0 || window <= 0 {
		return ErrInvalidLimit
	}
	return nil
}
