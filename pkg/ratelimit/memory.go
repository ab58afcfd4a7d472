package ratelimit

import (
	"context"
	"time"

	"github.com/dmitrymomot/correio/pkg/cache"
)

// Memory is a sliding-window limiter that keeps per-key event timestamps in
// process memory. Counters are not shared between instances.
type Memory struct {
	events cache.Cache[[]time.Time]
	opts   *options
	window time.Duration
	limit  int
}

// NewMemory creates an in-process limiter admitting up to limit events per
// window for each key. Call Close to stop the background cleanup.
func NewMemory(limit int, window time.Duration, opts ...Option) (*Memory, error) {
	if err := validate(limit, window); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Memory{
		events: cache.NewMemory[[]time.Time](
			cache.WithClock(o.now),
			cache.WithDefaultTTL(window),
			cache.WithMaxEntries(o.maxKeys),
			cache.WithCleanupInterval(min(window, time.Minute)),
		),
		opts:   o,
		window: window,
		limit:  limit,
	}, nil
}

// Allow records an event for key when the window has room.
func (m *Memory) Allow(ctx context.Context, key string) (Decision, error) {
	if key == "" {
		return Decision{}, ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return Decision{}, err
	}

	now := m.opts.now()
	cutoff := now.Add(-m.window)

	var allowed bool
	kept, err := m.events.Update(ctx, m.opts.key(key), func(cur []time.Time, _ bool) ([]time.Time, time.Duration, bool) {
		live := make([]time.Time, 0, len(cur)+1)
		for _, ts := range cur {
			if ts.After(cutoff) {
				live = append(live, ts)
			}
		}
		if len(live) < m.limit {
			live = append(live, now)
			allowed = true
		}
		return live, m.window, len(live) > 0
	})
	if err != nil {
		return Decision{}, err
	}

	resetAfter := m.window
	if len(kept) > 0 {
		resetAfter = kept[0].Add(m.window).Sub(now)
	}

	return newDecision(key, m.limit, len(kept), allowed, now, resetAfter), nil
}

// Close stops the background cleanup.
func (m *Memory) Close() error {
	return m.events.Close()
}

var _ Limiter = (*Memory)(nil)
