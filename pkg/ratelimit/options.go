package ratelimit

import "time"

// Option configures a limiter.
type Option func(*options)

type options struct {
	now     func() time.Time
	prefix  string
	maxKeys int
}

func defaultOptions() *options {
	return &options{
		now:     time.Now,
		prefix:  "ratelimit",
		maxKeys: 100_000,
	}
}

// WithPrefix sets the key namespace. Keys are stored as "{prefix}:{key}".
// Default: "ratelimit".
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithClock overrides the time source.
// Default: time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithMaxKeys caps the number of keys tracked by the memory limiter.
// The least recently used key is dropped when the cap is reached.
// Ignored by the Redis limiter.
// Default: 100000.
func WithMaxKeys(n int) Option {
	return func(o *options) {
		o.maxKeys = n
	}
}

func (o *options) key(k string) string {
	if o.prefix == "" {
		return k
	}
	return o.prefix + ":" + k
}
