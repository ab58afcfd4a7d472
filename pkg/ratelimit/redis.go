package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindowScript trims the window, admits the event when there is room
// and reports the time until the oldest remaining event expires.
//
// KEYS[1] sorted set key
// ARGV[1] now (ms), ARGV[2] window (ms), ARGV[3] limit, ARGV[4] member
//
// Returns {allowed, count, reset_after_ms}.
const slidingWindowScript = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call("ZREMRANGEBYSCORE", key, "-inf", now - window)

local count = redis.call("ZCARD", key)
local allowed = 0
if count < limit then
    redis.call("ZADD", key, now, ARGV[4])
    redis.call("PEXPIRE", key, window)
    count = count + 1
    allowed = 1
end

local reset = window
local oldest = redis.call("ZRANGE", key, 0, 0, "WITHSCORES")
if oldest[2] then
    reset = tonumber(oldest[2]) + window - now
end

return {allowed, count, reset}
`

// Redis is a sliding-window limiter backed by Redis sorted sets.
type Redis struct {
	client redis.UniversalClient
	script *redis.Script
	opts   *options
	window time.Duration
	limit  int
}

// NewRedis creates a limiter admitting up to limit events per window for
// each key.
//
// Example:
//
//	lim, err := ratelimit.NewRedis(client, 3, time.Minute,
//	    ratelimit.WithPrefix("rl:recipient"),
//	)
func NewRedis(client redis.UniversalClient, limit int, window time.Duration, opts ...Option) (*Redis, error) {
	if err := validate(limit, window); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Redis{
		client: client,
		script: redis.NewScript(slidingWindowScript),
		opts:   o,
		window: window,
		limit:  limit,
	}, nil
}

// Allow records an event for key when the window has room.
func (r *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	if key == "" {
		return Decision{}, ErrEmptyKey
	}

	now := r.opts.now()
	nowMs := now.UnixMilli()
	member := fmt.Sprintf("%d:%s", nowMs, uuid.NewString())

	res, err := r.script.Run(ctx, r.client,
		[]string{r.opts.key(key)},
		nowMs, r.window.Milliseconds(), r.limit, member,
	).Int64Slice()
	if err != nil {
		return Decision{}, errors.Join(ErrStoreFailed, err)
	}
	if len(res) != 3 {
		return Decision{}, fmt.Errorf("%w: got %d values", ErrUnexpectedReply, len(res))
	}

	allowed := res[0] == 1
	used := int(res[1])
	resetAfter := time.Duration(res[2]) * time.Millisecond

	return newDecision(key, r.limit, used, allowed, now, resetAfter), nil
}

var _ Limiter = (*Redis)(nil)
