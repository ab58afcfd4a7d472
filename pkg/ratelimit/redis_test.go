package ratelimit_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/correio/pkg/ratelimit"
)

func TestNewRedis_Validation(t *testing.T) {
	t.Parallel()

	_, client := newRedisClient(t)

	_, err := ratelimit.NewRedis(client, 0, time.Minute)
	require.ErrorIs(t, err, ratelimit.ErrInvalidLimit)

	_, err = ratelimit.NewRedis(client, 3, 0)
	require.ErrorIs(t, err, ratelimit.ErrInvalidLimit)
}

func TestRedis_Allow(t *testing.T) {
	t.Parallel()

	t.Run("admits up to limit then denies", func(t *testing.T) {
		t.Parallel()

		_, client := newRedisClient(t)
		clock := newFakeClock()
		lim, err := ratelimit.NewRedis(client, 3, time.Minute, ratelimit.WithClock(clock.Now))
		require.NoError(t, err)

		ctx := context.Background()
		for i := range 3 {
			d, err := lim.Allow(ctx, "a@example.com")
			require.NoError(t, err)
			require.True(t, d.Allowed, "attempt %d", i+1)
			require.Equal(t, 3-(i+1), d.Remaining)
			clock.Advance(time.Second)
		}

		d, err := lim.Allow(ctx, "a@example.com")
		require.NoError(t, err)
		require.False(t, d.Allowed)
		require.Equal(t, 0, d.Remaining)
		require.Equal(t, 3, d.Limit)
		// Oldest event was 3s ago, so it leaves the window in 57s.
		require.Equal(t, 57*time.Second, d.ResetAfter)
		require.Equal(t, clock.Now().Add(57*time.Second), d.ResetAt)
		require.Equal(t, 57*time.Second, ratelimit.RetryAfter(d.ResetAfter))
	})

	t.Run("window slides", func(t *testing.T) {
		t.Parallel()

		_, client := newRedisClient(t)
		clock := newFakeClock()
		lim, err := ratelimit.NewRedis(client, 2, time.Minute, ratelimit.WithClock(clock.Now))
		require.NoError(t, err)

		ctx := context.Background()
		d, err := lim.Allow(ctx, "k")
		require.NoError(t, err)
		require.True(t, d.Allowed)

		clock.Advance(30 * time.Second)
		d, err = lim.Allow(ctx, "k")
		require.NoError(t, err)
		require.True(t, d.Allowed)

		d, err = lim.Allow(ctx, "k")
		require.NoError(t, err)
		require.False(t, d.Allowed)

		// First event leaves the window exactly one window after it was recorded.
		clock.Advance(30 * time.Second)
		d, err = lim.Allow(ctx, "k")
		require.NoError(t, err)
		require.True(t, d.Allowed)

		d, err = lim.Allow(ctx, "k")
		require.NoError(t, err)
		require.False(t, d.Allowed)
	})

	t.Run("denied attempts are not recorded", func(t *testing.T) {
		t.Parallel()

		_, client := newRedisClient(t)
		clock := newFakeClock()
		lim, err := ratelimit.NewRedis(client, 1, time.Minute, ratelimit.WithClock(clock.Now))
		require.NoError(t, err)

		ctx := context.Background()
		_, err = lim.Allow(ctx, "k")
		require.NoError(t, err)

		for range 5 {
			clock.Advance(10 * time.Second)
			d, err := lim.Allow(ctx, "k")
			require.NoError(t, err)
			require.False(t, d.Allowed)
		}

		clock.Advance(10 * time.Second)
		d, err := lim.Allow(ctx, "k")
		require.NoError(t, err)
		require.True(t, d.Allowed)
	})

	t.Run("keys are independent and prefixed", func(t *testing.T) {
		t.Parallel()

		mr, client := newRedisClient(t)
		lim, err := ratelimit.NewRedis(client, 1, time.Minute, ratelimit.WithPrefix("rl:client"))
		require.NoError(t, err)

		ctx := context.Background()
		d, err := lim.Allow(ctx, "1.1.1.1")
		require.NoError(t, err)
		require.True(t, d.Allowed)

		d, err = lim.Allow(ctx, "2.2.2.2")
		require.NoError(t, err)
		require.True(t, d.Allowed)

		require.True(t, mr.Exists("rl:client:1.1.1.1"))
		require.True(t, mr.Exists("rl:client:2.2.2.2"))
	})

	t.Run("empty key", func(t *testing.T) {
		t.Parallel()

		_, client := newRedisClient(t)
		lim, err := ratelimit.NewRedis(client, 1, time.Minute)
		require.NoError(t, err)

		_, err = lim.Allow(context.Background(), "")
		require.ErrorIs(t, err, ratelimit.ErrEmptyKey)
	})

	t.Run("store unavailable", func(t *testing.T) {
		t.Parallel()

		mr, client := newRedisClient(t)
		lim, err := ratelimit.NewRedis(client, 1, time.Minute)
		require.NoError(t, err)

		mr.Close()

		_, err = lim.Allow(context.Background(), "k")
		require.ErrorIs(t, err, ratelimit.ErrStoreFailed)
	})

	t.Run("concurrent callers never over-admit", func(t *testing.T) {
		t.Parallel()

		_, client := newRedisClient(t)
		lim, err := ratelimit.NewRedis(client, 10, time.Hour)
		require.NoError(t, err)

		var admitted atomic.Int32
		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				d, err := lim.Allow(context.Background(), "shared")
				if err == nil && d.Allowed {
					admitted.Add(1)
				}
			}()
		}
		wg.Wait()

		require.Equal(t, int32(10), admitted.Load())
	})
}
