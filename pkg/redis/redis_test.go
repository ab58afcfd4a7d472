package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/correio/pkg/redis"
)

func TestOpen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty url", func(t *testing.T) {
		t.Parallel()

		client, err := redis.Open(ctx, redis.Config{})
		require.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
		require.Nil(t, client)
	})

	t.Run("invalid scheme", func(t *testing.T) {
		t.Parallel()

		for _, url := range []string{"http://localhost:6379", "localhost:6379", "postgresql://localhost:6379"} {
			_, err := redis.Open(ctx, redis.Config{URL: url})
			require.ErrorIs(t, err, redis.ErrFailedToParseURL, url)
		}
	})

	t.Run("connects", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		client, err := redis.Open(ctx, redis.Config{URL: "redis://" + mr.Addr() + "/0", PoolSize: 2})
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })

		require.NoError(t, redis.Healthcheck(client)(ctx))
	})

	t.Run("gives up after attempts", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := redis.Open(ctx, redis.Config{
			URL:             "redis://" + addr,
			ConnectAttempts: 2,
			ConnectInterval: time.Millisecond,
			DialTimeout:     100 * time.Millisecond,
		})
		require.ErrorIs(t, err, redis.ErrConnectionFailed)
	})

	t.Run("cancelled while waiting", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		cctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		_, err := redis.Open(cctx, redis.Config{
			URL:             "redis://" + addr,
			ConnectAttempts: 5,
			ConnectInterval: time.Minute,
			DialTimeout:     20 * time.Millisecond,
		})
		require.ErrorIs(t, err, redis.ErrConnectionFailed)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, redis.Healthcheck(nil)(context.Background()), redis.ErrHealthcheckFailed)

	mr := miniredis.RunT(t)
	client, err := redis.Open(context.Background(), redis.Config{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	mr.SetError("LOADING")
	require.ErrorIs(t, redis.Healthcheck(client)(context.Background()), redis.ErrHealthcheckFailed)
}

type closer struct{ err error }

func (c closer) Close() error { return c.err }

func TestShutdown(t *testing.T) {
	t.Parallel()

	require.NoError(t, redis.Shutdown(closer{})(context.Background()))

	boom := errors.New("boom")
	require.ErrorIs(t, redis.Shutdown(closer{err: boom})(context.Background()), boom)
}

func TestConfig_Enabled(t *testing.T) {
	t.Parallel()

	require.False(t, redis.Config{}.Enabled())
	require.True(t, redis.Config{URL: "redis://localhost:6379"}.Enabled())
}
