package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/correio/pkg/logger"
)

type ctxKey struct{}

func requestID(ctx context.Context) (slog.Attr, bool) {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return slog.String("request_id", v), true
	}
	return slog.Attr{}, false
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("adds extracted attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log, flush := logger.New(logger.Config{Level: slog.LevelInfo}, &buf, requestID, nil)
		require.True(t, flush(0))

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
		log.With(slog.String("component", "test")).InfoContext(ctx, "hello")

		got := decode(t, &buf)
		require.Equal(t, "hello", got["msg"])
		require.Equal(t, "req-1", got["request_id"])
		require.Equal(t, "test", got["component"])
	})

	t.Run("respects level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log, _ := logger.New(logger.Config{Level: slog.LevelWarn}, &buf)
		log.Info("dropped")
		require.Zero(t, buf.Len())

		log.Warn("kept")
		require.Equal(t, "kept", decode(t, &buf)["msg"])
	})

	t.Run("no extractor value", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log, _ := logger.New(logger.Config{}, &buf, requestID)
		log.InfoContext(context.Background(), "x")

		_, ok := decode(t, &buf)["request_id"]
		require.False(t, ok)
	})
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.False(t, log.Enabled(context.Background(), slog.LevelError))
}

func TestRedactEmail(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"alice@example.com":   "al***@example.com",
		" bob@example.com ":   "***@example.com",
		"ab@example.com":      "***@example.com",
		"not-an-email":        "***@***",
		"a@b@c":               "***@***",
		"user@":               "***@***",
		"ção.silva@exemplo.br": "çã***@exemplo.br",
	}

	for in, want := range tests {
		require.Equal(t, want, logger.RedactEmail(in), in)
	}
}

func TestEmailDomain(t *testing.T) {
	t.Parallel()

	require.Equal(t, "example.com", logger.EmailDomain("Alice@Example.COM"))
	require.Empty(t, logger.EmailDomain("nope"))
	require.Empty(t, logger.EmailDomain("a@b@c"))
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	require.Equal(t, "al***@example.com", logger.Email("to", "alice@example.com").Value.String())
	require.Equal(t, "boom", logger.Error(errors.New("boom")).Value.String())
	require.True(t, logger.Error(nil).Equal(slog.Attr{}))
}
