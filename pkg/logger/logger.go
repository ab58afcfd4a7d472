package logger

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// ContextExtractor pulls one request-scoped attribute out of a context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// FlushFunc blocks until buffered events are sent or the timeout elapses.
type FlushFunc func(timeout time.Duration) bool

// New creates a JSON logger writing to w. When cfg.SentryDSN is set, warnings
// and errors are also forwarded to Sentry; the returned FlushFunc drains the
// Sentry buffer and should run on shutdown. If Sentry cannot be initialised
// the logger keeps writing to w and reports the failure there.
func New(cfg Config, w io.Writer, extractors ...ContextExtractor) (*slog.Logger, FlushFunc) {
	base := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.Level})
	noFlush := func(time.Duration) bool { return true }

	if cfg.SentryDSN == "" {
		return slog.New(WithExtractors(base, extractors...)), noFlush
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(base).Error("failed to initialize sentry", slog.String("error", err.Error()))
		return slog.New(WithExtractors(base, extractors...)), noFlush
	}

	logLevels := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.SentryMinLevel >= slog.LevelError {
		logLevels = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevels,
	}.NewSentryHandler(context.Background())

	h := fanout{base, sentryHandler}
	return slog.New(WithExtractors(h, extractors...)), sentry.Flush
}

// NewNope returns a logger that discards everything. Use it in tests and
// as the default for optional loggers.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
