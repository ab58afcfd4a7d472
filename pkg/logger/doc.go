// Package logger builds the application's slog logger.
//
// Records are written as JSON. Request-scoped values are attached through
// [ContextExtractor] functions that run on every log call:
//
//	log, flush := logger.New(cfg, os.Stdout, middlewares.RequestIDExtractor())
//	defer flush(2 * time.Second)
//
//	log.InfoContext(ctx, "message dispatched", slog.String("recipient_domain", "example.com"))
//	// {"level":"INFO","msg":"message dispatched","recipient_domain":"example.com","request_id":"..."}
//
// # Sentry
//
// With Config.SentryDSN set, errors become Sentry issues and warnings (or
// only errors, see Config.SentryMinLevel) are stored as Sentry logs. Without
// a DSN, or if Sentry fails to initialise, only the JSON output is used.
//
// # Personal data
//
// Recipient addresses must not reach the logs in clear text. Use
// [RedactEmail] or [EmailDomain], or the [Email] attribute helper.
package logger
