package logger

import "log/slog"

// Config holds logger configuration.
// Embed this in the app config for env parsing with caarlos0/env.
type Config struct {
	SentryDSN         string     `env:"SENTRY_DSN"`
	SentryEnvironment string     `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	Level             slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	// SentryMinLevel is the lowest level stored as a Sentry log entry.
	// Errors always create Sentry issues.
	SentryMinLevel slog.Level `env:"SENTRY_MIN_LEVEL" envDefault:"WARN"`
}
