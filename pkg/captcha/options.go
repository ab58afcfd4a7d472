package captcha

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Provider.
type Option func(*options)

type options struct {
	httpClient *http.Client
	logger     *slog.Logger
	endpoint   string
	timeout    time.Duration
}

// WithHTTPClient sets the HTTP client used for siteverify calls.
// Useful for httptest servers or custom transports.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithEndpoint overrides the provider's siteverify URL.
func WithEndpoint(url string) Option {
	return func(o *options) {
		o.endpoint = url
	}
}

// WithTimeout bounds a single verification call.
// Default: 5 seconds.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithLogger sets the logger used to record verdicts at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
