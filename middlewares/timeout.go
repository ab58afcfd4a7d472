package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/correio/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 15 * time.Second

// Timeout bounds the rest of the chain by d. The handler sees the deadline
// through its Context; when it does not return in time a *TimeoutError is
// returned to the error handler. The handler goroutine keeps running until
// it notices the cancelled context.
func Timeout(d time.Duration) internal.Middleware {
	if d <= 0 {
		d = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), d)
			defer cancel()

			c.WithContext(ctx)

			done := make(chan error, 1)
			go func() {
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					c.LogWarn("request timeout", "timeout", d.String())
					return &TimeoutError{Duration: d}
				}
				return ctx.Err()
			}
		}
	}
}
