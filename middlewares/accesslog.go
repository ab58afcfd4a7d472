package middlewares

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/correio/internal"
	"github.com/dmitrymomot/correio/pkg/logger"
)

// AccessLog logs one line per request once the rest of the chain returns.
// Register it after RequestID so the line carries the request ID, and
// before Recover so panics are logged with their final status.
func AccessLog() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Status()
			if err != nil && !c.Written() {
				status = 0
				if herr := internal.AsHTTPError(err); herr != nil {
					status = herr.Code
				}
			}

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start)),
			}
			if err != nil {
				attrs = append(attrs, logger.Error(err))
			}

			c.LogInfo("request", attrs...)
			return err
		}
	}
}
