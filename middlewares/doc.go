// Package middlewares provides the HTTP middleware used by the relay.
//
// Register them in this order so every layer sees what the one before it
// established:
//
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithHTTPMiddleware(middlewares.CORS(cfg.CORS)),
//	    internal.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.AccessLog(),
//	        middlewares.SecurityHeaders(middlewares.SecurityHeadersConfig{}),
//	        middlewares.Timeout(15*time.Second),
//	        middlewares.Recover(),
//	    ),
//	)
//
// Recover sits inside Timeout because the timed handler runs on its own
// goroutine.
//
// # Request ID
//
// RequestID reuses a printable upstream X-Request-ID (or X-Correlation-ID)
// and otherwise generates a UUID. Pass RequestIDExtractor to logger.New to
// stamp request_id on every record.
//
// # Errors
//
// Recover returns *PanicError and Timeout returns *TimeoutError. Both are
// plain errors; the application's ErrorHandler decides how they render.
package middlewares
