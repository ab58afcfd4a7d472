// Package internal is the HTTP kernel of the service: a thin layer over chi
// that gives handlers a Context, turns returned errors into JSON responses
// and runs the server with graceful shutdown.
//
// # Core Types
//
//   - App: router, middleware chain, error handler, server lifecycle
//   - Context: request/response access; also a context.Context
//   - Router: what handlers use to declare routes
//   - Handler: a type that declares routes
//   - HandlerFunc: a route handler returning an error
//   - Middleware: wraps a HandlerFunc
//   - HTTPError: status, message, code and extra body fields
//
// # Errors
//
// Handlers return errors instead of writing failure responses. The
// ErrorHandler (DefaultErrorHandler unless replaced) renders them as
//
//	{"message": "Invalid email format.", "error": "INVALID_EMAIL"}
//
// Anything that is not an HTTPError becomes a 500 with a generic message;
// the cause is logged and never sent to the client.
//
// Unknown routes and wrong methods answer 404 NOT_FOUND and
// 405 METHOD_NOT_ALLOWED in the same format.
//
// # Running
//
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithHTTPMiddleware(middlewares.CORS(cfg.CORS)),
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    internal.WithHandlers(handlers.NewMessage(pipeline)),
//	    internal.WithHealthChecks(internal.WithReadinessCheck("redis", redis.Healthcheck(client))),
//	)
//	err := app.Run(":8080", internal.Logger(log), internal.ShutdownHook(redis.Shutdown(client)))
//
// Plain net/http middleware given to WithHTTPMiddleware runs before any
// Middleware and may answer without reaching the router.
package internal
