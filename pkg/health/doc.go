// Package health provides liveness and readiness HTTP handlers.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "redis": redis.Healthcheck(client),
//	}, health.WithLogger(log)))
//
// Checks run concurrently under one timeout (5s by default). Responses are
// plain text ("OK", or "Service Unavailable: redis" naming the failing checks)
// unless the client asks for JSON with Accept: application/json or
// ?format=json:
//
//	{"status": "unhealthy", "checks": {"redis": {"status": "unhealthy", "error": "connection refused"}}}
package health
