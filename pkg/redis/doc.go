// Package redis opens the go-redis client that backs the distributed rate
// limiter and exposes its readiness check and shutdown hook.
//
//	client, err := redis.Open(ctx, cfg.Redis, redis.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//
//	app := internal.New(internal.WithHealthChecks(
//	    internal.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	))
//	err = app.Run(cfg.Address, internal.ShutdownHook(redis.Shutdown(client)))
//
// Open accepts redis:// and rediss:// URLs and pings the server before
// returning, retrying Config.ConnectAttempts times with a growing pause.
package redis
