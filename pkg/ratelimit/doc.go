// Package ratelimit implements sliding-window-log rate limiting.
//
// An event is admitted when fewer than the configured limit of events were
// admitted for the same key within the trailing window. Denied attempts are
// not recorded, so a client hammering a closed window does not extend it.
//
// Two backends share the [Limiter] interface:
//
//   - [NewRedis] keeps one sorted set per key and evaluates the window in a
//     single Lua script, so concurrent instances never over-admit.
//   - [NewMemory] keeps per-key timestamps in process memory. Use it for
//     single-instance deployments, local development and tests.
//
// Example:
//
//	lim, err := ratelimit.NewRedis(client, 10, time.Hour, ratelimit.WithPrefix("rl:client"))
//	if err != nil {
//	    return err
//	}
//	d, err := lim.Allow(ctx, clientKey)
//	if err != nil {
//	    return err
//	}
//	if !d.Allowed {
//	    // retry after d.ResetAfter
//	}
package ratelimit
