package admission

import (
	"fmt"
	"time"
)

// Policy holds the tunable thresholds of the pipeline.
// Request limits themselves live in the configured limiters; the windows
// here are only used as the reported wait when a limiter fails.
type Policy struct {
	Messages Messages
	// WatchedDomains lists recipient domains treated as internal. Recipients
	// elsewhere are admitted but logged as external. Empty disables the check.
	WatchedDomains  []string
	ClientWindow    time.Duration
	RecipientWindow time.Duration
	// Per-call timeouts. Zero leaves the call bounded by the request context only.
	VerifyTimeout   time.Duration
	LimiterTimeout  time.Duration
	DispatchTimeout time.Duration
	// Message length bounds, in Unicode code points.
	MinLength int
	MaxLength int
}

// DefaultPolicy returns the stock thresholds.
func DefaultPolicy() Policy {
	return Policy{
		Messages:        DefaultMessages(),
		ClientWindow:    time.Hour,
		RecipientWindow: time.Minute,
		VerifyTimeout:   5 * time.Second,
		LimiterTimeout:  2 * time.Second,
		DispatchTimeout: 10 * time.Second,
		MinLength:       10,
		MaxLength:       500,
	}
}

// Budget is the longest a single admission can block on its collaborators:
// one verification, two limiter calls and one dispatch.
func (p Policy) Budget() time.Duration {
	return p.VerifyTimeout + 2*p.LimiterTimeout + p.DispatchTimeout
}

// Validate checks the policy for contradictory values.
func (p Policy) Validate() error {
	switch {
	case p.MinLength < 0:
		return fmt.Errorf("%w: negative minimum length %d", ErrInvalidPolicy, p.MinLength)
	case p.MaxLength < p.MinLength:
		return fmt.Errorf("%w: maximum length %d below minimum %d", ErrInvalidPolicy, p.MaxLength, p.MinLength)
	case p.ClientWindow <= 0 || p.RecipientWindow <= 0:
		return fmt.Errorf("%w: rate-limit windows must be positive", ErrInvalidPolicy)
	case p.VerifyTimeout < 0 || p.LimiterTimeout < 0 || p.DispatchTimeout < 0:
		return fmt.Errorf("%w: negative timeout", ErrInvalidPolicy)
	}
	return nil
}
