package admission

import (
	"context"
	"fmt"
	"time"
)

// Request is one inbound send attempt.
type Request struct {
	Email        string
	Message      string
	CaptchaToken string
	// ClientKey scopes the per-client rate limit. Empty means "unknown".
	ClientKey string
	// RemoteIP is forwarded to the verification provider when set.
	RemoteIP string
}

// Note is what gets handed to the dispatcher once every check passed.
type Note struct {
	To      string
	Message string
}

// Outcome is the result of a successful admission.
type Outcome struct {
	Message   string
	MessageID string
	Success   bool
}

// Rejection is the terminal result of a failed gate.
// Err carries the underlying cause for operators and must not be shown to
// the caller.
type Rejection struct {
	Err     error
	Code    Code
	Message string
	Gate    string
	// RemainingTime is set for rate-limit rejections.
	RemainingTime time.Duration
	Status        int
}

// Error implements error.
func (r *Rejection) Error() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: %s: %v", r.Gate, r.Code, r.Err)
	}
	return fmt.Sprintf("%s: %s", r.Gate, r.Code)
}

// Unwrap returns the underlying cause.
func (r *Rejection) Unwrap() error { return r.Err }

// Dispatcher delivers an admitted note and returns the provider message id.
type Dispatcher interface {
	Dispatch(ctx context.Context, note Note) (string, error)
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ctx context.Context, note Note) (string, error)

// Dispatch calls f.
func (f DispatcherFunc) Dispatch(ctx context.Context, note Note) (string, error) {
	return f(ctx, note)
}

// ContentPolicy decides whether a message body may be sent.
// On rejection it returns the term that matched, for logging.
type ContentPolicy interface {
	Allow(message string) (ok bool, matched string)
}

// ContentPolicyFunc adapts a function to ContentPolicy.
type ContentPolicyFunc func(message string) (bool, string)

// Allow calls f.
func (f ContentPolicyFunc) Allow(message string) (bool, string) {
	return f(message)
}
