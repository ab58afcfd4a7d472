package mailer

import "context"

// Sender delivers a prepared Email through a provider.
// Implementations must not retry.
type Sender interface {
	Send(ctx context.Context, email *Email) (*SendResult, error)
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, email *Email) (*SendResult, error)

// Send calls f.
func (f SenderFunc) Send(ctx context.Context, email *Email) (*SendResult, error) {
	return f(ctx, email)
}
