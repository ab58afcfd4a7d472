package ratelimit

import "errors"

var (
	ErrInvalidLimit    = errors.New("ratelimit: limit and window must be positive")
	ErrEmptyKey        = errors.New("ratelimit: empty key")
	ErrUnexpectedReply = errors.New("ratelimit: unexpected reply from store")
	ErrStoreFailed     = errors.New("ratelimit: store operation failed")
)
