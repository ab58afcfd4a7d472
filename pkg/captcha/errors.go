package captcha

import "errors"

var (
	// ErrMissingSecret is returned when the provider secret is not configured.
	ErrMissingSecret = errors.New("captcha: missing secret")

	// ErrUnknownProvider is returned for an unsupported provider name.
	ErrUnknownProvider = errors.New("captcha: unknown provider")

	// ErrVerifyFailed is returned when the siteverify request cannot be sent
	// or no response arrives in time.
	ErrVerifyFailed = errors.New("captcha: failed to reach verification endpoint")

	// ErrRequestFailed is returned when the verification endpoint answers with a non-2xx status.
	ErrRequestFailed = errors.New("captcha: verification request returned non-OK status")

	// ErrDecodeFailed is returned when the verification response is not valid JSON.
	ErrDecodeFailed = errors.New("captcha: failed to decode response")

	// ErrEmptyToken is returned when Verify is called without a token.
	ErrEmptyToken = errors.New("captcha: empty token")
)
