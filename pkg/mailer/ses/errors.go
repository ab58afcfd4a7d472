package ses

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

var (
	ErrMissingSender = errors.New("ses: missing sender email")
	ErrInvalidConfig = errors.New("ses: invalid configuration")
	ErrUnsupported   = errors.New("ses: custom headers and attachments are not supported")
	ErrSendFailed    = errors.New("ses: failed to send email")
	ErrRejected      = errors.New("ses: message rejected")
	ErrThrottled     = errors.New("ses: sending rate exceeded")
	ErrSendingPaused = errors.New("ses: sending paused for account")
)

// wrapError maps SES API error codes to sentinel errors. The original error
// is kept as text only.
func wrapError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "MessageRejected", "MailFromDomainNotVerifiedException", "BadRequestException":
			return fmt.Errorf("%w: %v", ErrRejected, err)
		case "TooManyRequestsException", "LimitExceededException":
			return fmt.Errorf("%w: %v", ErrThrottled, err)
		case "AccountSuspendedException", "SendingPausedException":
			return fmt.Errorf("%w: %v", ErrSendingPaused, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrSendFailed, err)
}
