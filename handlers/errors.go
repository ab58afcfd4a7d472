package handlers

import (
	"errors"

	"github.com/dmitrymomot/correio/internal"
	"github.com/dmitrymomot/correio/middlewares"
	"github.com/dmitrymomot/correio/pkg/admission"
)

// ErrorHandler extends internal.DefaultErrorHandler with the middleware
// error types. Admission rejections are rendered without logging again;
// the pipeline already logged them.
func ErrorHandler(c internal.Context, err error) error {
	var rej *admission.Rejection
	if errors.As(err, &rej) {
		if herr := internal.AsHTTPError(err); herr != nil {
			return internal.WriteError(c, herr)
		}
		return internal.WriteError(c, rejectionError(rej))
	}

	if middlewares.IsTimeoutError(err) {
		return internal.DefaultErrorHandler(c, internal.ErrGatewayTimeout(
			"Request timed out. Please try again.",
			internal.WithErrorCode("TIMEOUT"),
			internal.WithError(err),
		))
	}

	return internal.DefaultErrorHandler(c, err)
}
