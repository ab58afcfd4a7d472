package internal

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/correio/pkg/logger"
)

const (
	codeInternalError    = "INTERNAL_ERROR"
	internalErrorMessage = "Internal server error."
)

// DefaultErrorHandler renders err as JSON:
//
//	{"message": "...", "error": "CODE", ...fields}
//
// Errors that are not HTTPError become a generic 500. The underlying
// error is logged, never rendered.
func DefaultErrorHandler(c Context, err error) error {
	httpErr := AsHTTPError(err)
	if httpErr == nil {
		httpErr = ErrInternal(internalErrorMessage, WithErrorCode(codeInternalError), WithError(err))
	}

	if httpErr.Code >= http.StatusInternalServerError {
		c.LogError("request failed",
			slog.Int("status", httpErr.Code),
			slog.String("code", httpErr.ErrorCode),
			logger.Error(httpErr.Err),
		)
	}

	return WriteError(c, httpErr)
}

// WriteError writes httpErr as the JSON error body.
func WriteError(c Context, httpErr *HTTPError) error {
	body := make(map[string]any, len(httpErr.Fields)+2)
	for k, v := range httpErr.Fields {
		body[k] = v
	}
	body["message"] = httpErr.Message
	if httpErr.ErrorCode != "" {
		body["error"] = httpErr.ErrorCode
	}

	for k, vals := range httpErr.Headers {
		for _, v := range vals {
			c.Response().Header().Add(k, v)
		}
	}

	return c.JSON(httpErr.Code, body)
}
