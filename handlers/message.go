package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/correio/internal"
	"github.com/dmitrymomot/correio/pkg/admission"
	"github.com/dmitrymomot/correio/pkg/clientip"
	"github.com/dmitrymomot/correio/pkg/logger"
	"github.com/dmitrymomot/correio/pkg/ratelimit"
)

// MaxBodySize caps the request body. Larger bodies are treated as empty.
const MaxBodySize = 16 << 10

// Admitter runs a send attempt through the admission gates.
type Admitter interface {
	Admit(ctx context.Context, req admission.Request) (*admission.Outcome, *admission.Rejection)
}

// sendMessageRequest is the JSON body of POST /send-message.
type sendMessageRequest struct {
	Email        string `json:"email"`
	Message      string `json:"message"`
	CaptchaToken string `json:"captchaToken"`
}

// sendMessageResponse is the success body.
type sendMessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
	Success bool   `json:"success"`
}

// Message serves POST /send-message.
type Message struct {
	admitter Admitter
}

// NewMessage creates the send-message handler.
func NewMessage(a Admitter) *Message {
	return &Message{admitter: a}
}

// Routes implements internal.Handler.
func (h *Message) Routes(r internal.Router) {
	r.POST("/send-message", h.send)
}

func (h *Message) send(c internal.Context) error {
	body := decodeBody(c)

	r := c.Request()
	out, rej := h.admitter.Admit(c, admission.Request{
		Email:        body.Email,
		Message:      body.Message,
		CaptchaToken: body.CaptchaToken,
		ClientKey:    clientip.FromRequest(r),
		RemoteIP:     clientip.FromRequestWithFallback(r),
	})
	if rej != nil {
		return rejectionError(rej)
	}

	return c.JSON(http.StatusOK, sendMessageResponse{
		Message: out.Message,
		ID:      out.MessageID,
		Success: out.Success,
	})
}

// decodeBody reads the body leniently. Anything that is not a JSON object
// within MaxBodySize yields an empty request, which the presence gate
// rejects after the client has been charged.
func decodeBody(c internal.Context) sendMessageRequest {
	var req sendMessageRequest

	r := c.Request()
	if r.Body == nil {
		return req
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize+1))
	if err != nil {
		c.LogDebug("read request body", logger.Error(err))
		return req
	}
	if len(raw) > MaxBodySize {
		c.LogDebug("request body too large", "size", len(raw))
		return req
	}

	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&req); err != nil {
		c.LogDebug("decode request body", logger.Error(err))
		return sendMessageRequest{}
	}
	return req
}

// rejectionError maps a rejection onto the JSON error response.
func rejectionError(rej *admission.Rejection) *internal.HTTPError {
	opts := []internal.HTTPErrorOption{
		internal.WithErrorCode(rej.Code.String()),
		internal.WithError(rej),
	}

	switch rej.Status {
	case http.StatusBadRequest:
		return internal.ErrBadRequest(rej.Message, opts...)
	case http.StatusTooManyRequests:
		retryAfter := max(ratelimit.RetryAfter(rej.RemainingTime), time.Second)
		opts = append(opts,
			internal.WithField("remainingTime", rej.RemainingTime.Milliseconds()),
			internal.WithHeader("Retry-After", strconv.Itoa(int(retryAfter/time.Second))),
		)
		return internal.ErrTooManyRequests(rej.Message, opts...)
	default:
		return internal.NewHTTPError(rej.Status, rej.Message, opts...)
	}
}
