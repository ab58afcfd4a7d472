package resend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/correio/pkg/mailer"
)

var (
	ErrMissingAPIKey = errors.New("resend: missing API key")
	ErrMissingSender = errors.New("resend: missing sender email")
	ErrSendFailed    = errors.New("resend: failed to send email")
)

// Option configures the Resend sender.
type Option func(*options)

type options struct {
	httpClient *http.Client
	baseURL    *url.URL
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithBaseURL points the client at a different API host.
func WithBaseURL(u *url.URL) Option {
	return func(o *options) {
		o.baseURL = u
	}
}

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
	from   string
}

// New creates a Resend sender.
func New(cfg Config, opts ...Option) (*Sender, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.SenderEmail == "" {
		return nil, ErrMissingSender
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	client := resend.NewClient(cfg.APIKey)
	if o.httpClient != nil {
		client = resend.NewCustomClient(o.httpClient, cfg.APIKey)
	}
	if o.baseURL != nil {
		client.BaseURL = o.baseURL
	}

	return &Sender{
		client: client,
		from:   mailer.Recipient(cfg.SenderName, cfg.SenderEmail),
	}, nil
}

// Send implements mailer.Sender. The returned ID is the Resend email id.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.SendResult, error) {
	from := email.From
	if from == "" {
		from = s.from
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Cc:      email.CC,
		Bcc:     email.BCC,
		Headers: email.Headers,
	}
	if len(email.Attachments) > 0 {
		req.Attachments = convertAttachments(email.Attachments)
	}
	if len(email.Tags) > 0 {
		req.Tags = convertTags(email.Tags)
	}

	resp, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrSendFailed, err)
	}

	return &mailer.SendResult{ID: resp.Id}, nil
}

func convertAttachments(in []mailer.Attachment) []*resend.Attachment {
	out := make([]*resend.Attachment, len(in))
	for i, a := range in {
		out[i] = &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
			ContentId:   a.ContentID,
		}
	}
	return out
}

func convertTags(tags mailer.Tags) []resend.Tag {
	out := make([]resend.Tag, 0, len(tags))
	for name, value := range tags {
		out = append(out, resend.Tag{Name: name, Value: tagValue(value)})
	}
	return out
}

// tagValue renders a tag value for Resend, which requires one.
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

var _ mailer.Sender = (*Sender)(nil)
