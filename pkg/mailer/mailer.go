package mailer

import (
	"bytes"
	"context"
	"errors"
	texttemplate "text/template"
)

// Mailer renders templates and hands the result to a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a Mailer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{
		sender:   sender,
		renderer: renderer,
		config:   cfg,
	}
}

// SendParams describes a templated email.
type SendParams struct {
	Data        any
	Tags        Tags
	To          string
	Template    string // e.g. "anonymous_note.md"
	Subject     string // overrides the template subject
	Layout      string // overrides the template layout
	From        string
	ReplyTo     string
	CC          []string
	BCC         []string
	Attachments []Attachment
}

// Send renders params.Template and delivers it once.
// Subject resolution: params.Subject, then the "Subject" frontmatter key,
// then Config.FallbackSubject. The subject is itself a text template.
func (m *Mailer) Send(ctx context.Context, params SendParams) (*SendResult, error) {
	if params.To == "" {
		return nil, ErrNoRecipient
	}

	rendered, err := m.renderer.Render(params.Layout, params.Template, params.Data)
	if err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}

	subject := params.Subject
	if subject == "" {
		subject, _ = rendered.Metadata["Subject"].(string)
	}
	if subject == "" {
		subject = m.config.FallbackSubject
	}

	subject, err = executeSubject(subject, params.Data)
	if err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}

	return m.deliver(ctx, &Email{
		To:          []string{params.To},
		Subject:     subject,
		HTML:        rendered.HTML,
		Text:        rendered.Text,
		From:        params.From,
		ReplyTo:     params.ReplyTo,
		CC:          params.CC,
		BCC:         params.BCC,
		Tags:        params.Tags,
		Attachments: params.Attachments,
	})
}

func (m *Mailer) deliver(ctx context.Context, email *Email) (*SendResult, error) {
	res, err := m.sender.Send(ctx, email)
	if err != nil {
		return nil, errors.Join(ErrSendFailed, err)
	}
	if res == nil {
		res = &SendResult{}
	}
	return res, nil
}

func executeSubject(subject string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Parse(subject)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
