package mailer

import (
	"context"
	"strings"
)

// NoteTemplate is the template used for anonymous notes.
const NoteTemplate = "anonymous_note.md"

// NoteData is the template data for NoteTemplate.
type NoteData struct {
	Message string
	SiteURL string
}

// NoteDispatcher sends anonymous notes through a Mailer.
type NoteDispatcher struct {
	mailer  *Mailer
	siteURL string
}

// NewNoteDispatcher creates a NoteDispatcher. cfg.SiteURL, when set, is
// offered to the recipient as a link back to the sending form.
func NewNoteDispatcher(m *Mailer, cfg Config) *NoteDispatcher {
	return &NoteDispatcher{mailer: m, siteURL: cfg.SiteURL}
}

// SendNote renders NoteTemplate for message and sends it to "to" exactly
// once. The returned ID is the provider message ID.
func (d *NoteDispatcher) SendNote(ctx context.Context, to, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}

	res, err := d.mailer.Send(ctx, SendParams{
		To:       to,
		Template: NoteTemplate,
		Data:     NoteData{Message: message, SiteURL: d.siteURL},
		Tags:     Tags{"category": "anonymous_note"},
	})
	if err != nil {
		return "", err
	}
	return res.ID, nil
}
