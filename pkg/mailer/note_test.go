package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/correio/emails"
)

const wantNoteText = `Correio Elegante

You received a special message:

"<b>Meet me</b> at the bonfire & bring corn"

This message was sent anonymously through our system.

100% anonymous system • No personal data is stored
`

func TestNoteDispatcher_SendNote(t *testing.T) {
	t.Parallel()

	const message = "<b>Meet me</b> at the bonfire & bring corn"

	t.Run("renders embedded templates", func(t *testing.T) {
		t.Parallel()

		var sent *Email
		sender := &MockSender{}
		sender.On("Send", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(1).(*Email) }).
			Return(&SendResult{ID: "re_123"}, nil).Once()

		m := New(sender, NewRenderer(emails.FS), Config{FallbackSubject: "x"})
		d := NewNoteDispatcher(m, Config{})

		id, err := d.SendNote(context.Background(), "crush@example.com", message)
		require.NoError(t, err)
		require.Equal(t, "re_123", id)
		sender.AssertNumberOfCalls(t, "Send", 1)

		require.Equal(t, []string{"crush@example.com"}, sent.To)
		require.Equal(t, "💌 You received an anonymous message", sent.Subject)
		require.Equal(t, wantNoteText, sent.Text)
		require.Equal(t, "anonymous_note", sent.Tags["category"])

		require.Contains(t, sent.HTML, "&lt;b&gt;Meet me&lt;/b&gt; at the bonfire &amp; bring corn")
		require.NotContains(t, sent.HTML, "<b>Meet me</b>")
		require.NotContains(t, sent.HTML, `class="cta"`)
	})

	t.Run("links site when configured", func(t *testing.T) {
		t.Parallel()

		var sent *Email
		sender := &MockSender{}
		sender.On("Send", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(1).(*Email) }).
			Return(&SendResult{ID: "id"}, nil).Once()

		m := New(sender, NewRenderer(emails.FS), Config{})
		d := NewNoteDispatcher(m, Config{SiteURL: "https://correio.example.com"})

		_, err := d.SendNote(context.Background(), "a@b.co", "hello there friend")
		require.NoError(t, err)
		require.Contains(t, sent.HTML, `href="https://correio.example.com"`)
		require.True(t, strings.Contains(sent.HTML, `class="cta"`))
	})

	t.Run("provider error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("quota exceeded")
		sender := &MockSender{}
		sender.On("Send", mock.Anything, mock.Anything).Return(nil, boom).Once()

		d := NewNoteDispatcher(New(sender, NewRenderer(emails.FS), Config{}), Config{})

		id, err := d.SendNote(context.Background(), "a@b.co", "hello there friend")
		require.ErrorIs(t, err, boom)
		require.Empty(t, id)
		sender.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("empty message", func(t *testing.T) {
		t.Parallel()

		sender := &MockSender{}
		d := NewNoteDispatcher(New(sender, NewRenderer(emails.FS), Config{}), Config{})

		_, err := d.SendNote(context.Background(), "a@b.co", "   ")
		require.ErrorIs(t, err, ErrEmptyMessage)
		sender.AssertNotCalled(t, "Send")
	})
}
