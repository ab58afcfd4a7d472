package mailer

import "fmt"

// Tags are provider tags attached to a message. A struct{}{} value marks a
// presence-only tag; providers that need a value send "true".
type Tags map[string]any

// SimpleTags creates presence-only tags.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats an RFC 5322 address: "Name <email>" or just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is a fully rendered message ready for a Sender.
type Email struct {
	Headers     map[string]string
	Tags        Tags
	Subject     string
	HTML        string
	Text        string // plain-text alternative
	From        string // overrides the provider default sender
	ReplyTo     string
	To          []string
	CC          []string
	BCC         []string
	Attachments []Attachment
}

// Attachment is a file attached to an Email.
type Attachment struct {
	Filename    string
	ContentType string
	ContentID   string // set for inline attachments
	Content     []byte
}

// SendResult is what a provider reports for an accepted message.
type SendResult struct {
	// ID is the provider-assigned message identifier.
	ID string
}
