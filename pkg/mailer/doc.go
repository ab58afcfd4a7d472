// Package mailer renders email templates and delivers them through a
// pluggable provider.
//
// # Architecture
//
//   - [Sender]: provider adapter returning the provider message ID
//     (see subpackages resend and ses)
//   - [Renderer]: markdown templates with YAML frontmatter, sanitised and
//     wrapped in an html/template layout, plus an optional plain-text sibling
//   - [Mailer]: combines both; [NoteDispatcher] sends anonymous notes
//
// # Usage
//
//	sender, err := resend.New(resend.Config{
//	    APIKey:      os.Getenv("RESEND_API_KEY"),
//	    SenderEmail: "notes@example.com",
//	})
//	m := mailer.New(sender, mailer.NewRenderer(emails.FS), mailer.Config{})
//	res, err := m.Send(ctx, mailer.SendParams{
//	    To:       "friend@example.com",
//	    Template: "anonymous_note.md",
//	    Data:     mailer.NoteData{Message: "See you at the party"},
//	})
//
// # Templates
//
// A template is a markdown file with optional frontmatter:
//
//	---
//	Subject: You have a note
//	Layout: note.html
//	---
//	This message was sent anonymously.
//
//	[!cta|Send one back](https://example.com)
//
// The body is a text/template executed with the send data, converted with
// goldmark and sanitised with bluemonday. "[!cta|Label](URL)" renders a
// button-styled link. Layouts receive .Content (the sanitised HTML),
// .Metadata (frontmatter) and .Data (the send data, escaped by
// html/template on output). Untrusted values belong in the layout, not in
// the markdown.
//
// If "name.txt" exists next to "name.md" it is executed with the same data
// and used as the plain-text body; otherwise the processed markdown is.
//
// Lookup order: Subject from SendParams, frontmatter, Config.FallbackSubject;
// Layout from SendParams, frontmatter, RendererConfig.DefaultLayout.
package mailer
