package logger

import (
	"log/slog"
	"strings"
)

// RedactEmail keeps the first two characters of the local part and the
// domain: "alice@example.com" becomes "al***@example.com".
func RedactEmail(email string) string {
	local, domain, ok := strings.Cut(strings.TrimSpace(email), "@")
	if !ok || domain == "" || strings.Contains(domain, "@") {
		return "***@***"
	}
	if len([]rune(local)) > 2 {
		return string([]rune(local)[:2]) + "***@" + domain
	}
	return "***@" + domain
}

// EmailDomain returns the lower-cased domain part of email, or "" when the
// address has no single "@".
func EmailDomain(email string) string {
	_, domain, ok := strings.Cut(strings.TrimSpace(email), "@")
	if !ok || strings.Contains(domain, "@") {
		return ""
	}
	return strings.ToLower(domain)
}

// Email returns a redacted email attribute.
func Email(key, email string) slog.Attr {
	return slog.String(key, RedactEmail(email))
}

// Error returns an "error" attribute, or an empty attribute for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}
