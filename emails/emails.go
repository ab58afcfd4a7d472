// Package emails embeds the email templates and layouts.
package emails

import "embed"

// FS holds markdown templates, their plain-text siblings and layouts/.
//
//go:embed *.md *.txt layouts/*.html
var FS embed.FS
