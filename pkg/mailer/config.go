package mailer

// Config holds mailer configuration.
// Embed this in the app config for env parsing with caarlos0/env.
type Config struct {
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"You received a message"`
	DefaultLayout   string `env:"MAILER_DEFAULT_LAYOUT" envDefault:"base.html"`
	// SiteURL, when set, is linked from the note as a call to action.
	SiteURL string `env:"MAILER_SITE_URL" envDefault:""`
}
