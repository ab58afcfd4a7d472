package captcha

// Provider names accepted by NewProvider.
const (
	ProviderRecaptcha = "recaptcha"
	ProviderHCaptcha  = "hcaptcha"
	ProviderTurnstile = "turnstile"

	// ProviderDisabled turns verification off. Only for local development.
	ProviderDisabled = "disabled"
)

// Config holds human-verification settings.
type Config struct {
	Provider string  `env:"CAPTCHA_PROVIDER" envDefault:"recaptcha"`
	Secret   string  `env:"CAPTCHA_SECRET"`
	Hostname string  `env:"CAPTCHA_HOSTNAME" envDefault:""`
	Action   string  `env:"CAPTCHA_ACTION" envDefault:""`
	MinScore float64 `env:"CAPTCHA_MIN_SCORE" envDefault:"0"`
}
