package resend

// Config holds Resend provider configuration.
// Embed this in the app config for env parsing with caarlos0/env.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY"`
	SenderEmail string `env:"RESEND_FROM_EMAIL"`
	SenderName  string `env:"RESEND_FROM_NAME" envDefault:"Correio Elegante"`
}
