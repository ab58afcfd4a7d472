package ses

// Config holds Amazon SES configuration.
// Empty credentials fall back to the default AWS credential chain.
type Config struct {
	Region          string `env:"SES_REGION" envDefault:"us-east-1"`
	AccessKeyID     string `env:"SES_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SES_SECRET_ACCESS_KEY"`
	SenderEmail     string `env:"SES_FROM_EMAIL"`
	SenderName      string `env:"SES_FROM_NAME" envDefault:"Correio Elegante"`
	// Endpoint overrides the service URL (LocalStack, tests).
	Endpoint string `env:"SES_ENDPOINT"`
}
