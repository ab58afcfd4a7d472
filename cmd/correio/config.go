package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/correio/middlewares"
	"github.com/dmitrymomot/correio/pkg/admission"
	"github.com/dmitrymomot/correio/pkg/captcha"
	"github.com/dmitrymomot/correio/pkg/logger"
	"github.com/dmitrymomot/correio/pkg/mailer"
	"github.com/dmitrymomot/correio/pkg/mailer/resend"
	"github.com/dmitrymomot/correio/pkg/mailer/ses"
	"github.com/dmitrymomot/correio/pkg/redis"
)

// Mail providers accepted in MAILER_PROVIDER.
const (
	mailerResend = "resend"
	mailerSES    = "ses"
)

var (
	errUnknownMailer  = errors.New("unknown mailer provider")
	errRequestTimeout = errors.New("request timeout too short")
)

// Config is the whole service configuration, read from the environment.
type Config struct {
	Address         string        `env:"ADDRESS" envDefault:":8080"`
	MailerProvider  string        `env:"MAILER_PROVIDER" envDefault:"resend"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"25s"`
	// CSPEnabled sends the Content-Security-Policy header. Leave it off in
	// development where the form is served from another origin.
	CSPEnabled bool `env:"CSP_ENABLED" envDefault:"false"`

	Limits  LimitsConfig
	Policy  PolicyConfig
	Logger  logger.Config
	CORS    middlewares.CORSConfig
	Redis   redis.Config
	Captcha captcha.Config
	Mailer  mailer.Config
	Resend  resend.Config
	SES     ses.Config
}

// LimitsConfig sizes the two sliding windows.
type LimitsConfig struct {
	ClientMax       int           `env:"RATE_LIMIT_CLIENT_MAX" envDefault:"10"`
	ClientWindow    time.Duration `env:"RATE_LIMIT_CLIENT_WINDOW" envDefault:"1h"`
	RecipientMax    int           `env:"RATE_LIMIT_RECIPIENT_MAX" envDefault:"3"`
	RecipientWindow time.Duration `env:"RATE_LIMIT_RECIPIENT_WINDOW" envDefault:"1m"`
	// MemoryMaxKeys bounds the in-process limiter when Redis is not configured.
	MemoryMaxKeys int `env:"RATE_LIMIT_MEMORY_MAX_KEYS" envDefault:"100000"`
}

// PolicyConfig holds the content and timeout settings of the pipeline.
type PolicyConfig struct {
	ForbiddenWords  []string      `env:"FORBIDDEN_WORDS" envSeparator:","`
	WatchedDomains  []string      `env:"WATCHED_DOMAINS" envSeparator:","`
	MinLength       int           `env:"MESSAGE_MIN_LENGTH" envDefault:"10"`
	MaxLength       int           `env:"MESSAGE_MAX_LENGTH" envDefault:"500"`
	VerifyTimeout   time.Duration `env:"VERIFY_TIMEOUT" envDefault:"5s"`
	LimiterTimeout  time.Duration `env:"LIMITER_TIMEOUT" envDefault:"2s"`
	DispatchTimeout time.Duration `env:"DISPATCH_TIMEOUT" envDefault:"10s"`
}

// loadConfig loads ENV_FILE (or .env when present) and parses the process
// environment. Variables already set win over the file.
func loadConfig() (Config, error) {
	if file := os.Getenv("ENV_FILE"); file != "" {
		if err := godotenv.Load(file); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	} else {
		_ = godotenv.Load()
	}

	return parseConfig(env.Options{})
}

// parseConfig parses and validates the configuration. opts.Environment
// replaces the process environment when set.
func parseConfig(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.MailerProvider {
	case mailerResend, mailerSES:
	default:
		return fmt.Errorf("%w: %q", errUnknownMailer, c.MailerProvider)
	}

	if c.Limits.ClientMax <= 0 || c.Limits.RecipientMax <= 0 {
		return errors.New("rate limits must be positive")
	}

	p := c.policy()
	if err := p.Validate(); err != nil {
		return err
	}
	if c.RequestTimeout <= p.Budget() {
		return fmt.Errorf("%w: %s does not cover the admission budget %s", errRequestTimeout, c.RequestTimeout, p.Budget())
	}
	return nil
}

// policy maps the configuration onto the pipeline policy.
func (c Config) policy() admission.Policy {
	p := admission.DefaultPolicy()
	p.ClientWindow = c.Limits.ClientWindow
	p.RecipientWindow = c.Limits.RecipientWindow
	p.MinLength = c.Policy.MinLength
	p.MaxLength = c.Policy.MaxLength
	p.VerifyTimeout = c.Policy.VerifyTimeout
	p.LimiterTimeout = c.Policy.LimiterTimeout
	p.DispatchTimeout = c.Policy.DispatchTimeout
	p.WatchedDomains = c.Policy.WatchedDomains
	return p
}

// contentPolicy returns the denylist, built from FORBIDDEN_WORDS when set.
func (c Config) contentPolicy() *admission.Denylist {
	if len(c.Policy.ForbiddenWords) == 0 {
		return admission.DefaultDenylist()
	}
	return admission.NewDenylist(c.Policy.ForbiddenWords...)
}

// securityHeaders returns the header middleware configuration.
func (c Config) securityHeaders() middlewares.SecurityHeadersConfig {
	if !c.CSPEnabled {
		return middlewares.SecurityHeadersConfig{}
	}
	return middlewares.SecurityHeadersConfig{ContentSecurityPolicy: middlewares.DefaultContentSecurityPolicy}
}
