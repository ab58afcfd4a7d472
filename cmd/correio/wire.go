package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/correio/emails"
	"github.com/dmitrymomot/correio/internal"
	"github.com/dmitrymomot/correio/pkg/admission"
	"github.com/dmitrymomot/correio/pkg/captcha"
	"github.com/dmitrymomot/correio/pkg/mailer"
	"github.com/dmitrymomot/correio/pkg/mailer/resend"
	"github.com/dmitrymomot/correio/pkg/mailer/ses"
	"github.com/dmitrymomot/correio/pkg/ratelimit"
	"github.com/dmitrymomot/correio/pkg/redis"
)

// Key namespaces of the two limiters.
const (
	clientPrefix    = "correio:client"
	recipientPrefix = "correio:recipient"
)

// resources collects what main must release on shutdown and check for
// readiness.
type resources struct {
	shutdownHooks []func(context.Context) error
	healthOptions []internal.HealthOption
}

func (r *resources) onShutdown(fn func(context.Context) error) {
	r.shutdownHooks = append(r.shutdownHooks, fn)
}

// newLimiters returns Redis-backed limiters when REDIS_URL is set and
// in-process ones otherwise.
func newLimiters(ctx context.Context, cfg Config, log *slog.Logger, res *resources) (ratelimit.Limiter, ratelimit.Limiter, error) {
	l := cfg.Limits

	if !cfg.Redis.Enabled() {
		log.Warn("REDIS_URL not set, using in-memory rate limits")

		mc, err := ratelimit.NewMemory(l.ClientMax, l.ClientWindow,
			ratelimit.WithPrefix(clientPrefix), ratelimit.WithMaxKeys(l.MemoryMaxKeys))
		if err != nil {
			return nil, nil, fmt.Errorf("client limiter: %w", err)
		}
		res.onShutdown(func(context.Context) error { return mc.Close() })

		mr, err := ratelimit.NewMemory(l.RecipientMax, l.RecipientWindow,
			ratelimit.WithPrefix(recipientPrefix), ratelimit.WithMaxKeys(l.MemoryMaxKeys))
		if err != nil {
			return nil, nil, fmt.Errorf("recipient limiter: %w", err)
		}
		res.onShutdown(func(context.Context) error { return mr.Close() })

		return mc, mr, nil
	}

	rdb, err := redis.Open(ctx, cfg.Redis, redis.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}
	res.onShutdown(redis.Shutdown(rdb))
	res.healthOptions = append(res.healthOptions, internal.WithReadinessCheck("redis", redis.Healthcheck(rdb)))

	rc, err := ratelimit.NewRedis(rdb, l.ClientMax, l.ClientWindow, ratelimit.WithPrefix(clientPrefix))
	if err != nil {
		return nil, nil, fmt.Errorf("client limiter: %w", err)
	}
	rr, err := ratelimit.NewRedis(rdb, l.RecipientMax, l.RecipientWindow, ratelimit.WithPrefix(recipientPrefix))
	if err != nil {
		return nil, nil, fmt.Errorf("recipient limiter: %w", err)
	}

	return rc, rr, nil
}

// newVerifier builds the human-verification client. The "disabled"
// provider passes every request and is meant for local development only.
func newVerifier(cfg captcha.Config, log *slog.Logger) (captcha.Verifier, error) {
	if cfg.Provider == captcha.ProviderDisabled {
		log.Warn("human verification disabled, every request passes")
		return captcha.Static(true), nil
	}

	p, err := captcha.NewProvider(cfg, captcha.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("captcha: %w", err)
	}
	log.Info("human verification enabled", slog.String("provider", p.Name()))
	return p, nil
}

// newSender builds the email provider selected by MAILER_PROVIDER.
func newSender(ctx context.Context, cfg Config) (mailer.Sender, error) {
	switch cfg.MailerProvider {
	case mailerSES:
		s, err := ses.New(ctx, cfg.SES)
		if err != nil {
			return nil, fmt.Errorf("ses: %w", err)
		}
		return s, nil
	case mailerResend:
		s, err := resend.New(cfg.Resend)
		if err != nil {
			return nil, fmt.Errorf("resend: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownMailer, cfg.MailerProvider)
	}
}

// newPipeline wires every collaborator of the admission pipeline.
func newPipeline(ctx context.Context, cfg Config, log *slog.Logger, res *resources) (*admission.Pipeline, error) {
	clientLimiter, recipientLimiter, err := newLimiters(ctx, cfg, log, res)
	if err != nil {
		return nil, err
	}

	verifier, err := newVerifier(cfg.Captcha, log)
	if err != nil {
		return nil, err
	}

	sender, err := newSender(ctx, cfg)
	if err != nil {
		return nil, err
	}

	notes := mailer.NewNoteDispatcher(
		mailer.New(sender, mailer.NewRenderer(emails.FS), cfg.Mailer),
		cfg.Mailer,
	)

	content := cfg.contentPolicy()
	log.Info("content policy loaded", slog.Int("terms", len(content.Terms())))

	return admission.New(admission.Deps{
		ClientLimiter:    clientLimiter,
		RecipientLimiter: recipientLimiter,
		Verifier:         verifier,
		Dispatcher: admission.DispatcherFunc(func(ctx context.Context, n admission.Note) (string, error) {
			return notes.SendNote(ctx, n.To, n.Message)
		}),
		Content: content,
	}, cfg.policy(), admission.WithLogger(log))
}
