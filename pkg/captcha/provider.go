package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/correio/pkg/logger"
)

const (
	recaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"
	hcaptchaVerifyURL  = "https://api.hcaptcha.com/siteverify"
	turnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

	defaultTimeout = 5 * time.Second
)

// Local policy failures reported in Verdict.Rejected.
const (
	RejectedScore    = "score_below_threshold"
	RejectedHostname = "hostname_mismatch"
	RejectedAction   = "action_mismatch"
)

// Provider verifies tokens against a siteverify endpoint. All three
// supported services share the same form-encoded protocol.
type Provider struct {
	httpClient *http.Client
	logger     *slog.Logger
	name       string
	secret     string
	endpoint   string
	hostname   string
	action     string
	minScore   float64
}

// NewProvider creates a verifier for cfg.Provider.
// Returns ErrMissingSecret if no secret is configured and
// ErrUnknownProvider for unsupported names, including "disabled".
func NewProvider(cfg Config, opts ...Option) (*Provider, error) {
	endpoint, err := endpointFor(cfg.Provider)
	if err != nil {
		return nil, err
	}
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}

	o := options{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	if o.endpoint != "" {
		endpoint = o.endpoint
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: o.timeout}
	}
	if o.logger == nil {
		o.logger = logger.NewNope()
	}

	return &Provider{
		httpClient: o.httpClient,
		logger:     o.logger,
		name:       cfg.Provider,
		secret:     cfg.Secret,
		endpoint:   endpoint,
		hostname:   cfg.Hostname,
		action:     cfg.Action,
		minScore:   cfg.MinScore,
	}, nil
}

func endpointFor(name string) (string, error) {
	switch name {
	case ProviderRecaptcha:
		return recaptchaVerifyURL, nil
	case ProviderHCaptcha:
		return hcaptchaVerifyURL, nil
	case ProviderTurnstile:
		return turnstileVerifyURL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// Verify posts the token to the provider and applies the local policy.
// A nil error only means the provider answered; check Verdict.Passed.
func (p *Provider) Verify(ctx context.Context, token, remoteIP string) (*Verdict, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrEmptyToken
	}

	form := url.Values{}
	form.Set("secret", p.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Join(ErrVerifyFailed, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errors.Join(ErrVerifyFailed, fmt.Errorf("siteverify: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, errors.Join(ErrRequestFailed, fmt.Errorf("siteverify failed: status=%d body=%s", resp.StatusCode, body))
	}

	var sv siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&sv); err != nil {
		return nil, errors.Join(ErrDecodeFailed, fmt.Errorf("decode siteverify: %w", err))
	}

	var score float64
	if sv.Score != nil {
		score = *sv.Score
	}

	v := &Verdict{
		Success:    sv.Success,
		Score:      score,
		Action:     sv.Action,
		Hostname:   sv.Hostname,
		ErrorCodes: sv.ErrorCodes,
		Rejected:   p.check(sv),
	}

	p.logger.DebugContext(ctx, "captcha verdict",
		slog.String("provider", p.name),
		slog.Bool("success", v.Success),
		slog.Float64("score", v.Score),
		slog.String("action", v.Action),
		slog.String("hostname", v.Hostname),
		slog.Any("error_codes", v.ErrorCodes),
		slog.String("rejected", v.Rejected),
	)

	return v, nil
}

func (p *Provider) check(sv siteverifyResponse) string {
	if !sv.Success {
		return ""
	}
	// Score is only sent by score-based challenges (reCAPTCHA v3, hCaptcha Enterprise).
	if p.minScore > 0 && sv.Score != nil && *sv.Score < p.minScore {
		return RejectedScore
	}
	if p.hostname != "" && !strings.EqualFold(sv.Hostname, p.hostname) {
		return RejectedHostname
	}
	if p.action != "" && sv.Action != p.action {
		return RejectedAction
	}
	return ""
}

// siteverifyResponse is the common subset of the reCAPTCHA, hCaptcha and
// Turnstile answers.
type siteverifyResponse struct {
	Score       *float64 `json:"score,omitempty"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	Action      string   `json:"action"`
	ErrorCodes  []string `json:"error-codes"`
	Success     bool     `json:"success"`
}

var (
	_ Verifier = (*Provider)(nil)
	_ Verifier = Static(false)
)
