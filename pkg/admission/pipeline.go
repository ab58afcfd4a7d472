package admission

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/correio/pkg/captcha"
	"github.com/dmitrymomot/correio/pkg/clientip"
	"github.com/dmitrymomot/correio/pkg/logger"
	"github.com/dmitrymomot/correio/pkg/ratelimit"
)

// Deps are the collaborators the pipeline consults.
// Content is optional and defaults to DefaultDenylist.
type Deps struct {
	ClientLimiter    ratelimit.Limiter
	RecipientLimiter ratelimit.Limiter
	Verifier         captcha.Verifier
	Dispatcher       Dispatcher
	Content          ContentPolicy
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Default: logger.NewNope().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// gate is one named check. A nil return lets the request continue.
type gate struct {
	check func(ctx context.Context, st *state) *Rejection
	name  string
}

// state is the per-request scratch space shared by the gates.
type state struct {
	req       Request
	email     string
	message   string
	messageID string
}

// Pipeline runs the admission gates in a fixed order.
// It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	deps    Deps
	logger  *slog.Logger
	watched map[string]struct{}
	gates   []gate
	policy  Policy
}

// New validates deps and policy and returns a ready pipeline.
func New(deps Deps, policy Policy, opts ...Option) (*Pipeline, error) {
	switch {
	case deps.ClientLimiter == nil:
		return nil, fmt.Errorf("%w: client limiter", ErrMissingDependency)
	case deps.RecipientLimiter == nil:
		return nil, fmt.Errorf("%w: recipient limiter", ErrMissingDependency)
	case deps.Verifier == nil:
		return nil, fmt.Errorf("%w: verifier", ErrMissingDependency)
	case deps.Dispatcher == nil:
		return nil, fmt.Errorf("%w: dispatcher", ErrMissingDependency)
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if deps.Content == nil {
		deps.Content = DefaultDenylist()
	}
	policy.Messages = policy.Messages.withDefaults()

	p := &Pipeline{
		deps:    deps,
		policy:  policy,
		logger:  logger.NewNope(),
		watched: make(map[string]struct{}, len(policy.WatchedDomains)),
	}
	for _, d := range policy.WatchedDomains {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			p.watched[d] = struct{}{}
		}
	}
	for _, opt := range opts {
		opt(p)
	}

	p.gates = []gate{
		{name: GateClientRateLimit, check: p.checkClientRate},
		{name: GatePresence, check: p.checkPresence},
		{name: GateHumanVerification, check: p.checkVerification},
		{name: GateRecipientRateLimit, check: p.checkRecipientRate},
		{name: GateRecipientFormat, check: p.checkFormat},
		{name: GateMessageLength, check: p.checkLength},
		{name: GateContentPolicy, check: p.checkContent},
		{name: GateDispatch, check: p.dispatch},
	}

	return p, nil
}

// Gates returns the gate names in evaluation order.
func (p *Pipeline) Gates() []string {
	names := make([]string, len(p.gates))
	for i, g := range p.gates {
		names[i] = g.name
	}
	return names
}

// Admit runs every gate in order and stops at the first rejection.
// Exactly one of the results is non-nil. The dispatcher is called at most
// once, and only after every other gate passed.
func (p *Pipeline) Admit(ctx context.Context, req Request) (out *Outcome, rej *Rejection) {
	if req.ClientKey == "" {
		req.ClientKey = clientip.Unknown
	}
	st := &state{req: req}

	current := ""
	defer func() {
		if r := recover(); r != nil {
			out = nil
			rej = &Rejection{
				Status:  http.StatusInternalServerError,
				Code:    CodeInternalError,
				Message: p.policy.Messages.Internal,
				Gate:    current,
				Err:     fmt.Errorf("%w: %v", ErrPanic, r),
			}
			p.logger.ErrorContext(ctx, "admission panicked",
				slog.String("gate", current),
				logger.Error(rej.Err),
			)
		}
	}()

	for _, g := range p.gates {
		current = g.name
		if rej := g.check(ctx, st); rej != nil {
			rej.Gate = g.name
			p.logRejection(ctx, st, rej)
			return nil, rej
		}
	}

	p.logSent(ctx, st)
	return &Outcome{Success: true, MessageID: st.messageID, Message: p.policy.Messages.Sent}, nil
}

func (p *Pipeline) logRejection(ctx context.Context, st *state, rej *Rejection) {
	attrs := []any{
		slog.String("gate", rej.Gate),
		slog.String("code", rej.Code.String()),
		slog.String("client_key", st.req.ClientKey),
	}
	if rej.Err != nil {
		attrs = append(attrs, logger.Error(rej.Err))
	}

	switch {
	case rej.Code == CodeDispatchFailed:
		attrs = append(attrs, slog.String("recipient_domain", logger.EmailDomain(st.email)))
		p.logger.ErrorContext(ctx, "message dispatch failed", attrs...)
	case IsRateLimited(rej):
		attrs = append(attrs, slog.Duration("remaining", rej.RemainingTime))
		p.logger.WarnContext(ctx, "message rejected", attrs...)
	case rej.Code == CodeVerificationFailed:
		p.logger.WarnContext(ctx, "message rejected", attrs...)
	default:
		p.logger.InfoContext(ctx, "message rejected", attrs...)
	}
}

func (p *Pipeline) logSent(ctx context.Context, st *state) {
	domain := logger.EmailDomain(st.email)
	p.logger.InfoContext(ctx, "message dispatched",
		slog.String("client_key", st.req.ClientKey),
		slog.String("recipient_domain", domain),
		slog.Int("message_length", runeLen(st.message)),
		slog.Bool("internal", p.isInternal(domain)),
		slog.String("message_id", st.messageID),
	)
}

func (p *Pipeline) isInternal(domain string) bool {
	if len(p.watched) == 0 {
		return true
	}
	_, ok := p.watched[domain]
	return ok
}

// withTimeout bounds ctx by d when d is positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
