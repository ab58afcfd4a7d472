package admission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrymomot/correio/pkg/logger"
	"github.com/dmitrymomot/correio/pkg/ratelimit"
)

// emailPattern accepts local@domain.tld with no whitespace and a single "@".
var emailPattern = regexp.MustCompile(`^[^\s\p{Z}@]+@[^\s\p{Z}@]+\.[^\s\p{Z}@]+$`)

func (p *Pipeline) checkClientRate(ctx context.Context, st *state) *Rejection {
	return p.limit(ctx, p.deps.ClientLimiter, st.req.ClientKey, ScopeClient)
}

func (p *Pipeline) checkPresence(_ context.Context, st *state) *Rejection {
	st.email = strings.TrimSpace(st.req.Email)
	// The message is measured and dispatched exactly as submitted.
	st.message = st.req.Message

	if st.email == "" || st.message == "" || strings.TrimSpace(st.req.CaptchaToken) == "" {
		return p.badRequest(CodeMissingField, p.policy.Messages.MissingField)
	}
	return nil
}

func (p *Pipeline) checkVerification(ctx context.Context, st *state) *Rejection {
	vctx, cancel := withTimeout(ctx, p.policy.VerifyTimeout)
	defer cancel()

	verdict, err := p.deps.Verifier.Verify(vctx, strings.TrimSpace(st.req.CaptchaToken), st.req.RemoteIP)
	if err == nil && !verdict.Passed() {
		err = ErrNotVerified
		if verdict != nil {
			err = fmt.Errorf("%w: rejected=%q codes=%v", ErrNotVerified, verdict.Rejected, verdict.ErrorCodes)
		}
	}
	if err != nil {
		rej := p.badRequest(CodeVerificationFailed, p.policy.Messages.VerificationFailed)
		rej.Err = err
		return rej
	}
	return nil
}

func (p *Pipeline) checkRecipientRate(ctx context.Context, st *state) *Rejection {
	return p.limit(ctx, p.deps.RecipientLimiter, strings.ToLower(st.email), ScopeRecipient)
}

func (p *Pipeline) checkFormat(_ context.Context, st *state) *Rejection {
	if !emailPattern.MatchString(st.email) {
		return p.badRequest(CodeInvalidEmail, p.policy.Messages.InvalidEmail)
	}
	return nil
}

func (p *Pipeline) checkLength(_ context.Context, st *state) *Rejection {
	n := runeLen(st.message)
	switch {
	case n < p.policy.MinLength:
		return p.badRequest(CodeMessageTooShort, fmt.Sprintf(p.policy.Messages.MessageTooShort, p.policy.MinLength))
	case n > p.policy.MaxLength:
		return p.badRequest(CodeMessageTooLong, fmt.Sprintf(p.policy.Messages.MessageTooLong, p.policy.MaxLength))
	}
	return nil
}

func (p *Pipeline) checkContent(_ context.Context, st *state) *Rejection {
	if ok, term := p.deps.Content.Allow(st.message); !ok {
		rej := p.badRequest(CodeForbiddenContent, p.policy.Messages.ForbiddenContent)
		rej.Err = fmt.Errorf("matched term %q", term)
		return rej
	}
	return nil
}

func (p *Pipeline) dispatch(ctx context.Context, st *state) *Rejection {
	if domain := logger.EmailDomain(st.email); !p.isInternal(domain) {
		p.logger.InfoContext(ctx, "external recipient", slog.String("recipient_domain", domain))
	}

	dctx, cancel := withTimeout(ctx, p.policy.DispatchTimeout)
	defer cancel()

	id, err := p.deps.Dispatcher.Dispatch(dctx, Note{To: st.email, Message: st.message})
	if err != nil {
		return &Rejection{
			Status:  http.StatusInternalServerError,
			Code:    CodeDispatchFailed,
			Message: p.policy.Messages.DispatchFailed,
			Err:     err,
		}
	}

	st.messageID = id
	return nil
}

// limit consults l for key. A limiter error is reported as a deny for the
// scope with the full window as the wait.
func (p *Pipeline) limit(ctx context.Context, l ratelimit.Limiter, key string, scope Scope) *Rejection {
	lctx, cancel := withTimeout(ctx, p.policy.LimiterTimeout)
	defer cancel()

	d, err := l.Allow(lctx, key)
	switch {
	case err != nil:
		return p.throttled(scope, p.window(scope), fmt.Errorf("%s limiter: %w", scope, err))
	case !d.Allowed:
		return p.throttled(scope, d.ResetAfter, nil)
	}
	return nil
}

func (p *Pipeline) throttled(scope Scope, wait time.Duration, cause error) *Rejection {
	code, msg := CodeRateLimitExceeded, p.policy.Messages.RateLimited
	if scope == ScopeRecipient {
		code, msg = CodeRecipientRateLimit, p.policy.Messages.RecipientRateLimited
	}

	return &Rejection{
		Status:        http.StatusTooManyRequests,
		Code:          code,
		Message:       fmt.Sprintf(msg, waitMinutes(wait)),
		RemainingTime: max(wait, 0),
		Err:           cause,
	}
}

func (p *Pipeline) window(scope Scope) time.Duration {
	if scope == ScopeRecipient {
		return p.policy.RecipientWindow
	}
	return p.policy.ClientWindow
}

func (p *Pipeline) badRequest(code Code, msg string) *Rejection {
	return &Rejection{Status: http.StatusBadRequest, Code: code, Message: msg}
}

// waitMinutes rounds d up to whole minutes, never below one.
func waitMinutes(d time.Duration) int {
	mins := int((d + time.Minute - 1) / time.Minute)
	return max(mins, 1)
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

// IsRateLimited reports whether err is a rate-limit rejection.
func IsRateLimited(err error) bool {
	var rej *Rejection
	if !errors.As(err, &rej) {
		return false
	}
	return rej.Code == CodeRateLimitExceeded || rej.Code == CodeRecipientRateLimit
}
