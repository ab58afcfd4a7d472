// Package admission decides whether an anonymous note may be sent.
//
// A [Pipeline] runs a fixed, ordered list of gates against each [Request]
// and stops at the first one that fails:
//
//  1. client_rate_limit: per-client sliding window
//  2. presence: email, message and captcha token are non-blank
//  3. human_verification: captcha token checked with the provider
//  4. recipient_rate_limit: per-recipient sliding window
//  5. recipient_format: local@domain.tld
//  6. message_length: bounds in Unicode code points
//  7. content_policy: pluggable [ContentPolicy], [Denylist] by default
//  8. dispatch: the [Dispatcher] is called exactly once
//
// Admit returns either an [Outcome] or a [Rejection], never both:
//
//	p, err := admission.New(admission.Deps{
//	    ClientLimiter:    clientLimiter,
//	    RecipientLimiter: recipientLimiter,
//	    Verifier:         verifier,
//	    Dispatcher:       dispatcher,
//	}, admission.DefaultPolicy(), admission.WithLogger(log))
//
//	out, rej := p.Admit(ctx, admission.Request{
//	    Email:        "person@example.com",
//	    Message:      "You are appreciated today!",
//	    CaptchaToken: token,
//	    ClientKey:    clientip.FromHeaders(r.Header),
//	})
//
// Limiter and verifier errors fail closed: they reject the request the same
// way a deny or a failed challenge does. The cause is kept in Rejection.Err
// for logging and must not reach the caller. A panic inside any gate becomes
// an INTERNAL_ERROR rejection.
//
// Recipient addresses and message bodies are never logged; only the
// recipient domain and the message length are.
package admission
