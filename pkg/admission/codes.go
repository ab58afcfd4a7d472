package admission

// Code is the stable machine-readable reason attached to a rejection.
type Code string

const (
	CodeRateLimitExceeded  Code = "RATE_LIMIT_EXCEEDED"
	CodeRecipientRateLimit Code = "RECIPIENT_RATE_LIMIT"
	CodeMissingField       Code = "MISSING_FIELD"
	CodeVerificationFailed Code = "VERIFICATION_FAILED"
	CodeInvalidEmail       Code = "INVALID_EMAIL"
	CodeMessageTooShort    Code = "MESSAGE_TOO_SHORT"
	CodeMessageTooLong     Code = "MESSAGE_TOO_LONG"
	CodeForbiddenContent   Code = "FORBIDDEN_CONTENT"
	CodeDispatchFailed     Code = "DISPATCH_FAILED"
	CodeInternalError      Code = "INTERNAL_ERROR"
)

// String implements fmt.Stringer.
func (c Code) String() string { return string(c) }

// Scope names the key space a rate limit applies to.
type Scope string

const (
	// ScopeClient limits by the sender's client key.
	ScopeClient Scope = "client"
	// ScopeRecipient limits by the lower-cased recipient address.
	ScopeRecipient Scope = "recipient"
)

// Gate names, in evaluation order.
const (
	GateClientRateLimit    = "client_rate_limit"
	GatePresence           = "presence"
	GateHumanVerification  = "human_verification"
	GateRecipientRateLimit = "recipient_rate_limit"
	GateRecipientFormat    = "recipient_format"
	GateMessageLength      = "message_length"
	GateContentPolicy      = "content_policy"
	GateDispatch           = "dispatch"
)
