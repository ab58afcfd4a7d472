package admission

// Messages holds the user-facing texts returned with each outcome.
// Fields marked with a verb take one integer argument.
type Messages struct {
	RateLimited          string // %d minutes
	RecipientRateLimited string // %d minutes
	MissingField         string
	VerificationFailed   string
	InvalidEmail         string
	MessageTooShort      string // %d characters
	MessageTooLong       string // %d characters
	ForbiddenContent     string
	DispatchFailed       string
	Internal             string
	Sent                 string
}

// DefaultMessages returns the built-in English texts.
func DefaultMessages() Messages {
	return Messages{
		RateLimited:          "Too many messages sent from this address. Try again in %d min.",
		RecipientRateLimited: "This recipient has reached the message limit. Try again in %d min.",
		MissingField:         "Email, message and security verification are required.",
		VerificationFailed:   "Security verification failed. Please try again.",
		InvalidEmail:         "Invalid email format.",
		MessageTooShort:      "Message too short. Minimum %d characters.",
		MessageTooLong:       "Message too long. Maximum %d characters.",
		ForbiddenContent:     "Message contains content that is not allowed.",
		DispatchFailed:       "Internal server error. Please try again later.",
		Internal:             "Internal server error.",
		Sent:                 "Message sent successfully! 🎉",
	}
}

// withDefaults fills empty fields from DefaultMessages.
func (m Messages) withDefaults() Messages {
	d := DefaultMessages()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&m.RateLimited, d.RateLimited)
	fill(&m.RecipientRateLimited, d.RecipientRateLimited)
	fill(&m.MissingField, d.MissingField)
	fill(&m.VerificationFailed, d.VerificationFailed)
	fill(&m.InvalidEmail, d.InvalidEmail)
	fill(&m.MessageTooShort, d.MessageTooShort)
	fill(&m.MessageTooLong, d.MessageTooLong)
	fill(&m.ForbiddenContent, d.ForbiddenContent)
	fill(&m.DispatchFailed, d.DispatchFailed)
	fill(&m.Internal, d.Internal)
	fill(&m.Sent, d.Sent)
	return m
}
