package captcha

import "context"

// Verifier checks a client-supplied challenge token.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) (*Verdict, error)
}

// Verdict is the provider's answer after local policy was applied.
type Verdict struct {
	Action     string
	Hostname   string
	ErrorCodes []string
	Score      float64
	// Success is the raw provider flag.
	Success bool
	// Rejected carries the local policy check that failed, if any.
	Rejected string
}

// Passed reports whether the challenge was solved and every local policy
// check held.
func (v *Verdict) Passed() bool {
	return v != nil && v.Success && v.Rejected == ""
}

// Static is a Verifier with a fixed answer.
type Static bool

// Verify returns a verdict with Success set to the static value.
func (s Static) Verify(context.Context, string, string) (*Verdict, error) {
	return &Verdict{Success: bool(s)}, nil
}
