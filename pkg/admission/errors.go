package admission

import "errors"

var (
	ErrMissingDependency = errors.New("admission: missing dependency")
	ErrInvalidPolicy     = errors.New("admission: invalid policy")
	ErrNotVerified       = errors.New("admission: challenge not passed")
	ErrPanic             = errors.New("admission: gate panicked")
)
