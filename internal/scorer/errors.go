package scorer

import (
	"errors"
	"fmt"
)

var (
	// ErrNotMounted is returned when an operation targets a match with no
	// mounted session.
	ErrNotMounted = errors.New("match session not mounted")
	// ErrStateViolation is returned when the mirrored match status does not
	// allow the operation. It is raised before any network call is made.
	ErrStateViolation = errors.New("match status does not allow this operation")
)

// ValidationError rejects malformed scorer input before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func stateViolation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStateViolation, fmt.Sprintf(format, args...))
}
