package ledger

import "errors"

// ErrNotFound is returned when a transaction ID does not exist.
var ErrNotFound = errors.New("transaction not found")

// ErrConflict is returned by the store when a snapshot write loses a
// version race. Engine operations re-read and recompute on conflict.
var ErrConflict = errors.New("snapshot version conflict")

// ValidationError describes a user-input problem detected before any
// mutation. The message is safe to show to the user verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
