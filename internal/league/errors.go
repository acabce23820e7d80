package league

import "errors"

// Error kinds. Match them with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Error is a domain failure with a client facing message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NewValidationError reports malformed or missing input.
func NewValidationError(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}

// NewNotFoundError reports a referenced team or game that does not exist.
func NewNotFoundError(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

// NewConflictError reports a uniqueness violation.
func NewConflictError(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

// NewUnauthorizedError reports a missing or wrong admin credential.
func NewUnauthorizedError(msg string) error {
	return &Error{Kind: ErrUnauthorized, Message: msg}
}

// Reason returns a short label for the kind of err, used for metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
