package services

import "errors"

// ValidationError marks a request rejected before any store mutation.
// Handlers translate it to a 400 response carrying the message verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrInvalidCredentials covers both an unknown user and a wrong password, so
// a caller cannot tell which case occurred.
var ErrInvalidCredentials = errors.New("invalid credentials")
