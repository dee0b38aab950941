package core

import "github.com/pkg/errors"

// FieldError indicates an error with a specific input field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is returned for malformed input. Fields, when set, carry
// per-field messages for the client.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown signals that the application is in an unrecoverable state and the
// server should stop taking traffic.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
