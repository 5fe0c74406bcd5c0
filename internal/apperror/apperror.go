package apperror

import (
	"errors"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("Validation Error")
	ErrMissing    = errors.New("missing parameter")
)

// AppError is an application-level failure: something the caller did or asked
// for, as opposed to a broken disk or database. HTTP handlers report these in
// the response body with a 200 status.
type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message, sent to the client verbatim
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that a lookup matched nothing.
func NotFound(message string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// InvalidInput reports a parameter that is present but unusable,
// e.g. a non-numeric id.
func InvalidInput(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// MissingParameter reports a required parameter that is absent or blank.
func MissingParameter(field, message string) *AppError {
	return &AppError{
		Err:     ErrMissing,
		Message: message,
		Field:   field,
	}
}
