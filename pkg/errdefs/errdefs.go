// Package errdefs defines the structured error types shared by the spec
// store, the pagination engine, and the tool layer.
package errdefs

import (
	"errors"
	"fmt"
)

// ErrorType classifies a failure for rendering and tests.
type ErrorType string

const (
	ErrorTypeLoad              ErrorType = "load"
	ErrorTypeNotFound          ErrorType = "not_found"
	ErrorTypeStatusCode        ErrorType = "status_code"
	ErrorTypeInvalidParameter  ErrorType = "invalid_parameter"
	ErrorTypeMissingParameters ErrorType = "missing_parameters"
	ErrorTypeOutOfRange        ErrorType = "out_of_range"
	ErrorTypeDatabase          ErrorType = "database"
	ErrorTypeNetwork           ErrorType = "network"
	ErrorTypeInternal          ErrorType = "internal"
)

// ErrNoHeaders signals that an operation defines no response headers anywhere.
// It is an "empty but valid" condition, not a failure: callers render a
// dedicated message instead of an error envelope.
var ErrNoHeaders = errors.New("no headers defined")

// Error is a structured error with a type and optional detail.
type Error struct {
	Type    ErrorType
	Message string
	Detail  string
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a structured error.
func New(errType ErrorType, message, detail string) *Error {
	return &Error{Type: errType, Message: message, Detail: detail}
}

// Newf creates a structured error with a formatted message and no detail.
func Newf(errType ErrorType, format string, args ...any) *Error {
	return &Error{Type: errType, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps err as a structured error, keeping it available via Unwrap.
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Type: errType, Message: message, Detail: err.Error(), cause: err}
}

// IsType reports whether err is a structured error of the given type.
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == errType
	}
	return false
}

// GetType returns the error's type, or ErrorTypeInternal for plain errors.
func GetType(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeInternal
}
