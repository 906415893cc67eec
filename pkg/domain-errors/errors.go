// Package domainerrors provides coded errors for the service layer. Stores
// return sentinel errors (pkg/platform/sentinel); services translate them into
// coded errors here; the HTTP layer maps codes to status lines without ever
// inspecting error strings.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for transport mapping and logging.
type Code string

const (
	// CodeInvalidInput marks malformed caller input (bad UUID, bad charset).
	CodeInvalidInput Code = "invalid_input"
	// CodeValidation marks a failed business validation; the message carries
	// every violated constraint so the caller can surface them all at once.
	CodeValidation Code = "validation_failed"
	// CodeBadRequest marks a structurally bad request (missing body, bad JSON).
	CodeBadRequest Code = "bad_request"
	// CodeNotFound marks a lookup miss on an identifier the caller supplied.
	CodeNotFound Code = "not_found"
	// CodeConflict marks a state conflict (duplicate, illegal transition).
	CodeConflict Code = "conflict"
	// CodeUnprocessable marks an operation that ran but could not take effect,
	// e.g. a document submission where every file failed.
	CodeUnprocessable Code = "unprocessable"
	// CodeUnauthorized marks missing or invalid credentials.
	CodeUnauthorized Code = "unauthorized"
	// CodeInvariantViolation marks an internal invariant breach in a model.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeInternal marks infrastructure failure; detail is logged, not exposed.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New constructs a coded error.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf constructs a coded error with formatting.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause. A nil cause yields
// a plain coded error.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.cause
		if err == nil {
			return false
		}
	}
	return false
}

// CodeOf returns the outermost code on err, or CodeInternal when err carries
// no code. Unknown failures are deliberately treated as internal so that raw
// infrastructure errors never leak to clients.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the outermost coded message, or empty for uncoded errors.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}
