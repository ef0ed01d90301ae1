// Package apperrors provides the structured error types used across the
// wellbase services. Every error carries a Kind so that transport layers
// can map failures to status codes without string matching, and so that
// the trajectory engine can guarantee its abort-before-write policy per
// failure class.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error by the contract it violates.
type Kind string

const (
	// KindNotFound marks lookups of entities that do not exist.
	KindNotFound Kind = "NOT_FOUND"
	// KindValidation marks malformed or out-of-range input data,
	// e.g. non-monotonic measured depth in a survey.
	KindValidation Kind = "VALIDATION"
	// KindConfiguration marks missing prerequisites on otherwise valid
	// entities, e.g. a wellbore with no active survey.
	KindConfiguration Kind = "CONFIGURATION"
	// KindProjection marks spatial metadata that prevents coordinate
	// projection (missing CRS, anchor or convergence).
	KindProjection Kind = "PROJECTION"
	// KindConsistency marks concurrent-writer conflicts detected before
	// commit.
	KindConsistency Kind = "CONSISTENCY"
	// KindInternal marks unexpected failures (driver errors, I/O).
	KindInternal Kind = "INTERNAL"
)

// Error is the structured error type. Details are optional free-form
// context (station index, wellbore id) surfaced to API clients.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]interface{}
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by Kind, so sentinel-style checks like
// errors.Is(err, apperrors.NotFound("")) work regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// WithDetails returns a copy of the error carrying extra context.
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Configuration(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConfiguration, Message: fmt.Sprintf(format, args...)}
}

func Projection(format string, args ...interface{}) *Error {
	return &Error{Kind: KindProjection, Message: fmt.Sprintf(format, args...)}
}

func Consistency(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConsistency, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure.
func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Cause: cause}
}

// Wrap attaches a kind and message to an existing error.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the Kind from an error chain, or KindInternal when the
// chain carries no structured error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether the error chain contains a structured error of
// the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
