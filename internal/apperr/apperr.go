// Package apperr defines the error kinds surfaced to trinity users.
// This package has no internal dependencies so it can be imported anywhere.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for reporting.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindUsage             Kind = "usage"
	KindInvalidArgument   Kind = "invalid_argument"
	KindMalformedDocument Kind = "malformed_document"
	KindIO                Kind = "io"
)

// Error is a failure with a kind and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, apperr.ErrNotFound) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrUsage             = &Error{Kind: KindUsage}
	ErrInvalidArgument   = &Error{Kind: KindInvalidArgument}
	ErrMalformedDocument = &Error{Kind: KindMalformedDocument}
	ErrIO                = &Error{Kind: KindIO}
)

// NotFound reports a required file that does not exist.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Usage reports missing or malformed arguments.
func Usage(format string, args ...any) error {
	return &Error{Kind: KindUsage, Message: fmt.Sprintf(format, args...)}
}

// InvalidArgument reports a value that failed validation.
func InvalidArgument(format string, args ...any) error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// Malformed reports an expected frontmatter field that is missing.
func Malformed(format string, args ...any) error {
	return &Error{Kind: KindMalformedDocument, Message: fmt.Sprintf(format, args...)}
}

// IO wraps a filesystem or subprocess failure.
func IO(err error, format string, args ...any) error {
	return &Error{Kind: KindIO, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or "" when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// ExitError asks the process to exit with Code without printing an error.
// The test gate returns it when the wrapped command failed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
