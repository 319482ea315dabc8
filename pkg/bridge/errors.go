package bridge

import (
	"errors"
	"fmt"
)

// ErrorKind is the machine-readable failure class of a bridge call.
type ErrorKind string

const (
	// KindUnavailable means the host could not supply the requested data.
	KindUnavailable ErrorKind = "unavailable"
	// KindNotImplemented means the requested operation name does not exist.
	KindNotImplemented ErrorKind = "not_implemented"
)

// Error is the only error type a bridge call returns. It carries a kind
// for the caller's dispatch and a diagnostic message for display.
type Error struct {
	Kind    ErrorKind
	Message string

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Unavailable wraps a host failure into an unavailable bridge error.
func Unavailable(cause error, format string, args ...any) *Error {
	return &Error{
		Kind:    KindUnavailable,
		Message: fmt.Sprintf(format, args...),
		cause:   cause,
	}
}

// NotImplemented reports that op is not a recognized operation name.
func NotImplemented(op string) *Error {
	return &Error{
		Kind:    KindNotImplemented,
		Message: fmt.Sprintf("operation %q is not implemented", op),
	}
}

// KindOf returns the bridge error kind of err, or "" for other errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsUnavailable reports whether err is an unavailable bridge error.
func IsUnavailable(err error) bool {
	return KindOf(err) == KindUnavailable
}

// IsNotImplemented reports whether err is a not-implemented bridge error.
func IsNotImplemented(err error) bool {
	return KindOf(err) == KindNotImplemented
}
