// Package serrors defines semantic error kinds used to explain why a check
// failed without losing the concrete cause.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is a marker interface implemented by all semantic error kinds created
// with NewKind.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a new semantic error kind (a sentinel). Kinds are comparable
// and match with errors.Is/As through the Error wrapper.
func NewKind(name string) Kind { return kind{s: name} }

var (
	// ErrMissing indicates an expected input (e.g. an environment variable) is not set.
	ErrMissing = NewKind("MISSING")
	// ErrMismatch indicates an input is present but does not hold the expected value.
	ErrMismatch = NewKind("MISMATCH")
	// ErrNotFound indicates a file or resource does not exist.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrTimeout indicates the operation did not complete before its deadline.
	ErrTimeout = NewKind("TIMEOUT")
	// ErrUnavailable indicates a resource could not be reached or read.
	ErrUnavailable = NewKind("UNAVAILABLE")
	// ErrBadStatus indicates a downstream service answered with a failure status.
	ErrBadStatus = NewKind("BAD_STATUS")
	// ErrInvalid indicates a malformed target or argument.
	ErrInvalid = NewKind("INVALID")
	// ErrInternal indicates an unexpected failure.
	ErrInternal = NewKind("INTERNAL")
)

// Error is a semantic error carrying a kind, an optional wrapped cause and an
// optional message. errors.Is and errors.As match both the kind and the cause.
//
// Error() returns "<msg>: <cause>", "<msg>", "<cause>" or the kind name,
// depending on which parts are set.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With constructs a new semantic error with the given kind and message.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap constructs a new semantic error with the given kind around err.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOf returns the first semantic kind found in err's chain, or nil when
// err carries none.
func KindOf(err error) Kind {
	if err == nil {
		return nil
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}

	return nil
}

// Name returns the kind name of err, "INTERNAL" for errors without a kind and
// an empty string for nil.
func Name(err error) string {
	if err == nil {
		return ""
	}
	if k := KindOf(err); k != nil {
		return k.Error()
	}

	return ErrInternal.Error()
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	case e.kind != nil:
		return e.kind.Error()
	default:
		return "unknown error"
	}
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error { return e.err }

// Is matches target against the kind first, then the wrapped cause.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}

	return e.err != nil && errors.Is(e.err, target)
}

// As assigns the kind or the wrapped cause to target, whichever fits first.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}

	return e.err != nil && errors.As(e.err, target)
}
