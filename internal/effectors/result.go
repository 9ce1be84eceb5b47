package effectors

import (
	"errors"
	"fmt"
)

// Kind classifies why an action failed
type Kind string

const (
	KindUsage     Kind = "usage"     // missing or malformed arguments
	KindResource  Kind = "resource"  // file, roster or log could not be read
	KindNotFound  Kind = "not_found" // nothing stored to act on
	KindUnknown   Kind = "unknown"   // unrecognized command name
	KindTransport Kind = "transport" // the session refused or failed a send
)

// Error is the structured failure every action returns
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a structured action error
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the failure kind of err, or "" if err is not an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Result is what a command hands back to its front end: a message for the
// requester plus the error, if any, so each transport decides how to show it.
type Result struct {
	Message string
	Err     error
}

// OK builds a successful result
func OK(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}

// Fail builds a failed result with a requester-facing message
func Fail(err error, format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...), Err: err}
}

// Failed reports whether the result carries an error
func (r Result) Failed() bool {
	return r.Err != nil
}

// Kind returns the failure kind ("" on success)
func (r Result) Kind() Kind {
	return KindOf(r.Err)
}
