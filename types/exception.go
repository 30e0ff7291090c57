package types

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// maxStackDepth bounds the number of frames captured per exception.
const maxStackDepth = 32

// ExceptionError is the readable surface of an exception value. Any type
// that embeds Exception satisfies it.
type ExceptionError interface {
	error
	Message() string
	StackTrace() string
	Source() string
	Cause() error
}

// ExceptionWriter is the settable surface of an exception value. The codec
// uses it to restore message, stack trace, source and cause on decode, so
// concrete error types never expose those fields directly.
type ExceptionWriter interface {
	SetMessage(message string)
	SetStackTrace(stackTrace string)
	SetSource(source string)
	SetCause(cause error)
}

// Exception is the base value for serializable error types. Concrete types
// embed it and add their own exported fields:
//
//	type ValidationError struct {
//		types.Exception
//		Code int `json:"code"`
//	}
//
// State is unexported and reached through getters and setters only, which
// keeps the wire format under codec control.
type Exception struct {
	message    string
	stackTrace string
	source     string
	cause      error
}

// NewException creates an exception with the given message and captures the
// stack trace at the call site.
func NewException(message string) *Exception {
	return &Exception{
		message:    message,
		stackTrace: captureStackTrace(1),
	}
}

// WrapException creates an exception wrapping a cause.
func WrapException(message string, cause error) *Exception {
	return &Exception{
		message:    message,
		stackTrace: captureStackTrace(1),
		cause:      cause,
	}
}

// FromError promotes an arbitrary error to an Exception. No stack trace is
// captured since the original error carries none; the message comes from
// err.Error() and a wrapped cause is carried over. An err that already is
// an *Exception is returned unchanged; nil yields nil.
func FromError(err error) *Exception {
	if err == nil {
		return nil
	}
	if exc, ok := err.(*Exception); ok {
		return exc
	}
	return &Exception{
		message: err.Error(),
		cause:   errors.Unwrap(err),
	}
}

// Error implements the error interface.
func (e Exception) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the wrapped cause.
func (e Exception) Unwrap() error {
	return e.cause
}

// Message returns the human-readable message.
func (e Exception) Message() string { return e.message }

// StackTrace returns the captured stack trace, empty when none was taken.
func (e Exception) StackTrace() string { return e.stackTrace }

// Source returns the component that raised the error, empty when unset.
func (e Exception) Source() string { return e.source }

// Cause returns the wrapped cause, nil when none.
func (e Exception) Cause() error { return e.cause }

// SetMessage replaces the message.
func (e *Exception) SetMessage(message string) { e.message = message }

// SetStackTrace replaces the captured stack trace.
func (e *Exception) SetStackTrace(stackTrace string) { e.stackTrace = stackTrace }

// SetSource replaces the source component.
func (e *Exception) SetSource(source string) { e.source = source }

// SetCause replaces the wrapped cause.
func (e *Exception) SetCause(cause error) { e.cause = cause }

// WithSource sets the source component and returns the exception.
func (e *Exception) WithSource(source string) *Exception {
	e.source = source
	return e
}

// WithCause sets the wrapped cause and returns the exception.
func (e *Exception) WithCause(cause error) *Exception {
	e.cause = cause
	return e
}

// captureStackTrace formats the current call stack, skipping runtime frames
// and the capture machinery itself.
func captureStackTrace(skip int) string {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var b strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") {
			fmt.Fprintf(&b, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
