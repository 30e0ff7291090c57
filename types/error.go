package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unified error code across the library.
type ErrorCode string

// Codec error codes
const (
	ErrInvalidDocument   ErrorCode = "INVALID_DOCUMENT"
	ErrUnsupportedType   ErrorCode = "UNSUPPORTED_TYPE"
	ErrLookupFailure     ErrorCode = "LOOKUP_FAILURE"
	ErrConversionFailure ErrorCode = "CONVERSION_FAILURE"
)

// Generator error codes
const (
	ErrSchemaGeneration  ErrorCode = "SCHEMA_GENERATION"
	ErrUnsupportedKind   ErrorCode = "UNSUPPORTED_KIND"
	ErrMaxDepthExceeded  ErrorCode = "MAX_DEPTH_EXCEEDED"
	ErrInvalidDefinition ErrorCode = "INVALID_DEFINITION"
)

// Config error codes
const (
	ErrInvalidConfig ErrorCode = "INVALID_CONFIG"
	ErrUnknownPolicy ErrorCode = "UNKNOWN_POLICY"
)

// Error represents a structured error with code, message, and metadata.
type Error struct {
	Code     ErrorCode `json:"code"`
	Message  string    `json:"message"`
	TypeName string    `json:"type,omitempty"`
	Field    string    `json:"field,omitempty"`
	Cause    error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithTypeName records the Go type the error relates to.
func (e *Error) WithTypeName(name string) *Error {
	e.TypeName = name
	return e
}

// WithField records the struct field or JSON key the error relates to.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) ErrorCode {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}

// IsErrorCode reports whether err or any of its wrapped causes is an
// *Error carrying the given code.
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
