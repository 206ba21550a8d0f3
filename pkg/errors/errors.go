// Package errors provides structured error types for py3dephell.
//
// Every failure the dependency scanner can report belongs to one of a small
// set of categories. Most of them are recoverable per file: the caller logs
// the error and moves on to the next input. Only a prefix misconfiguration
// aborts a single resolution call.
//
// # Error Codes
//
//   - FILE_NOT_FOUND: requested path does not exist
//   - INVALID_SYNTAX: source text could not be parsed
//   - INVALID_NAME: provide name with disallowed characters
//   - INVALID_BINARY: shared object too short or with an unknown header
//   - INVALID_PREFIX: path became empty after prefix stripping
//   - INVALID_INPUT, INVALID_PATH, INVALID_CONFIG: bad user input
//   - INTERNAL_ERROR: unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidPrefix, "path %s was cut by prefix", path)
//	if errors.Is(err, errors.ErrCodeInvalidPrefix) {
//	    // prefixes were passed inconsistently with the input path
//	}
//
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPrefix Code = "INVALID_PREFIX"

	// Malformed input errors
	ErrCodeInvalidSyntax Code = "INVALID_SYNTAX"
	ErrCodeInvalidName   Code = "INVALID_NAME"
	ErrCodeInvalidBinary Code = "INVALID_BINARY"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Recoverable reports whether a batch may continue after err.
// Everything except internal failures only affects the file at hand.
func Recoverable(err error) bool {
	if err == nil {
		return true
	}
	code := GetCode(err)
	return code != "" && code != ErrCodeInternal
}
