// Package errors provides structured error types for the kbforge compiler.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the pipeline
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (bad layout, bad profile)
//   - UNSUPPORTED_*: Input the compiler deliberately refuses
//   - GRID_*: Matrix bound violations
//   - INTERNAL_*: Pipeline invariant violations (a defect, not bad input)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeBadModifier, "modifier %q is not numeric", field)
//	if errors.Is(err, errors.ErrCodeBadModifier) {
//	    // Handle decode error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidProfile, origErr, "failed to load %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors: the layout cannot be compiled. These abort the run
	// before any output is produced.
	ErrCodeBadModifier    Code = "INVALID_MODIFIER"
	ErrCodeUnsupportedKey Code = "UNSUPPORTED_KEY"
	ErrCodeInvalidLayout  Code = "INVALID_LAYOUT"
	ErrCodeGridOverflow   Code = "GRID_OVERFLOW"

	// Configuration errors
	ErrCodeInvalidProfile Code = "INVALID_PROFILE"
	ErrCodeInvalidColumns Code = "INVALID_COLUMNS"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors: a pipeline invariant was violated. These indicate a
	// compiler defect rather than bad input.
	ErrCodeDuplicateAddress Code = "INTERNAL_DUPLICATE_ADDRESS"
	ErrCodeCoincident       Code = "INTERNAL_COINCIDENT_PLACEMENT"
	ErrCodeInternal         Code = "INTERNAL_ERROR"
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

// IsInputError reports whether the error is caused by the layout or the
// configuration, as opposed to an internal invariant violation.
func IsInputError(err error) bool {
	switch GetCode(err) {
	case ErrCodeBadModifier, ErrCodeUnsupportedKey, ErrCodeInvalidLayout,
		ErrCodeGridOverflow, ErrCodeInvalidProfile, ErrCodeInvalidColumns,
		ErrCodeFileNotFound:
		return true
	}
	return false
}
