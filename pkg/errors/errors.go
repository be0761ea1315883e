// Package errors provides structured error types for vankamp.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Structural failures abort a run:
//   - MALFORMED_INPUT: the edge list cannot be parsed
//   - MALFORMED_EMBEDDING: a face walk does not close
//   - DEGENERATE_GEOMETRY: a normalization denominator is zero
//
// MINIMIZER_NON_CONVERGENCE is recoverable: the optimizer rejects the move and
// continues with the next vertex.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedInput, "line %d: expected 2 tokens", n)
//	if errors.Is(err, errors.ErrCodeMalformedInput) {
//	    // Handle parse failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "load %s", path)
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
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Layout errors
	ErrCodeMalformedInput          Code = "MALFORMED_INPUT"
	ErrCodeMalformedEmbedding      Code = "MALFORMED_EMBEDDING"
	ErrCodeMinimizerNonConvergence Code = "MINIMIZER_NON_CONVERGENCE"
	ErrCodeDegenerateGeometry      Code = "DEGENERATE_GEOMETRY"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// IsStructural reports whether err carries a code that must abort a run.
// Non-convergence and uncoded errors are not structural.
func IsStructural(err error) bool {
	switch GetCode(err) {
	case ErrCodeMalformedInput, ErrCodeMalformedEmbedding, ErrCodeDegenerateGeometry:
		return true
	}
	return false
}
