// Package errors provides structured error types for structviz.
//
// Every failure the engine can report carries a machine-readable [Code] and a
// human-readable message. Sessions surface the message to the user and keep
// running; callers that need to branch on the failure kind use [Is] or
// [GetCode].
//
// # Error Codes
//
// Codes follow the failure taxonomy of the engine:
//   - MALFORMED_SNAPSHOT: backend output could not be interpreted
//   - INVALID_*, VERTEX_LIMIT_EXCEEDED, CANNOT_REMOVE_LAST_VERTEX: user input
//     violates a topology invariant and was rejected before reaching the backend
//   - BACKEND_UNAVAILABLE: the structure backend is not loaded or not initialized
//   - ALGORITHM_PRECONDITION: an algorithm cannot run on the current topology
//   - BACKEND_CONTRACT: the backend returned state that breaks its contract
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidVertex, "vertex %d out of range [0, %d)", v, n)
//	if errors.Is(err, errors.ErrCodeInvalidVertex) {
//	    // reject and show errors.UserMessage(err)
//	}
//
//	err := errors.Wrap(errors.ErrCodeMalformedSnapshot, cause, "expected %s", "matrix")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the failure categories.
const (
	// Snapshot errors
	ErrCodeMalformedSnapshot Code = "MALFORMED_SNAPSHOT"

	// Topology input errors
	ErrCodeInvalidVertex          Code = "INVALID_VERTEX"
	ErrCodeInvalidVertexCount     Code = "INVALID_VERTEX_COUNT"
	ErrCodeVertexLimitExceeded    Code = "VERTEX_LIMIT_EXCEEDED"
	ErrCodeCannotRemoveLastVertex Code = "CANNOT_REMOVE_LAST_VERTEX"
	ErrCodeInvalidWeight          Code = "INVALID_WEIGHT"

	// Backend errors
	ErrCodeBackendUnavailable Code = "BACKEND_UNAVAILABLE"
	ErrCodeBackendContract    Code = "BACKEND_CONTRACT"

	// Algorithm errors
	ErrCodeAlgorithmPrecondition Code = "ALGORITHM_PRECONDITION"

	// Generic input errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidStructure Code = "INVALID_STRUCTURE"
	ErrCodeInvalidAlgorithm Code = "INVALID_ALGORITHM"

	// Lookup errors
	ErrCodeNotFound Code = "NOT_FOUND"

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

// Malformed reports a snapshot that does not match the expected shape.
func Malformed(shape, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeMalformedSnapshot,
		Message: fmt.Sprintf("expected %s snapshot: %s", shape, fmt.Sprintf(format, args...)),
	}
}

// IsUserError reports whether err was caused by input the user can correct,
// as opposed to a backend or internal failure.
func IsUserError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidVertex, ErrCodeInvalidVertexCount, ErrCodeVertexLimitExceeded,
		ErrCodeCannotRemoveLastVertex, ErrCodeInvalidWeight, ErrCodeAlgorithmPrecondition,
		ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidStructure, ErrCodeInvalidAlgorithm:
		return true
	}
	return false
}
