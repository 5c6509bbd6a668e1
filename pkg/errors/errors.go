// Package errors provides structured error types for apg.
//
// This package defines error codes and types that enable:
//   - Consistent contract-violation reporting across the graph, plug and box layers
//   - Machine-readable error codes for per-box error indicators
//   - User-friendly error messages in the CLI
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - DUPLICATE_*: A name is already taken in its namespace
//   - UNKNOWN_*: A referenced node, edge, plug, box or wire does not exist
//   - INVALID_*: Input validation failures (documents, names, formats)
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
// Packages declare sentinel values once and wrap them with context:
//
//	var ErrSelfLoop = errors.New(errors.ErrCodeSelfLoop, "self-loops are not allowed")
//	return fmt.Errorf("add edge %q: %w", name, ErrSelfLoop)
//
// Callers match either the sentinel or its code:
//
//	stderrors.Is(err, graph.ErrSelfLoop)
//	errors.Is(err, errors.ErrCodeSelfLoop)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Graph contract violations
	ErrCodeDuplicateNode Code = "DUPLICATE_NODE"
	ErrCodeDuplicateEdge Code = "DUPLICATE_EDGE"
	ErrCodeUnknownNode   Code = "UNKNOWN_NODE"
	ErrCodeUnknownEdge   Code = "UNKNOWN_EDGE"
	ErrCodeSelfLoop      Code = "SELF_LOOP"
	ErrCodeParallelEdge  Code = "PARALLEL_EDGE"
	ErrCodeFrozen        Code = "FROZEN"

	// Plug and box contract violations
	ErrCodeDuplicatePlug          Code = "DUPLICATE_PLUG"
	ErrCodeUnknownPlug            Code = "UNKNOWN_PLUG"
	ErrCodeAlreadyAttached        Code = "ALREADY_ATTACHED"
	ErrCodeWriteOutsideProcessing Code = "WRITE_OUTSIDE_PROCESSING"
	ErrCodeNoValue                Code = "NO_VALUE"

	// Program (scheduler) errors
	ErrCodeUnknownBox    Code = "UNKNOWN_BOX"
	ErrCodeDuplicateBox  Code = "DUPLICATE_BOX"
	ErrCodeUnknownWire   Code = "UNKNOWN_WIRE"
	ErrCodeDuplicateWire Code = "DUPLICATE_WIRE"
	ErrCodeCancelled     Code = "CANCELLED"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidName   Code = "INVALID_NAME"

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
