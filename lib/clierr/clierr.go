// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clierr classifies command-line failures so that scripts
// driving bureau-select can tell bad input from a missing file from a
// bug by exit code, without parsing error text.
package clierr

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies tool errors.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// unknown flag values, an empty option list, an option without a
	// value. The caller should fix the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced file does not exist.
	// Retrying with the same arguments will not help.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryInternal indicates an unexpected error: terminal
	// failures, I/O errors on files the tool wrote itself.
	CategoryInternal ErrorCategory = "internal"
)

// ExitCode maps the category to a process exit code. Exit code 1 is
// reserved for a dismissed select.
func (category ErrorCategory) ExitCode() int {
	switch category {
	case CategoryValidation:
		return 2
	case CategoryNotFound:
		return 3
	default:
		return 4
	}
}

// ToolError is a categorized error. It wraps an inner error,
// preserving the chain for errors.Is and errors.As. Use the
// category-specific constructors rather than constructing ToolError
// directly.
type ToolError struct {
	// Category classifies the error for programmatic handling.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error

	// Hint is an optional next step shown after the message.
	Hint string
}

// Error returns the message, followed by the hint after a blank line
// when one is set.
func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

// Unwrap returns the underlying error.
func (e *ToolError) Unwrap() error { return e.Err }

// WithHint sets the hint and returns the receiver for chaining.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced file does not exist.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure or I/O error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// ExitError signals a non-zero exit code without printing an error
// message. A dismissed select returns one with code 1: nothing went
// wrong, but there is no value to print.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitCode returns the process exit code for err: 0 for nil, the code
// of an ExitError, the category code of a ToolError, and 1 otherwise.
// The second result reports whether err should be printed.
func ExitCode(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, false
	}
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return toolErr.Category.ExitCode(), true
	}
	return 1, true
}
