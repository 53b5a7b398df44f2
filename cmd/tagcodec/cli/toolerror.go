// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies command errors so that scripts (and main's
// debug logging) can tell bad input apart from bad data without parsing
// error message text.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// unknown flags, wrong argument count, unparseable values. The caller
	// should fix the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced resource does not exist:
	// a missing identity file, or a value index past the end of the
	// input.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden indicates the supplied identities cannot open a
	// sealed envelope.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryInternal indicates an unexpected error: I/O failures,
	// malformed encoded data, codec bugs. The caller should report the
	// error rather than retry.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by CLI commands.
//
// ToolError wraps an inner error, preserving the full error chain for
// debugging while adding category metadata. Use the category-specific
// constructors (Validation, NotFound, etc.) rather than constructing
// ToolError directly.
type ToolError struct {
	// Category classifies the error for programmatic handling.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error
}

// Error returns the underlying error message. The category is not
// included in the string.
func (e *ToolError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error, allowing errors.Is and
// errors.As to walk the full chain through the ToolError wrapper.
func (e *ToolError) Unwrap() error { return e.Err }

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced resource does not exist.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Forbidden creates a forbidden error: the caller lacks the key.
func Forbidden(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryForbidden, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure, bug, or I/O error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// Category returns the category of the first ToolError in err's chain,
// or CategoryInternal when err carries none.
func Category(err error) ErrorCategory {
	var toolError *ToolError
	if errors.As(err, &toolError) {
		return toolError.Category
	}
	return CategoryInternal
}
