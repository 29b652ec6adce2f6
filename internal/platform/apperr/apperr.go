// Copyright (c) 2026 Twittish. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for Twittish.

It provides a rich error type that bridges the gap between low-level storage
errors and the typed results surfaced to the presentation layer.

Architecture:

  - AppError: A struct containing a machine-readable ErrorCode and a
    user-friendly message.
  - Mapping: Every failure that can leave the mutation engine maps to exactly
    one of the codes below, so the presentation layer can switch on Code
    without string matching.

Every error that leaves the engine boundary should be wrapped as an [AppError]
to ensure consistent user-facing messaging.
*/
package apperr

import (
	"errors"
)

// Error codes recognized by the presentation layer.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeDuplicateUsername  = "DUPLICATE_USERNAME"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeStorageCorrupt     = "STORAGE_CORRUPT"
)

// AppError is the canonical error type for the Twittish core.
//
// It carries a machine-readable code, a user-safe message, and an optional
// slice of field-level validation errors.
//
// The Cause field is for logging only and is never part of the user-facing
// message, to avoid leaking internal implementation details.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND").
	Code string `json:"code"`
	// Message is a human-readable description safe to show the user.
	Message string `json:"error"`
	// Cause is the underlying error, used for logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR results.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the input field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the user-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Constructors

// NotFound creates a NOT_FOUND [AppError] for a named entity.
//
// Example:
//
//	apperr.NotFound("Post") // Returns "Post not found"
func NotFound(entity string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: entity + " not found",
	}
}

// Unauthorized creates an UNAUTHORIZED [AppError] for mutations that require
// an active session when none exists.
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: msg,
	}
}

// DuplicateUsername creates a DUPLICATE_USERNAME [AppError] for a
// registration collision.
func DuplicateUsername(username string) *AppError {
	return &AppError{
		Code:    CodeDuplicateUsername,
		Message: "Username @" + username + " is already taken",
	}
}

// InvalidCredentials creates an INVALID_CREDENTIALS [AppError].
//
// The message is intentionally generic to avoid credential oracle behavior.
func InvalidCredentials() *AppError {
	return &AppError{
		Code:    CodeInvalidCredentials,
		Message: "Invalid login credentials",
	}
}

// ValidationError creates a VALIDATION_ERROR [AppError] with optional
// per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:    CodeValidationError,
		Message: msg,
		Details: details,
	}
}

// StorageCorrupt creates a STORAGE_CORRUPT [AppError] wrapping the decode
// failure. It is recovered by reseeding and logged as informational, never
// surfaced as a blocking failure.
func StorageCorrupt(cause error) *AppError {
	return &AppError{
		Code:    CodeStorageCorrupt,
		Message: "Persisted snapshot is unreadable",
		Cause:   cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsCode reports whether err carries the given [AppError] code.
func IsCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
