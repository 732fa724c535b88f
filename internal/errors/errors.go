// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by handlers.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnprocessable indicates a business rule rejected an otherwise valid request.
	ErrUnprocessable = errors.New("unprocessable")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message while preserving the error chain.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// ruleError is a business-rule denial whose message is exactly the reason
// shown to the end user. Unlike Wrap it does not append the sentinel text,
// since clients display the message verbatim.
type ruleError struct {
	reason string
}

func (e *ruleError) Error() string { return e.reason }

func (e *ruleError) Unwrap() error { return ErrUnprocessable }

// Unprocessable returns a business-rule denial carrying the given reason.
// The result matches ErrUnprocessable under errors.Is.
func Unprocessable(reason string) error {
	return &ruleError{reason: reason}
}

// Unprocessablef is like Unprocessable with a formatted reason.
func Unprocessablef(format string, args ...any) error {
	return &ruleError{reason: fmt.Sprintf(format, args...)}
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
