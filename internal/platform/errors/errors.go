// Package errors provides error types and utilities for publishx.
// It extends the standard errors package with additional context and wrapping capabilities.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios
var (
	// ErrTimeout indicates an operation exceeded its time limit
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates an operation was interrupted by its caller
	ErrCanceled = errors.New("operation canceled")

	// ErrInvalidInput indicates invalid input was provided
	ErrInvalidInput = errors.New("invalid input")
)

// ConfigError describes an invalid configuration value.
// It matches ErrInvalidInput so callers can classify it without a type assertion.
type ConfigError struct {
	// Field configuration key (flag or env name)
	Field string

	// Value offending value as given by the user
	Value string

	// Reason short explanation
	Reason string

	// Err underlying cause, if any
	Err error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("invalid configuration %s=%q", e.Field, e.Value)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is reports ErrInvalidInput as a match
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewConfigError builds a ConfigError without an underlying cause.
func NewConfigError(field, value, reason string) *ConfigError {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}

// wrappedError wraps an error with additional context
type wrappedError struct {
	msg   string
	cause error
}

// Error implements the error interface
func (e *wrappedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

// Unwrap returns the underlying error
func (e *wrappedError) Unwrap() error {
	return e.cause
}

// Wrap wraps an error with additional context message.
// If err is nil, Wrap returns nil.
//
// Example:
//   err := someOperation()
//   if err != nil {
//       return errors.Wrap(err, "failed to perform operation")
//   }
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg:   msg,
		cause: err,
	}
}

// Wrapf wraps an error with a formatted context message.
// If err is nil, Wrapf returns nil.
//
// Example:
//   err := plugin.Process(ctx, inst)
//   if err != nil {
//       return errors.Wrapf(err, "failed to process instance %s", inst.Name)
//   }
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around errors.Is from the standard library.
//
// Example:
//   if errors.Is(err, errors.ErrTimeout) {
//       // Handle timeout
//   }
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type.
// This is a convenience wrapper around errors.As from the standard library.
//
// Example:
//   var cfgErr *errors.ConfigError
//   if errors.As(err, &cfgErr) {
//       // Handle configuration error
//   }
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// IsTimeout reports whether the error is a timeout error
func IsTimeout(err error) bool {
	return Is(err, ErrTimeout)
}

// IsCanceled reports whether the error is a cancellation error
func IsCanceled(err error) bool {
	return Is(err, ErrCanceled)
}

// IsInvalidInput reports whether the error is an invalid input error
func IsInvalidInput(err error) bool {
	return Is(err, ErrInvalidInput)
}

// IsConfig reports whether the error chain contains a ConfigError
func IsConfig(err error) bool {
	var cfgErr *ConfigError
	return As(err, &cfgErr)
}
