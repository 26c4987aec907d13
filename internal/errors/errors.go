package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a result mismatch between strategies.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorLoad     = 5   // Indicates a dataset could not be loaded.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect
// user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// LoadError represents a failed dataset load: the source was canceled by the
// operator, could not be read, or is in a format no codec can decode. A load
// failure aborts the run and is never retried automatically.
type LoadError struct {
	// Path is the dataset location that failed to load.
	Path string
	// Cause is the underlying decode or I/O error, if any.
	Cause error
}

// Error returns a formatted message describing the load failure.
func (e LoadError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("failed to load dataset %q", e.Path)
	}
	return fmt.Sprintf("failed to load dataset %q: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying cause, allowing for error chain inspection
// (e.g., using errors.Is or errors.As).
func (e LoadError) Unwrap() error { return e.Cause }

// AllocationError represents a result-array allocation that would exceed the
// configured memory budget. The combine is atomic from the caller's
// perspective: the check runs before allocation, so a budget violation means
// the operation was never started.
type AllocationError struct {
	// Requested is the number of bytes the output array needed.
	Requested uint64
	// Limit is the configured memory limit in bytes.
	Limit uint64
}

// Error returns a formatted message describing the allocation failure.
func (e AllocationError) Error() string {
	return fmt.Sprintf("allocation error: result requires %d bytes, limit is %d bytes", e.Requested, e.Limit)
}

// TimeoutError represents a combine timeout. It captures the operation name
// and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: true if the error is a context error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the application exit code that best describes
// it. Unknown errors map to the generic failure code.
//
// Parameters:
//   - err: The error to classify; may be nil.
//
// Returns:
//   - int: The exit code for err.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	}
	var loadErr LoadError
	if errors.As(err, &loadErr) {
		return ExitErrorLoad
	}
	var cfgErr ConfigError
	if errors.As(err, &cfgErr) {
		return ExitErrorConfig
	}
	// A combine-time budget violation exits like the pre-check path does.
	var allocErr AllocationError
	if errors.As(err, &allocErr) {
		return ExitErrorConfig
	}
	var timeoutErr TimeoutError
	if errors.As(err, &timeoutErr) {
		return ExitErrorTimeout
	}
	return ExitErrorGeneric
}
