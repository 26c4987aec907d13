// Package apperrors provides tests for application error types.
package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid flag value"},
			expected: "invalid flag value",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("invalid value %d for flag %s", 42, "--threshold"),
			expected: "invalid value 42 for flag --threshold",
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestLoadError(t *testing.T) {
	t.Parallel()

	t.Run("Error includes path", func(t *testing.T) {
		t.Parallel()
		err := LoadError{Path: "/data/a.nda"}
		expected := `failed to load dataset "/data/a.nda"`
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("Error includes cause", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("no such file")
		err := LoadError{Path: "b.csv", Cause: cause}
		expected := `failed to load dataset "b.csv": no such file`
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("Unwrap exposes cause", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("decode failed")
		err := LoadError{Path: "b.png", Cause: cause}
		if !errors.Is(err, cause) {
			t.Error("errors.Is should match the wrapped cause")
		}
	})

	t.Run("errors.As through a wrapping chain", func(t *testing.T) {
		t.Parallel()
		inner := LoadError{Path: "c.nda", Cause: errors.New("corrupt header")}
		wrapped := WrapError(inner, "loading first input")
		var loadErr LoadError
		if !errors.As(wrapped, &loadErr) {
			t.Fatal("expected errors.As to find LoadError")
		}
		if loadErr.Path != "c.nda" {
			t.Errorf("expected path %q, got %q", "c.nda", loadErr.Path)
		}
	})
}

func TestAllocationError(t *testing.T) {
	t.Parallel()
	err := AllocationError{Requested: 8000000, Limit: 1000000}
	expected := "allocation error: result requires 8000000 bytes, limit is 1000000 bytes"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	err := TimeoutError{Operation: "combine", Limit: 5 * time.Minute}
	expected := `operation "combine" timed out after 5m0s`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	err := ValidationError{Field: "shape", Message: "negative extent -1 at dimension 0"}
	expected := `validation error for "shape": negative extent -1 at dimension 0`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()
		if WrapError(nil, "context") != nil {
			t.Error("WrapError(nil, ...) should return nil")
		}
	})

	t.Run("wraps with context message", func(t *testing.T) {
		t.Parallel()
		base := errors.New("base failure")
		wrapped := WrapError(base, "while doing %s", "work")
		expected := "while doing work: base failure"
		if wrapped.Error() != expected {
			t.Errorf("expected %q, got %q", expected, wrapped.Error())
		}
		if !errors.Is(wrapped, base) {
			t.Error("wrapped error should match base via errors.Is")
		}
	})
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped canceled", fmt.Errorf("op: %w", context.Canceled), true},
		{"other error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.expected {
				t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil is success", nil, ExitSuccess},
		{"deadline maps to timeout", context.DeadlineExceeded, ExitErrorTimeout},
		{"canceled maps to canceled", context.Canceled, ExitErrorCanceled},
		{"load error", LoadError{Path: "x"}, ExitErrorLoad},
		{"config error", ConfigError{Message: "bad"}, ExitErrorConfig},
		{"allocation error", AllocationError{Requested: 2048, Limit: 1024}, ExitErrorConfig},
		{"timeout error type", TimeoutError{Operation: "combine", Limit: time.Second}, ExitErrorTimeout},
		{"generic", errors.New("boom"), ExitErrorGeneric},
		{"wrapped load error", WrapError(LoadError{Path: "y"}, "first input"), ExitErrorLoad},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.expected)
			}
		})
	}
}
