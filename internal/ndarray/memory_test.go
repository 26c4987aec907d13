package ndarray

import (
	"errors"
	"testing"

	apperrors "github.com/abertrand/dsadd/internal/errors"
)

func TestParseMemoryLimit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected uint64
		wantErr  bool
	}{
		{"plain bytes", "1048576", 1 << 20, false},
		{"kilobytes", "8KB", 8000, false},
		{"megabytes", "512MB", 512e6, false},
		{"gigabytes", "2GB", 2e9, false},
		{"kibibytes", "8KiB", 8 << 10, false},
		{"mebibytes", "512MiB", 512 << 20, false},
		{"gibibytes", "2GiB", 2 << 30, false},
		{"lowercase", "16mb", 16e6, false},
		{"fractional", "1.5GiB", uint64(1.5 * float64(1<<30)), false},
		{"whitespace", " 64MB ", 64e6, false},
		{"empty", "", 0, true},
		{"garbage", "lots", 0, true},
		{"negative", "-5MB", 0, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseMemoryLimit(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMemoryLimit(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("ParseMemoryLimit(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEstimateMemoryUsage(t *testing.T) {
	t.Parallel()
	est := EstimateMemoryUsage(Shape{1000, 1000})
	if est.Elements != 1000000 {
		t.Errorf("Elements = %d, want 1000000", est.Elements)
	}
	if est.TotalBytes != 8000000 {
		t.Errorf("TotalBytes = %d, want 8000000", est.TotalBytes)
	}

	empty := EstimateMemoryUsage(Shape{4, 0})
	if empty.TotalBytes != 0 {
		t.Errorf("empty shape TotalBytes = %d, want 0", empty.TotalBytes)
	}
}

func TestCheckMemoryBudget(t *testing.T) {
	t.Parallel()

	t.Run("within budget", func(t *testing.T) {
		t.Parallel()
		if err := CheckMemoryBudget(Shape{10, 10}, 1<<20); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("over budget", func(t *testing.T) {
		t.Parallel()
		err := CheckMemoryBudget(Shape{1000, 1000}, 1<<20)
		var allocErr apperrors.AllocationError
		if !errors.As(err, &allocErr) {
			t.Fatalf("expected AllocationError, got %v", err)
		}
		if allocErr.Limit != 1<<20 {
			t.Errorf("Limit = %d, want %d", allocErr.Limit, 1<<20)
		}
	})
}

func TestFormatMemoryEstimate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		est      MemoryEstimate
		expected string
	}{
		{"bytes", MemoryEstimate{Elements: 4, TotalBytes: 32}, "32 B (4 elements)"},
		{"mebibytes", MemoryEstimate{Elements: 1000000, TotalBytes: 8000000}, "7.6 MiB (1000000 elements)"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatMemoryEstimate(tt.est); got != tt.expected {
				t.Errorf("FormatMemoryEstimate = %q, want %q", got, tt.expected)
			}
		})
	}
}
