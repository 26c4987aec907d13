package ndarray

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/abertrand/dsadd/internal/errors"
)

// bytesPerSample is the storage cost of one output sample. The output type
// is fixed to float64.
const bytesPerSample = 8

// MemoryEstimate describes the expected allocation cost of a combine output.
type MemoryEstimate struct {
	// Elements is the number of output samples.
	Elements int
	// TotalBytes is the estimated output allocation in bytes.
	TotalBytes uint64
}

// EstimateMemoryUsage estimates the output allocation for a combine that
// produces the given shape. The estimate covers only the result buffer; the
// inputs are owned by the caller and already resident.
//
// Parameters:
//   - shape: The planned output shape.
//
// Returns:
//   - MemoryEstimate: The element count and byte cost.
func EstimateMemoryUsage(shape Shape) MemoryEstimate {
	n := shape.NumElements()
	return MemoryEstimate{Elements: n, TotalBytes: uint64(n) * bytesPerSample}
}

// CheckMemoryBudget verifies that the combine output for shape fits within
// limitBytes. The check runs before allocation so a budget violation never
// leaves a partially built result behind.
//
// Parameters:
//   - shape: The planned output shape.
//   - limitBytes: The configured budget in bytes; must be > 0.
//
// Returns:
//   - error: An AllocationError when the estimate exceeds the budget.
func CheckMemoryBudget(shape Shape, limitBytes uint64) error {
	est := EstimateMemoryUsage(shape)
	if est.TotalBytes > limitBytes {
		return apperrors.AllocationError{Requested: est.TotalBytes, Limit: limitBytes}
	}
	return nil
}

// ParseMemoryLimit parses a human-readable memory limit such as "512MB",
// "2GiB", "1048576" (bytes) into a byte count. Both SI (KB, MB, GB) and
// binary (KiB, MiB, GiB) suffixes are accepted, case-insensitive.
//
// Parameters:
//   - s: The limit string.
//
// Returns:
//   - uint64: The limit in bytes.
//   - error: An error if the string cannot be parsed.
func ParseMemoryLimit(s string) (uint64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("empty memory limit")
	}

	upper := strings.ToUpper(trimmed)
	multipliers := []struct {
		suffix string
		factor uint64
	}{
		{"GIB", 1 << 30},
		{"MIB", 1 << 20},
		{"KIB", 1 << 10},
		{"GB", 1e9},
		{"MB", 1e6},
		{"KB", 1e3},
		{"B", 1},
	}

	for _, m := range multipliers {
		if strings.HasSuffix(upper, m.suffix) {
			numPart := strings.TrimSpace(upper[:len(upper)-len(m.suffix)])
			value, err := strconv.ParseFloat(numPart, 64)
			if err != nil || value < 0 {
				return 0, fmt.Errorf("invalid memory limit %q", s)
			}
			return uint64(value * float64(m.factor)), nil
		}
	}

	value, err := strconv.ParseUint(upper, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid memory limit %q", s)
	}
	return value, nil
}

// FormatMemoryEstimate renders an estimate in the largest unit that keeps
// the number readable.
//
// Parameters:
//   - est: The estimate to render.
//
// Returns:
//   - string: e.g. "7.6 MiB (1000000 elements)".
func FormatMemoryEstimate(est MemoryEstimate) string {
	const (
		kib = 1 << 10
		mib = 1 << 20
		gib = 1 << 30
	)
	var size string
	switch {
	case est.TotalBytes >= gib:
		size = fmt.Sprintf("%.1f GiB", float64(est.TotalBytes)/gib)
	case est.TotalBytes >= mib:
		size = fmt.Sprintf("%.1f MiB", float64(est.TotalBytes)/mib)
	case est.TotalBytes >= kib:
		size = fmt.Sprintf("%.1f KiB", float64(est.TotalBytes)/kib)
	default:
		size = fmt.Sprintf("%d B", est.TotalBytes)
	}
	return fmt.Sprintf("%s (%d elements)", size, est.Elements)
}
