package calibration

import (
	"runtime"
	"testing"
)

func TestGenerateParallelThresholds(t *testing.T) {
	t.Parallel()
	thresholds := GenerateParallelThresholds()

	// Should always include the sequential baseline
	if len(thresholds) == 0 || thresholds[0] != SequentialThreshold {
		t.Error("Expected thresholds to start with the sequential sentinel")
	}

	// Thresholds should be positive
	for i, th := range thresholds {
		if th <= 0 {
			t.Errorf("Threshold at index %d is not positive: %d", i, th)
		}
	}

	// Verify thresholds are appropriate for CPU count
	numCPU := runtime.NumCPU()
	switch {
	case numCPU == 1:
		if len(thresholds) != 1 {
			t.Errorf("For 1 CPU, expected 1 threshold, got %d", len(thresholds))
		}
	case numCPU <= 4:
		if len(thresholds) != 5 {
			t.Errorf("For %d CPUs, expected 5 thresholds, got %d", numCPU, len(thresholds))
		}
	case numCPU <= 8:
		if len(thresholds) != 7 {
			t.Errorf("For %d CPUs, expected 7 thresholds, got %d", numCPU, len(thresholds))
		}
	case numCPU <= 16:
		if len(thresholds) != 8 {
			t.Errorf("For %d CPUs, expected 8 thresholds, got %d", numCPU, len(thresholds))
		}
	default:
		if len(thresholds) != 9 {
			t.Errorf("For %d CPUs, expected 9 thresholds, got %d", numCPU, len(thresholds))
		}
	}

	// Log the thresholds for visibility
	t.Logf("Generated %d parallel thresholds for %d CPUs: %v",
		len(thresholds), numCPU, thresholds)
}

func TestGenerateQuickParallelThresholds(t *testing.T) {
	t.Parallel()
	thresholds := GenerateQuickParallelThresholds()

	// Should be shorter than full list
	fullThresholds := GenerateParallelThresholds()
	if len(thresholds) > len(fullThresholds) {
		t.Error("Quick thresholds should not be longer than full thresholds")
	}

	// Should have at least one threshold
	if len(thresholds) < 1 {
		t.Error("Expected at least one threshold")
	}

	// Verify thresholds are appropriate for CPU count
	numCPU := runtime.NumCPU()
	switch {
	case numCPU == 1:
		if len(thresholds) != 1 || thresholds[0] != SequentialThreshold {
			t.Errorf("For 1 CPU, expected only the sequential sentinel, got %v", thresholds)
		}
	case numCPU <= 4:
		if len(thresholds) != 3 {
			t.Errorf("For %d CPUs, expected 3 thresholds, got %d", numCPU, len(thresholds))
		}
	case numCPU <= 8:
		if len(thresholds) != 4 {
			t.Errorf("For %d CPUs, expected 4 thresholds, got %d", numCPU, len(thresholds))
		}
	default:
		if len(thresholds) != 5 {
			t.Errorf("For %d CPUs, expected 5 thresholds, got %d", numCPU, len(thresholds))
		}
	}

	t.Logf("Generated %d quick parallel thresholds: %v", len(thresholds), thresholds)
}

func TestEstimateOptimalParallelThreshold(t *testing.T) {
	t.Parallel()
	threshold := EstimateOptimalParallelThreshold()

	// Should be positive
	if threshold <= 0 {
		t.Errorf("Estimated parallel threshold should be positive: %d", threshold)
	}

	numCPU := runtime.NumCPU()
	t.Logf("Estimated parallel threshold for %d CPUs: %d", numCPU, threshold)
}

func TestEstimateOptimalWorkers(t *testing.T) {
	t.Parallel()
	workers := EstimateOptimalWorkers()

	if workers < 1 {
		t.Errorf("Estimated workers should be at least 1: %d", workers)
	}
	if workers > runtime.NumCPU() {
		t.Errorf("Estimated workers %d exceeds CPU count %d", workers, runtime.NumCPU())
	}
}

// Benchmark threshold generation
func BenchmarkGenerateParallelThresholds(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = GenerateParallelThresholds()
	}
}
