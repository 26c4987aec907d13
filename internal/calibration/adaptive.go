// This file implements adaptive threshold candidate generation based on
// hardware characteristics.

package calibration

import (
	"runtime"

	"github.com/abertrand/dsadd/internal/config"
)

// SequentialThreshold is the sentinel candidate that keeps the parallel
// strategy on its sequential path regardless of dataset size.
const SequentialThreshold = 1 << 30

// ─────────────────────────────────────────────────────────────────────────────
// Adaptive Parallel Threshold Generation
// ─────────────────────────────────────────────────────────────────────────────

// GenerateParallelThresholds generates the list of parallel threshold
// candidates to benchmark, based on the number of available CPU cores.
//
// The rationale:
// - Single-core: Only test sequential as parallelism has no benefit
// - 2-4 cores: Test higher thresholds as parallelism overhead is relatively high
// - 8+ cores: Include lower thresholds as more parallelism can be beneficial
// - 16+ cores: Add even lower thresholds for very fine-grained parallelism
func GenerateParallelThresholds() []int {
	numCPU := runtime.NumCPU()

	// The sequential sentinel is always tested as a baseline
	thresholds := []int{SequentialThreshold}

	switch {
	case numCPU == 1:
		// Single core: only sequential makes sense
		return thresholds

	case numCPU <= 4:
		// Few cores: test coarse thresholds
		thresholds = append(thresholds, 524288, 262144, 131072, 65536)

	case numCPU <= 8:
		// Medium core count: broader range
		thresholds = append(thresholds, 524288, 262144, 131072, 65536, 32768, 16384)

	case numCPU <= 16:
		// Many cores: include finer thresholds
		thresholds = append(thresholds, 524288, 262144, 131072, 65536, 32768, 16384, 8192)

	default:
		// High core count (16+): full range including very fine thresholds
		thresholds = append(thresholds, 524288, 262144, 131072, 65536, 32768, 16384, 8192, 4096)
	}

	return thresholds
}

// GenerateQuickParallelThresholds generates a smaller set of candidates for
// quick auto-calibration at startup.
func GenerateQuickParallelThresholds() []int {
	numCPU := runtime.NumCPU()

	if numCPU == 1 {
		return []int{SequentialThreshold}
	}

	// Reduced set for quick calibration
	switch {
	case numCPU <= 4:
		return []int{SequentialThreshold, 131072, 65536}
	case numCPU <= 8:
		return []int{SequentialThreshold, 131072, 65536, 32768}
	default:
		return []int{SequentialThreshold, 131072, 65536, 32768, 16384}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Threshold Estimation (without benchmarking)
// Delegates to config.EstimateOptimal*; the canonical implementations live there.
// ─────────────────────────────────────────────────────────────────────────────

// EstimateOptimalParallelThreshold delegates to config.EstimateOptimalParallelThreshold.
func EstimateOptimalParallelThreshold() int { return config.EstimateOptimalParallelThreshold() }

// EstimateOptimalWorkers delegates to config.EstimateOptimalWorkers.
func EstimateOptimalWorkers() int { return config.EstimateOptimalWorkers() }
