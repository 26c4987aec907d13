package config

import "runtime"

// Threshold resolution chain (highest priority first):
//   1. CLI flags (--threshold, --workers)
//   2. Environment variables (DSADD_THRESHOLD, DSADD_WORKERS)
//   3. Cached calibration profile (~/.dsadd_calibration.json)
//   4. Adaptive hardware estimation (this file)
//   5. Static defaults in ndarray/constants.go

// ApplyAdaptiveThresholds adjusts the configuration thresholds based on
// hardware characteristics (CPU cores) when default values are detected.
// This provides automatic performance tuning without requiring explicit
// calibration.
//
// The function only modifies values that are set to their zero default,
// preserving any user-specified overrides via command-line flags.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.Threshold == 0 {
		cfg.Threshold = EstimateOptimalParallelThreshold()
	}
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkers()
	}
	return cfg
}

// EstimateOptimalParallelThreshold provides a heuristic estimate of the
// output element count above which fanning out pays off, without running
// benchmarks. More cores amortize the goroutine setup cost over smaller
// outputs.
func EstimateOptimalParallelThreshold() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return 1 << 30 // Effectively sequential - parallelism cannot win
	case numCPU <= 2:
		return 262144 // High threshold - goroutine overhead is significant
	case numCPU <= 4:
		return 131072
	case numCPU <= 8:
		return 65536 // Default
	case numCPU <= 16:
		return 32768
	default:
		return 16384 // High core count - aggressive parallelism
	}
}

// EstimateOptimalWorkers provides a heuristic estimate of the optimal worker
// count for the parallel strategy. The sweep is memory-bound, so one worker
// per logical processor is the sensible ceiling.
func EstimateOptimalWorkers() int {
	return runtime.NumCPU()
}
