package calibration

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/abertrand/dsadd/internal/config"
	"github.com/abertrand/dsadd/internal/ndarray"
	"github.com/abertrand/dsadd/internal/progress"
)

const (
	// FullCalibrationElements is the synthetic dataset size for -calibrate.
	FullCalibrationElements = 1 << 20
	// QuickCalibrationElements is the reduced size for auto-calibration.
	QuickCalibrationElements = 1 << 18
	// calibrationReps is the number of repetitions per candidate; the
	// fastest run is kept to reduce scheduler noise.
	calibrationReps = 3
	// ProfileMaxAge bounds how long a cached profile is trusted.
	ProfileMaxAge = 7 * 24 * time.Hour
)

// calibrationResult holds the measured duration for one threshold candidate.
type calibrationResult struct {
	Threshold int
	Duration  time.Duration
	Err       error
}

// makeSyntheticPair builds two deterministic square datasets with the given
// total element count.
func makeSyntheticPair(elements int) (a, b *ndarray.Array[float64], err error) {
	side := int(math.Sqrt(float64(elements)))
	if side < 1 {
		side = 1
	}
	shape := ndarray.Shape{side, side}

	a, err = ndarray.New[float64](shape, nil)
	if err != nil {
		return nil, nil, err
	}
	b, err = ndarray.New[float64](shape, nil)
	if err != nil {
		return nil, nil, err
	}
	for i := range a.Data() {
		a.Data()[i] = float64(i % 97)
		b.Data()[i] = float64(i % 89)
	}
	return a, b, nil
}

// benchmarkThreshold measures the fastest of calibrationReps combines at the
// given threshold.
func benchmarkThreshold(ctx context.Context, combiner ndarray.Combiner, a, b ndarray.View, threshold, workers int) (time.Duration, error) {
	opts := ndarray.Options{
		ParallelThreshold: threshold,
		Workers:           workers,
	}

	best := time.Duration(math.MaxInt64)
	for i := 0; i < calibrationReps; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		start := time.Now()
		if _, err := combiner.Combine(ctx, a, b, progress.Noop, opts); err != nil {
			return 0, err
		}
		if d := time.Since(start); d < best {
			best = d
		}
	}
	return best, nil
}

// runThresholdSweep benchmarks every candidate and returns the results with
// the best threshold found.
func runThresholdSweep(ctx context.Context, factory ndarray.Factory, candidates []int, elements, workers int) ([]calibrationResult, int, error) {
	combiner, err := factory.Get("parallel")
	if err != nil {
		return nil, 0, err
	}

	a, b, err := makeSyntheticPair(elements)
	if err != nil {
		return nil, 0, err
	}

	results := make([]calibrationResult, 0, len(candidates))
	best := candidates[0]
	bestDuration := time.Duration(math.MaxInt64)

	for _, threshold := range candidates {
		duration, err := benchmarkThreshold(ctx, combiner, a, b, threshold, workers)
		results = append(results, calibrationResult{Threshold: threshold, Duration: duration, Err: err})
		if err != nil {
			if ctx.Err() != nil {
				return results, best, ctx.Err()
			}
			continue
		}
		if duration < bestDuration {
			bestDuration = duration
			best = threshold
		}
	}

	return results, best, nil
}

// profilePath resolves the profile location from the configuration.
func profilePath(cfg config.AppConfig) string {
	if cfg.CalibrationProfile != "" {
		return cfg.CalibrationProfile
	}
	return GetDefaultProfilePath()
}

// RunCalibration benchmarks the full threshold candidate set, prints a
// summary table, and persists the winning values to the profile cache.
//
// Parameters:
//   - ctx: Context bounding the whole calibration run.
//   - cfg: Current application configuration.
//   - factory: Strategy factory providing the parallel combiner.
//   - out: Writer for the results table.
//
// Returns:
//   - config.AppConfig: The configuration updated with calibrated values.
//   - error: An error if the sweep could not run.
func RunCalibration(ctx context.Context, cfg config.AppConfig, factory ndarray.Factory, out io.Writer) (config.AppConfig, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = config.EstimateOptimalWorkers()
	}

	fmt.Fprintf(out, "Calibrating on a synthetic %d-element dataset...\n", FullCalibrationElements)

	start := time.Now()
	results, best, err := runThresholdSweep(ctx, factory, GenerateParallelThresholds(), FullCalibrationElements, workers)
	if err != nil {
		return cfg, err
	}

	printCalibrationResults(out, results, best)

	cfg.Threshold = best
	cfg.Workers = workers

	profile := NewProfile()
	profile.OptimalParallelThreshold = best
	profile.OptimalWorkers = workers
	profile.CalibrationElements = FullCalibrationElements
	profile.CalibrationTime = time.Since(start).Round(time.Millisecond).String()

	path := profilePath(cfg)
	if err := profile.SaveProfile(path); err != nil {
		return cfg, err
	}
	fmt.Fprintf(out, "\nProfile saved to %s\n", path)

	return cfg, nil
}

// AutoCalibrate runs the reduced candidate sweep at startup and persists the
// outcome so later runs can skip it.
func AutoCalibrate(ctx context.Context, cfg config.AppConfig, factory ndarray.Factory, out io.Writer) (config.AppConfig, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = config.EstimateOptimalWorkers()
	}

	start := time.Now()
	_, best, err := runThresholdSweep(ctx, factory, GenerateQuickParallelThresholds(), QuickCalibrationElements, workers)
	if err != nil {
		return cfg, err
	}

	cfg.Threshold = best
	cfg.Workers = workers
	printCalibrationOutput(cfg, out)

	profile := NewProfile()
	profile.OptimalParallelThreshold = best
	profile.OptimalWorkers = workers
	profile.CalibrationElements = QuickCalibrationElements
	profile.CalibrationTime = time.Since(start).Round(time.Millisecond).String()

	// A failed save is not fatal for auto-calibration
	_ = profile.SaveProfile(profilePath(cfg))

	return cfg, nil
}

// LoadCachedCalibration applies a cached profile to the configuration when
// one exists for this hardware and is fresh enough. Explicit flag values
// always win over cached ones.
//
// Returns:
//   - config.AppConfig: The configuration, possibly updated from the cache.
//   - bool: True when cached values were applied.
func LoadCachedCalibration(cfg config.AppConfig) (config.AppConfig, bool) {
	profile, err := loadProfile(profilePath(cfg))
	if err != nil || !profile.IsValid() || profile.IsStale(ProfileMaxAge) {
		return cfg, false
	}

	applied := false
	if cfg.Threshold <= 0 && profile.OptimalParallelThreshold > 0 {
		cfg.Threshold = profile.OptimalParallelThreshold
		applied = true
	}
	if cfg.Workers <= 0 && profile.OptimalWorkers > 0 {
		cfg.Workers = profile.OptimalWorkers
		applied = true
	}
	return cfg, applied
}
