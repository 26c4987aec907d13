package orchestration

import (
	"time"

	"github.com/abertrand/dsadd/internal/format"
	"github.com/abertrand/dsadd/internal/progress"
)

// ProgressAggregator manages multi-combiner progress aggregation.
// It wraps format.ProgressWithETA and provides a higher-level API
// for consuming progress updates from a channel, so the CLI reporter
// does not duplicate the aggregation setup and update logic.
type ProgressAggregator struct {
	state        *format.ProgressWithETA
	numCombiners int
}

// NewProgressAggregator creates a new aggregator for the given number
// of combiners. Returns nil if numCombiners <= 0.
func NewProgressAggregator(numCombiners int) *ProgressAggregator {
	if numCombiners <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:        format.NewProgressWithETA(numCombiners),
		numCombiners: numCombiners,
	}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// CombinerIndex is the index of the combiner that sent the update.
	CombinerIndex int
	// Value is the raw progress value from the update (0.0 to 1.0).
	Value float64
	// AverageProgress is the aggregated average across all combiners.
	AverageProgress float64
	// ETA is the estimated time remaining based on smoothed progress rate.
	ETA time.Duration
}

// Update processes a single progress update and returns the aggregated result.
func (a *ProgressAggregator) Update(update progress.Update) AggregatedProgress {
	avgProgress, eta := a.state.UpdateWithETA(update.CombinerIndex, update.Value)
	return AggregatedProgress{
		CombinerIndex:   update.CombinerIndex,
		Value:           update.Value,
		AverageProgress: avgProgress,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average progress without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumCombiners returns the number of combiners being tracked.
func (a *ProgressAggregator) NumCombiners() int {
	return a.numCombiners
}

// IsMultiCombiner returns true if tracking more than one combiner.
func (a *ProgressAggregator) IsMultiCombiner() bool {
	return a.numCombiners > 1
}

// DrainChannel reads all updates from the channel without processing.
// Use this when numCombiners <= 0 and updates should be discarded.
func DrainChannel(progressChan <-chan progress.Update) {
	for range progressChan {
	}
}
