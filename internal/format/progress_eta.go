package format

import (
	"fmt"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Progress Aggregation
// ─────────────────────────────────────────────────────────────────────────────

// ProgressState tracks the per-combiner completion fractions of one or more
// concurrently running combiners and aggregates them into a single average.
// It is not safe for concurrent use; callers serialize access (the progress
// display loop is the only writer).
type ProgressState struct {
	progresses   []float64
	numCombiners int
}

// NewProgressState creates a ProgressState tracking numCombiners combiners.
func NewProgressState(numCombiners int) *ProgressState {
	if numCombiners < 0 {
		numCombiners = 0
	}
	return &ProgressState{
		progresses:   make([]float64, numCombiners),
		numCombiners: numCombiners,
	}
}

// Update records the completion fraction of one combiner. Values are clamped
// to [0.0, 1.0] and out-of-range indices are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index < 0 || index >= ps.numCombiners {
		return
	}
	if value < 0 {
		value = 0
	} else if value > 1 {
		value = 1
	}
	ps.progresses[index] = value
}

// CalculateAverage returns the mean completion fraction across all tracked
// combiners, or 0 when none are tracked.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numCombiners == 0 {
		return 0
	}
	var sum float64
	for _, p := range ps.progresses {
		sum += p
	}
	return sum / float64(ps.numCombiners)
}

// maxETA caps the reported estimate so that a stalled run does not display an
// absurd remaining time.
const maxETA = 24 * time.Hour

// etaSmoothingFactor weights the newest rate sample in the exponential moving
// average used to stabilize the ETA display.
const etaSmoothingFactor = 0.3

// ProgressWithETA extends ProgressState with a smoothed progress-rate
// estimate, from which it derives the time remaining until completion.
type ProgressWithETA struct {
	*ProgressState
	numCombiners int
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	progressRate float64 // average completed fraction per second
}

// NewProgressWithETA creates a ProgressWithETA tracking numCombiners
// combiners.
//
// Parameters:
//   - numCombiners: The number of concurrently running combiners.
//
// Returns:
//   - *ProgressWithETA: The initialized tracker.
func NewProgressWithETA(numCombiners int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numCombiners),
		numCombiners:  numCombiners,
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records one progress update and returns the new aggregate
// average together with the current ETA estimate.
//
// Parameters:
//   - index: The combiner the update belongs to.
//   - value: The combiner's completed fraction in [0.0, 1.0].
//
// Returns:
//   - float64: The mean completion fraction across all combiners.
//   - time.Duration: The estimated time remaining; 0 while no rate estimate
//     exists yet.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()

	now := time.Now()
	elapsed := now.Sub(p.lastUpdate).Seconds()
	if elapsed > 0 && avg > p.lastProgress {
		instantRate := (avg - p.lastProgress) / elapsed
		if p.progressRate == 0 {
			p.progressRate = instantRate
		} else {
			p.progressRate = etaSmoothingFactor*instantRate + (1-etaSmoothingFactor)*p.progressRate
		}
		p.lastUpdate = now
		p.lastProgress = avg
	}

	return avg, p.GetETA()
}

// GetETA returns the current estimate of the time remaining, capped at 24
// hours. It returns 0 when no rate estimate is available yet.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1.0 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > maxETA {
		return maxETA
	}
	return eta
}

// ─────────────────────────────────────────────────────────────────────────────
// Progress Formatting
// ─────────────────────────────────────────────────────────────────────────────

// ProgressBar renders a fixed-width textual progress bar using block
// characters. progress is clamped to [0.0, 1.0].
func ProgressBar(progress float64, length int) string {
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatETA renders a duration as a compact human-readable estimate.
// Durations of zero or less render as "calculating..." since no estimate is
// available yet.
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		s := int(eta.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h := int(eta.Hours())
		m := int(eta.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// FormatProgressBarWithETA renders a progress bar, the percentage and the ETA
// on a single line, suitable for in-place terminal updates.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %.1f%% | ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}
