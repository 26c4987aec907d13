//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/abertrand/dsadd/internal/format"
	"github.com/abertrand/dsadd/internal/orchestration"
	"github.com/abertrand/dsadd/internal/progress"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	// Optimized to 200ms to reduce updates and improve performance.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
	// VerboseValueLimit is the element count up to which the full sample
	// grid is printed in verbose mode.
	VerboseValueLimit = 64
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the `DisplayProgress` function from a
// specific spinner implementation, facilitating easier testing and maintenance.
// It defines the essential controls for a spinner: starting, stopping, and
// updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface. This adapter allows the `spinner` library to be used
// within the application's CLI framework.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
//
// Parameters:
//   - suffix: The string to display.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	// Using the same interval as ProgressRefreshRate to synchronize
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress consumes the progress channel and renders a spinner with an
// aggregated progress bar and ETA. It runs until the channel is closed and
// signals completion through wg. When numCombiners is zero or negative the
// channel is drained silently.
//
// Parameters:
//   - wg: Signals when the display loop has finished.
//   - progressChan: Channel receiving progress updates from the combiners.
//   - numCombiners: The number of concurrent combiners being tracked.
//   - out: The writer for progress output.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numCombiners int, out io.Writer) {
	defer wg.Done()

	aggregator := orchestration.NewProgressAggregator(numCombiners)
	if aggregator == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	sp := newSpinner(spinner.WithWriter(out))
	sp.Start()
	defer sp.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	render := func(avg float64, eta time.Duration) {
		sp.UpdateSuffix(fmt.Sprintf(" %s", format.FormatProgressBarWithETA(avg, eta, ProgressBarWidth)))
	}

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				render(aggregator.CalculateAverage(), 0)
				return
			}
			ap := aggregator.Update(update)
			render(ap.AverageProgress, ap.ETA)
		case <-ticker.C:
			render(aggregator.CalculateAverage(), aggregator.GetETA())
		}
	}
}
