package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/abertrand/dsadd/internal/ndarray"
	"github.com/abertrand/dsadd/internal/progress"
)

// CombineResult encapsulates the outcome of a single combine strategy run.
// It serves as the shared domain type between orchestration and presentation
// layers, facilitating comparison and reporting.
type CombineResult struct {
	// Name is the identifier of the strategy used (e.g., "Parallel Sweep").
	Name string
	// Result is the combined output array. It is nil if an error occurred.
	Result *ndarray.Array[float64]
	// Duration is the time taken to complete the combine.
	Duration time.Duration
	// Err contains any error that occurred during the combine.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Verbose bool
	Details bool
}

// ProgressReporter defines the interface for displaying combine progress.
// This interface decouples the orchestration layer from the presentation
// layer; the orchestrator coordinates the strategies while implementations
// handle the visual representation (spinners, progress bars, etc.).
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and will run until the
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates from combiners.
	//   - numCombiners: The number of concurrent combiners being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numCombiners int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
// This allows passing a function directly where a ProgressReporter is expected.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.Update, numCombiners int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numCombiners int, out io.Writer) {
	f(wg, progressChan, numCombiners, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain channel silently
	}
}

// ResultPresenter defines the interface for presenting combine results.
// This interface decouples the orchestration layer from presentation
// concerns, allowing different output formats without modifying the
// orchestration logic.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(results []CombineResult, out io.Writer)

	// PresentResult displays the winning combine result.
	PresentResult(result CombineResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler handles combine errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
