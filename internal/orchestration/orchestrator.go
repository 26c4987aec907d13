package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/abertrand/dsadd/internal/errors"
	"github.com/abertrand/dsadd/internal/ndarray"
	"github.com/abertrand/dsadd/internal/progress"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking combine
// goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// ExecuteCombines orchestrates the concurrent execution of one or more
// combine strategies over the same pair of operands.
//
// It manages the lifecycle of the combine goroutines, collects their results,
// and coordinates the display of progress updates. This function is the core
// of the application's concurrency model: every strategy sees the same
// operands and the same options and must therefore produce the same output,
// which AnalyzeComparisonResults later verifies.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - combiners: A slice of strategies to execute.
//   - a: The first operand; its axis labels win in the output.
//   - b: The second operand.
//   - opts: Tuning parameters applied identically to every strategy.
//   - progressReporter: The progress reporter for displaying updates (use
//     NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []CombineResult: A slice containing the results of each strategy.
func ExecuteCombines(ctx context.Context, combiners []ndarray.Combiner, a, b ndarray.View, opts ndarray.Options, progressReporter ProgressReporter, out io.Writer) []CombineResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]CombineResult, len(combiners))
	progressChan := make(chan progress.Update, len(combiners)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(combiners), out)

	for i, comb := range combiners {
		idx, combiner := i, comb
		g.Go(func() error {
			startTime := time.Now()
			res, err := combiner.Combine(ctx, a, b, progress.ChannelCallback(progressChan, idx), opts)
			results[idx] = CombineResult{
				Name: combiner.Name(), Result: res, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults processes the results from multiple strategies and
// generates a summary report.
//
// It sorts the results by execution time, validates that every successful
// strategy produced a bit-identical array, and displays a comparative table.
// It handles the logic for determining global success or failure based on the
// individual outcomes.
//
// Parameters:
//   - results: The slice of combine results to analyze.
//   - opts: Presentation options for the winning result.
//   - presenter: The result presenter for display formatting.
//   - errorHandler: Maps the first error to an exit code when nothing
//     succeeded.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - *ndarray.Array[float64]: The consensus output array, nil on failure.
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []CombineResult, opts PresentationOptions, presenter ResultPresenter, errorHandler ErrorHandler, out io.Writer) (*ndarray.Array[float64], int) {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValidResult *CombineResult
	var firstError error
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
			if firstValidResult == nil {
				firstValidResult = &results[i]
			}
		}
	}

	// Present the comparison table
	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could complete the combine.\n")
		return nil, errorHandler.HandleError(firstError, 0, out)
	}

	mismatch := false
	for _, res := range results {
		if res.Err == nil && !ndarray.EqualValues(res.Result, firstValidResult.Result) {
			mismatch = true
			break
		}
	}
	if mismatch {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the outputs of the strategies.\n")
		return nil, apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*firstValidResult, opts, out)
	return firstValidResult.Result, apperrors.ExitSuccess
}
