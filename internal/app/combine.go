package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abertrand/dsadd/internal/cli"
	"github.com/abertrand/dsadd/internal/dataset"
	apperrors "github.com/abertrand/dsadd/internal/errors"
	"github.com/abertrand/dsadd/internal/logging"
	"github.com/abertrand/dsadd/internal/metrics"
	"github.com/abertrand/dsadd/internal/ndarray"
	"github.com/abertrand/dsadd/internal/orchestration"
	"github.com/abertrand/dsadd/internal/server"
	"github.com/abertrand/dsadd/internal/ui"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const tracerName = "github.com/abertrand/dsadd"

// runCombine orchestrates the load-combine-present pipeline of the CLI.
func (a *Application) runCombine(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	// Optional observability server for long-running invocations
	var obs *server.Server
	if a.Config.MetricsAddr != "" {
		obs = server.New(a.Config.MetricsAddr, logging.NewDefaultLogger())
		go func() { _ = obs.Start(ctx) }()
	}

	collector := metrics.NewMemoryCollector()
	memBefore := collector.Snapshot()

	operandA, operandB, code := a.loadOperands(ctx, out)
	if code != apperrors.ExitSuccess {
		return code
	}

	// Memory budget validation against the overlap region
	if code := a.validateMemoryBudget(operandA, operandB, out); code != apperrors.ExitSuccess {
		return code
	}

	// Get combiners to run
	combinersToRun := orchestration.GetCombinersToRun(a.Config.Strategy, a.Factory)

	// Skip verbose output in quiet mode
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config.InputA, a.Config.InputB, a.Config.Timeout,
			a.Config.Threshold, a.Config.Workers, out)
		cli.PrintExecutionMode(combinersToRun, out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	// Execute combines
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "dsadd.combine")
	span.SetAttributes(
		attribute.String("strategy", a.Config.Strategy),
		attribute.Int("combiners", len(combinersToRun)),
	)
	start := time.Now()
	results := orchestration.ExecuteCombines(ctx, combinersToRun, operandA, operandB,
		a.Config.ToCombineOptions(), progressReporter, progressOut)
	combineDuration := time.Since(start)
	span.End()

	// Build output config for the CLI options
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Details:    a.Config.Details,
	}

	code = a.analyzeResultsWithOutput(results, outputCfg, out)

	if obs != nil {
		if consensus := findBestResult(results); consensus != nil && consensus.Result != nil {
			obs.Metrics().ObserveCombine(consensus.Name, combineDuration.Seconds(), consensus.Result.NumElements())
		}
	}

	if a.Config.Details && !a.Config.Quiet {
		memAfter := collector.Snapshot()
		delta := metrics.Delta(memBefore, memAfter)
		cli.DisplayMemoryStats(delta.HeapAlloc, delta.TotalAlloc, delta.NumGC, delta.PauseTotalNs, out)
		fmt.Fprintf(out, "  System:          %s\n", metrics.Sample())
	}

	return code
}

// loadOperands loads both input datasets, tracing each load.
func (a *Application) loadOperands(ctx context.Context, out io.Writer) (*ndarray.Array[float64], *ndarray.Array[float64], int) {
	tracer := otel.Tracer(tracerName)
	loader := dataset.NewFileLoader()

	load := func(path string) (*ndarray.Array[float64], error) {
		ctx, span := tracer.Start(ctx, "dsadd.load")
		defer span.End()
		span.SetAttributes(attribute.String("path", path))
		return loader.Load(ctx, path)
	}

	operandA, err := load(a.Config.InputA)
	if err != nil {
		return nil, nil, cli.CLIResultPresenter{}.HandleError(err, 0, out)
	}
	operandB, err := load(a.Config.InputB)
	if err != nil {
		return nil, nil, cli.CLIResultPresenter{}.HandleError(err, 0, out)
	}

	if a.Config.Verbose {
		displayer := dataset.NewCLIDisplayer(out)
		_ = displayer.Show("Operand A", operandA)
		_ = displayer.Show("Operand B", operandB)
	}
	return operandA, operandB, apperrors.ExitSuccess
}

// validateMemoryBudget checks the estimated result size against the
// configured limit before any allocation happens.
func (a *Application) validateMemoryBudget(operandA, operandB ndarray.View, out io.Writer) int {
	if a.Config.MemoryLimitBytes == 0 {
		return apperrors.ExitSuccess
	}

	shape, _ := ndarray.Overlap(operandA, operandB)
	if err := ndarray.CheckMemoryBudget(shape, a.Config.MemoryLimitBytes); err != nil {
		fmt.Fprintf(out, "Estimated memory %s exceeds limit %s.\n",
			ndarray.FormatMemoryEstimate(ndarray.EstimateMemoryUsage(shape)),
			a.Config.MemoryLimit)
		return apperrors.ExitErrorConfig
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "Memory estimate: %s (limit: %s)\n",
			ndarray.FormatMemoryEstimate(ndarray.EstimateMemoryUsage(shape)), a.Config.MemoryLimit)
	}
	return apperrors.ExitSuccess
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.CombineResult, outputCfg cli.OutputConfig, out io.Writer) int {
	bestResult := findBestResult(results)

	// Handle quiet mode for single result
	if outputCfg.Quiet && bestResult != nil {
		cli.DisplayQuietResult(out, bestResult.Result)

		// Save to file if requested
		if err := a.saveResultIfNeeded(bestResult.Result, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}

		return apperrors.ExitSuccess
	}

	// Use standard analysis for non-quiet mode
	presOpts := orchestration.PresentationOptions{
		Verbose: a.Config.Verbose,
		Details: a.Config.Details,
	}
	consensus, exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)

	// Handle file output for non-quiet mode
	if consensus != nil && exitCode == apperrors.ExitSuccess {
		// Save to file if requested
		if err := a.saveResultIfNeeded(consensus, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
		}
	}

	return exitCode
}

func findBestResult(results []orchestration.CombineResult) *orchestration.CombineResult {
	var bestResult *orchestration.CombineResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func (a *Application) saveResultIfNeeded(result *ndarray.Array[float64], cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(result, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving result: %v\n", err)
		return err
	}
	return nil
}
