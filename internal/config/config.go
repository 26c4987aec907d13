// Package config defines the application configuration and its resolution
// chain: command-line flags take priority over environment variables, which
// take priority over the calibration profile and adaptive defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/abertrand/dsadd/internal/errors"
	"github.com/abertrand/dsadd/internal/ndarray"
)

// EnvPrefix is prepended to every environment variable the application reads.
const EnvPrefix = "DSADD_"

// DefaultTimeout bounds a combine run when no explicit timeout is given.
const DefaultTimeout = 5 * time.Minute

// AppConfig holds the complete runtime configuration of the application.
// It is produced by ParseConfig and then refined by the calibration profile
// or the adaptive threshold estimation.
type AppConfig struct {
	// InputA is the path of the first operand dataset.
	InputA string
	// InputB is the path of the second operand dataset.
	InputB string
	// Strategy selects the combine strategy, or "all" for a comparison run.
	Strategy string
	// Timeout is the maximum duration of a combine run.
	Timeout time.Duration
	// Threshold is the output element count above which the parallel
	// strategy fans out. Zero selects the adaptive estimate.
	Threshold int
	// Workers is the goroutine count of the parallel strategy. Zero selects
	// the number of logical processors.
	Workers int
	// MemoryLimit is the raw memory budget string, e.g. "512MiB".
	MemoryLimit string
	// MemoryLimitBytes is MemoryLimit parsed to bytes. Zero means unlimited.
	MemoryLimitBytes uint64
	// OutputFile is the path the result is saved to; empty disables saving.
	OutputFile string
	// CalibrationProfile is the path of the cached calibration profile.
	CalibrationProfile string
	// MetricsAddr is the listen address of the metrics server; empty
	// disables it.
	MetricsAddr string
	// Completion names the shell to generate a completion script for.
	Completion string
	// Verbose enables detailed result output.
	Verbose bool
	// Details enables per-strategy performance details.
	Details bool
	// Quiet reduces output to the bare result summary, for scripting.
	Quiet bool
	// Calibrate runs the full calibration mode instead of a combine.
	Calibrate bool
	// AutoCalibrate runs a quick calibration before the combine when no
	// cached profile exists.
	AutoCalibrate bool
	// Interactive starts the interactive session.
	Interactive bool
	// NoColor disables ANSI colors in all output.
	NoColor bool
	// ShowVersion prints version information and exits.
	ShowVersion bool
}

// ToCombineOptions converts the configuration into the tuning options the
// combine strategies consume.
func (c AppConfig) ToCombineOptions() ndarray.Options {
	return ndarray.Options{
		ParallelThreshold: c.Threshold,
		Workers:           c.Workers,
		MemoryLimitBytes:  c.MemoryLimitBytes,
	}
}

// ParseConfig parses command-line arguments into an AppConfig, applying
// environment variable overrides for flags that were not set explicitly.
//
// The two operand dataset paths are positional arguments. When none are
// given the application starts the interactive session instead.
//
// Parameters:
//   - programName: The binary name, used in usage output.
//   - args: The command-line arguments, excluding the program name.
//   - errWriter: The writer for usage and error output.
//   - availableStrategies: The registered strategy names, for validation
//     and usage output.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when help was requested, or a ConfigError for
//     invalid input.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableStrategies []string) (AppConfig, error) {
	cfg := AppConfig{}
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.StringVar(&cfg.Strategy, "strategy", "all", fmt.Sprintf("combine strategy to run (%s, all)", strings.Join(availableStrategies, ", ")))
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "maximum execution time (e.g. 1m, 30s)")
	fs.IntVar(&cfg.Threshold, "threshold", 0, "element count above which the parallel strategy fans out (0 = adaptive)")
	fs.IntVar(&cfg.Workers, "workers", 0, "worker goroutines for the parallel strategy (0 = logical processors)")
	fs.StringVar(&cfg.MemoryLimit, "memory-limit", "", "result memory budget (e.g. 512MiB, 2GB); empty = unlimited")
	fs.StringVar(&cfg.OutputFile, "output", "", "path to save the result dataset")
	fs.StringVar(&cfg.OutputFile, "o", "", "path to save the result dataset (shorthand)")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", "", "path of the calibration profile cache")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "listen address for the metrics endpoint (empty = disabled)")
	fs.StringVar(&cfg.Completion, "completion", "", "generate a shell completion script (bash, zsh, fish, powershell)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "display detailed result output")
	fs.BoolVar(&cfg.Verbose, "v", false, "display detailed result output (shorthand)")
	fs.BoolVar(&cfg.Details, "details", false, "show per-strategy performance details")
	fs.BoolVar(&cfg.Details, "d", false, "show per-strategy performance details (shorthand)")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "minimal output for scripting")
	fs.BoolVar(&cfg.Quiet, "q", false, "minimal output for scripting (shorthand)")
	fs.BoolVar(&cfg.Calibrate, "calibrate", false, "run calibration and exit")
	fs.BoolVar(&cfg.AutoCalibrate, "auto-calibrate", false, "calibrate automatically before combining")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "start the interactive session")
	fs.BoolVar(&cfg.Interactive, "i", false, "start the interactive session (shorthand)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colored output")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version information and exit")
	fs.BoolVar(&cfg.ShowVersion, "V", false, "print version information and exit (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags] <dataset-a> <dataset-b>\n\n", programName)
		fmt.Fprintf(errWriter, "Computes the elementwise sum of two datasets over their common region.\n")
		fmt.Fprintf(errWriter, "When no datasets are given, an interactive session is started.\n\n")
		fmt.Fprintf(errWriter, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	applyEnvOverrides(&cfg, fs)

	switch fs.NArg() {
	case 0:
		// No operands: fall through to the interactive session unless a
		// non-combining mode was requested.
		if !cfg.Calibrate && cfg.Completion == "" && !cfg.ShowVersion {
			cfg.Interactive = true
		}
	case 2:
		cfg.InputA = fs.Arg(0)
		cfg.InputB = fs.Arg(1)
	default:
		return cfg, apperrors.NewConfigError("expected exactly two dataset paths, got %d", fs.NArg())
	}

	if err := validateConfig(&cfg, availableStrategies); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// validateConfig checks the parsed configuration for consistency and resolves
// derived fields such as the memory budget in bytes.
func validateConfig(cfg *AppConfig, availableStrategies []string) error {
	if cfg.Strategy != "all" {
		found := false
		for _, s := range availableStrategies {
			if s == cfg.Strategy {
				found = true
				break
			}
		}
		if !found {
			return apperrors.NewConfigError("unknown strategy %q (available: %s, all)", cfg.Strategy, strings.Join(availableStrategies, ", "))
		}
	}
	if cfg.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.Threshold < 0 {
		return apperrors.NewConfigError("threshold must not be negative, got %d", cfg.Threshold)
	}
	if cfg.Workers < 0 {
		return apperrors.NewConfigError("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.MemoryLimit != "" {
		limit, err := ndarray.ParseMemoryLimit(cfg.MemoryLimit)
		if err != nil {
			return apperrors.NewConfigError("invalid memory limit %q: %v", cfg.MemoryLimit, err)
		}
		cfg.MemoryLimitBytes = limit
	}
	return nil
}
