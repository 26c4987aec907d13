// Package app wires the configuration, strategy factory, and CLI surfaces
// into the dsadd application entry point.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/abertrand/dsadd/internal/calibration"
	"github.com/abertrand/dsadd/internal/cli"
	"github.com/abertrand/dsadd/internal/config"
	apperrors "github.com/abertrand/dsadd/internal/errors"
	"github.com/abertrand/dsadd/internal/ndarray"
	"github.com/abertrand/dsadd/internal/ui"
	"github.com/rs/zerolog"
)

// Application represents the dsadd application instance.
type Application struct {
	Config    config.AppConfig
	Factory   ndarray.Factory
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom strategy Factory for the application.
func WithFactory(f ndarray.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = ndarray.NewDefaultFactory()
	}

	factory := app.Factory
	availableStrategies := factory.List()

	programName := "dsadd"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableStrategies)
	if err != nil {
		return nil, err
	}

	if cfgWithProfile, loaded := calibration.LoadCachedCalibration(cfg); loaded {
		cfg = cfgWithProfile
	} else {
		cfg = config.ApplyAdaptiveThresholds(cfg)
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	if a.Config.Quiet {
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.NoColor)

	if a.Config.Calibrate {
		return a.runCalibration(ctx, out)
	}

	a.Config = a.runAutoCalibrationIfEnabled(ctx, out)

	if a.Config.Interactive {
		return a.runInteractive(out)
	}

	return a.runCombine(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	availableStrategies := a.Factory.List()
	if err := cli.GenerateCompletion(out, a.Config.Completion, availableStrategies); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runCalibration runs the full calibration mode.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	updated, err := calibration.RunCalibration(ctx, a.Config, a.Factory, out)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Calibration failed: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}
	a.Config = updated
	return apperrors.ExitSuccess
}

// runAutoCalibrationIfEnabled runs auto-calibration if enabled.
func (a *Application) runAutoCalibrationIfEnabled(ctx context.Context, out io.Writer) config.AppConfig {
	if a.Config.AutoCalibrate {
		if updated, err := calibration.AutoCalibrate(ctx, a.Config, a.Factory, out); err == nil {
			return updated
		}
	}
	return a.Config
}

// runInteractive starts the interactive session.
func (a *Application) runInteractive(out io.Writer) int {
	session := cli.NewSession(a.Factory.GetAll(), cli.SessionConfig{
		DefaultStrategy:  a.Config.Strategy,
		Timeout:          a.Config.Timeout,
		Threshold:        a.Config.Threshold,
		Workers:          a.Config.Workers,
		MemoryLimitBytes: a.Config.MemoryLimitBytes,
		Verbose:          a.Config.Verbose,
	})
	session.SetOutput(out)
	session.Start()
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
