package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI codes used to colorize error messages.
// A nil ColorProvider disables colorization.
type ColorProvider interface {
	// Red returns the color code for failures.
	Red() string
	// Yellow returns the color code for warnings.
	Yellow() string
	// Reset returns the code that clears all formatting.
	Reset() string
}

// colorsOrNoop guards against a nil provider so callers in non-interactive
// contexts can pass nil.
func colorsOrNoop(c ColorProvider) (red, yellow, reset string) {
	if c == nil {
		return "", "", ""
	}
	return c.Red(), c.Yellow(), c.Reset()
}

// HandleCombineError reports a combine failure to the operator and maps it to
// the application exit code. It distinguishes timeouts, cancellations, load
// failures and memory budget violations from generic errors.
//
// Parameters:
//   - err: The error to report; may be nil, in which case nothing is printed.
//   - duration: How long the operation ran before failing; 0 when unknown.
//   - out: The writer for the error report.
//   - colors: Color codes for the report; nil disables colorization.
//
// Returns:
//   - int: The exit code describing err.
func HandleCombineError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	red, yellow, reset := colorsOrNoop(colors)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sThe operation timed out after %s.%s\n", yellow, duration, reset)
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sThe operation was canceled.%s\n", yellow, reset)
	default:
		var allocErr AllocationError
		var loadErr LoadError
		switch {
		case errors.As(err, &allocErr):
			fmt.Fprintf(out, "%sMemory budget exceeded: %v%s\n", red, err, reset)
		case errors.As(err, &loadErr):
			fmt.Fprintf(out, "%sDataset load failed: %v%s\n", red, err, reset)
		default:
			fmt.Fprintf(out, "%sError: %v%s\n", red, err, reset)
		}
	}
	return ExitCodeFor(err)
}
