// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abertrand/dsadd/internal/dataset"
	"github.com/abertrand/dsadd/internal/format"
	"github.com/abertrand/dsadd/internal/ndarray"
	"github.com/abertrand/dsadd/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	// The extension selects the codec.
	OutputFile string
	// Quiet mode suppresses verbose output.
	Quiet bool
	// Verbose prints the sample values for small results.
	Verbose bool
	// Details shows size and memory information.
	Details bool
}

// WriteResultToFile saves a result array to a file using the codec selected
// by the file extension. Parent directories are created as needed.
//
// Parameters:
//   - result: The combined array to save.
//   - config: Output configuration carrying the destination path.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(result *ndarray.Array[float64], config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	return dataset.NewFileLoader().Save(config.OutputFile, result)
}

// FormatQuietResult formats a result for quiet mode output.
// Returns a single-line result suitable for scripting.
//
// Parameters:
//   - result: The combined array.
//
// Returns:
//   - string: The formatted result string.
func FormatQuietResult(result *ndarray.Array[float64]) string {
	s := dataset.Summarize(result)
	if s.Elements == 0 {
		return fmt.Sprintf("shape=%s elements=0", result.Shape())
	}
	return fmt.Sprintf("shape=%s elements=%d min=%g max=%g mean=%g",
		result.Shape(), s.Elements, s.Min, s.Max, s.Mean)
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
//
// Parameters:
//   - out: The output writer.
//   - result: The combined array.
func DisplayQuietResult(out io.Writer, result *ndarray.Array[float64]) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// DisplayResult presents the combined array: shape, axes, timing, summary
// statistics and, in verbose mode, the sample values of small results.
//
// Parameters:
//   - result: The combined array.
//   - duration: The combine duration.
//   - verbose: Print the sample values of small results.
//   - details: Show size and memory information.
//   - out: The output writer.
func DisplayResult(result *ndarray.Array[float64], duration time.Duration, verbose, details bool, out io.Writer) {
	axes := make([]string, result.Rank())
	for i := range axes {
		axes[i] = string(result.AxisAt(i))
	}

	fmt.Fprintf(out, "\n%sResult:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "  Shape: %s%s%s [%s]\n", ui.ColorCyan(), result.Shape(), ui.ColorReset(), strings.Join(axes, " "))
	fmt.Fprintf(out, "  Time:  %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(duration), ui.ColorReset())

	if details {
		est := ndarray.EstimateMemoryUsage(result.Shape())
		fmt.Fprintf(out, "  Size:  %s%s%s samples, %s%s%s\n",
			ui.ColorCyan(), format.FormatNumberString(fmt.Sprintf("%d", result.NumElements())), ui.ColorReset(),
			ui.ColorCyan(), format.FormatBytes(est.TotalBytes), ui.ColorReset())
	}

	s := dataset.Summarize(result)
	if s.Elements == 0 {
		fmt.Fprintf(out, "  Values: %s(empty)%s\n", ui.ColorYellow(), ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "  Stats: min=%s%g%s max=%s%g%s mean=%s%g%s\n",
		ui.ColorGreen(), s.Min, ui.ColorReset(),
		ui.ColorGreen(), s.Max, ui.ColorReset(),
		ui.ColorGreen(), s.Mean, ui.ColorReset())

	if verbose {
		displayValues(result, out)
	}
}

// displayValues prints the sample grid of a small result. Larger arrays are
// summarized instead of flooding the terminal.
func displayValues(result *ndarray.Array[float64], out io.Writer) {
	if result.NumElements() > VerboseValueLimit {
		fmt.Fprintf(out, "  Values: %s(%d samples, too large to print)%s\n",
			ui.ColorYellow(), result.NumElements(), ui.ColorReset())
		return
	}

	if result.Rank() == 2 {
		fmt.Fprintf(out, "  Values:\n")
		shape := result.Shape()
		for y := 0; y < shape[0]; y++ {
			fmt.Fprintf(out, "    ")
			for x := 0; x < shape[1]; x++ {
				fmt.Fprintf(out, "%8g", result.At([]int{y, x}))
			}
			fmt.Fprintln(out)
		}
		return
	}

	fmt.Fprintf(out, "  Values: %v\n", result.Data())
}

// DisplayResultWithConfig displays a result with the given output configuration.
// This is a unified function that handles all output modes.
//
// Parameters:
//   - out: The output writer.
//   - result: The combined array.
//   - duration: The combine duration.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, result *ndarray.Array[float64], duration time.Duration, config OutputConfig) error {
	// Handle quiet mode
	if config.Quiet {
		DisplayQuietResult(out, result)
	} else {
		DisplayResult(result, duration, config.Verbose, config.Details, out)
	}

	// Save to file if requested
	if config.OutputFile != "" {
		if err := WriteResultToFile(result, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}

	return nil
}
