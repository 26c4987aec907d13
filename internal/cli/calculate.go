package cli

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/abertrand/dsadd/internal/ndarray"
	"github.com/abertrand/dsadd/internal/ui"
)

// PrintExecutionConfig displays the execution configuration before a combine
// run: operand paths, timeout, hardware parallelism, and tuning parameters.
func PrintExecutionConfig(inputA, inputB string, timeout time.Duration, threshold, workers int, out io.Writer) {
	fmt.Fprintf(out, "%sExecution configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "  Operand A:  %s\n", inputA)
	fmt.Fprintf(out, "  Operand B:  %s\n", inputB)
	fmt.Fprintf(out, "  Timeout:    %v\n", timeout)
	fmt.Fprintf(out, "  CPU cores:  %d\n", runtime.NumCPU())
	fmt.Fprintf(out, "  Go runtime: %s\n", runtime.Version())
	if threshold > 0 {
		fmt.Fprintf(out, "  Parallel threshold: %d elements\n", threshold)
	}
	if workers > 0 {
		fmt.Fprintf(out, "  Workers:    %d\n", workers)
	}
}

// PrintExecutionMode announces which combine strategies are about to run.
func PrintExecutionMode(combiners []ndarray.Combiner, out io.Writer) {
	if len(combiners) == 1 {
		fmt.Fprintf(out, "\nRunning strategy: %s%s%s\n", ui.ColorBlue(), combiners[0].Name(), ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "\nComparing %d strategies:\n", len(combiners))
	for _, c := range combiners {
		fmt.Fprintf(out, "  - %s%s%s\n", ui.ColorBlue(), c.Name(), ui.ColorReset())
	}
}
