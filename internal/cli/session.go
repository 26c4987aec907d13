package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/abertrand/dsadd/internal/dataset"
	"github.com/abertrand/dsadd/internal/format"
	"github.com/abertrand/dsadd/internal/ndarray"
	"github.com/abertrand/dsadd/internal/progress"
	"github.com/abertrand/dsadd/internal/ui"
)

// SessionConfig holds configuration for an interactive session.
type SessionConfig struct {
	// DefaultStrategy is the default combine strategy to use.
	DefaultStrategy string
	// Timeout is the maximum duration for each combine.
	Timeout time.Duration
	// Threshold is the parallelism threshold in elements.
	Threshold int
	// Workers is the number of worker goroutines for the parallel strategy.
	Workers int
	// MemoryLimitBytes caps the result allocation size (0 = unlimited).
	MemoryLimitBytes uint64
	// Verbose displays result element values when set.
	Verbose bool
}

// Session represents an interactive dataset combiner session.
type Session struct {
	config          SessionConfig
	registry        map[string]ndarray.Combiner
	currentStrategy string
	loader          dataset.Loader
	in              io.Reader
	out             io.Writer
}

// NewSession creates a new interactive session.
//
// Parameters:
//   - registry: Map of available combine strategies.
//   - config: Session configuration.
//
// Returns:
//   - *Session: A new session instance.
func NewSession(registry map[string]ndarray.Combiner, config SessionConfig) *Session {
	currentStrategy := config.DefaultStrategy
	if currentStrategy == "" || currentStrategy == "all" {
		// Pick the first available strategy as default
		for name := range registry {
			currentStrategy = name
			break
		}
	}

	return &Session{
		config:          config,
		registry:        registry,
		currentStrategy: currentStrategy,
		loader:          dataset.NewFileLoader(),
		in:              os.Stdin,
		out:             os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (s *Session) SetInput(in io.Reader) {
	s.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (s *Session) SetOutput(out io.Writer) {
	s.out = out
}

// SetLoader replaces the dataset loader (useful for testing).
func (s *Session) SetLoader(loader dataset.Loader) {
	s.loader = loader
}

// Start begins the interactive session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (s *Session) Start() {
	s.printBanner()
	s.printHelp()
	fmt.Fprintln(s.out)

	reader := bufio.NewReader(s.in)

	for {
		fmt.Fprint(s.out, ui.ColorGreen()+"dsadd> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(s.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !s.processCommand(input) {
			return // Exit command received
		}
	}
}

// printBanner displays the session welcome banner.
func (s *Session) printBanner() {
	fmt.Fprintf(s.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(s.out, "%s║%s     %s∑ Dataset Combiner - Interactive Mode%s                  %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(s.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (s *Session) printHelp() {
	fmt.Fprintf(s.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(s.out, "  %sadd <a> <b>%s       - Combine two dataset files with current strategy\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(s.out, "  %sstrategy <name>%s   - Change strategy (%s)\n", ui.ColorYellow(), ui.ColorReset(), s.getStrategyList())
	fmt.Fprintf(s.out, "  %scompare <a> <b>%s   - Compare all strategies on two dataset files\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(s.out, "  %slist%s              - List available strategies\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(s.out, "  %sverbose%s           - Toggle element value display\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(s.out, "  %sstatus%s            - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(s.out, "  %shelp%s              - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(s.out, "  %sexit%s / %squit%s      - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// getStrategyList returns a comma-separated list of available strategies.
func (s *Session) getStrategyList() string {
	names := make([]string, 0, len(s.registry))
	for name := range s.registry {
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

// processCommand parses and executes a user command.
// Returns false if the session should exit.
func (s *Session) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "add", "a", "combine":
		s.cmdAdd(args)
	case "strategy", "st":
		s.cmdStrategy(args)
	case "compare", "cmp":
		s.cmdCompare(args)
	case "list", "ls":
		s.cmdList()
	case "verbose":
		s.cmdVerbose()
	case "status":
		s.cmdStatus()
	case "help", "h", "?":
		s.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(s.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		fmt.Fprintf(s.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(s.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}

	return true
}

// cmdAdd handles the "add" command.
func (s *Session) cmdAdd(args []string) {
	if len(args) != 2 {
		fmt.Fprintf(s.out, "%sUsage: add <dataset-a> <dataset-b>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	s.combine(args[0], args[1])
}

// loadOperands loads both operand datasets from disk.
func (s *Session) loadOperands(pathA, pathB string) (a, b *ndarray.Array[float64], err error) {
	ctx := context.Background()
	a, err = s.loader.Load(ctx, pathA)
	if err != nil {
		return nil, nil, err
	}
	b, err = s.loader.Load(ctx, pathB)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// combine performs a dataset combine with the current strategy.
func (s *Session) combine(pathA, pathB string) {
	combiner, ok := s.registry[s.currentStrategy]
	if !ok {
		fmt.Fprintf(s.out, "%sStrategy not found: %s%s\n", ui.ColorRed(), s.currentStrategy, ui.ColorReset())
		return
	}

	a, b, err := s.loadOperands(pathA, pathB)
	if err != nil {
		fmt.Fprintf(s.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	fmt.Fprintf(s.out, "Combining %s%s%s + %s%s%s with %s%s%s...\n",
		ui.ColorMagenta(), pathA, ui.ColorReset(),
		ui.ColorMagenta(), pathB, ui.ColorReset(),
		ui.ColorCyan(), combiner.Name(), ui.ColorReset())

	opts := s.combineOptions()

	// Use DisplayProgress to show a spinner and progress bar
	progressChan := make(chan progress.Update, 10)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, s.out)

	start := time.Now()
	result, err := combiner.Combine(ctx, a, b, progress.ChannelCallback(progressChan, 0), opts)
	duration := time.Since(start)
	close(progressChan)
	wg.Wait()

	if err != nil {
		fmt.Fprintf(s.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	fmt.Fprintln(s.out)
	DisplayResult(result, duration, s.config.Verbose, false, s.out)
	fmt.Fprintln(s.out)
}

// combineOptions builds combine options from the session configuration.
func (s *Session) combineOptions() ndarray.Options {
	return ndarray.Options{
		ParallelThreshold: s.config.Threshold,
		Workers:           s.config.Workers,
		MemoryLimitBytes:  s.config.MemoryLimitBytes,
	}
}

// cmdStrategy handles the "strategy" command.
func (s *Session) cmdStrategy(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(s.out, "%sUsage: strategy <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(s.out, "Available strategies: %s\n", s.getStrategyList())
		return
	}

	name := strings.ToLower(args[0])
	if _, ok := s.registry[name]; !ok {
		fmt.Fprintf(s.out, "%sUnknown strategy: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(s.out, "Available strategies: %s\n", s.getStrategyList())
		return
	}

	s.currentStrategy = name
	fmt.Fprintf(s.out, "Strategy changed to: %s%s%s\n", ui.ColorGreen(), s.registry[name].Name(), ui.ColorReset())
}

// cmdCompare handles the "compare" command.
func (s *Session) cmdCompare(args []string) {
	if len(args) != 2 {
		fmt.Fprintf(s.out, "%sUsage: compare <dataset-a> <dataset-b>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	a, b, err := s.loadOperands(args[0], args[1])
	if err != nil {
		fmt.Fprintf(s.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	fmt.Fprintf(s.out, "\n%sComparison for %s + %s:%s\n", ui.ColorBold(), args[0], args[1], ui.ColorReset())
	fmt.Fprintf(s.out, "%s─────────────────────────────────────────────%s\n", ui.ColorCyan(), ui.ColorReset())

	opts := s.combineOptions()

	var firstResult *ndarray.Array[float64]

	for name, combiner := range s.registry {
		ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)

		start := time.Now()
		result, err := combiner.Combine(ctx, a, b, progress.Noop, opts)
		duration := time.Since(start)
		cancel()

		if err != nil {
			fmt.Fprintf(s.out, "  %s%-20s%s: %sError - %v%s\n",
				ui.ColorYellow(), name, ui.ColorReset(),
				ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		if firstResult == nil {
			firstResult = result
		}

		// Check consistency
		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if !ndarray.EqualValues(result, firstResult) {
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}

		durationStr := format.FormatExecutionDuration(duration)
		fmt.Fprintf(s.out, "  %s%-20s%s: %s%12s%s %s\n",
			ui.ColorYellow(), name, ui.ColorReset(),
			ui.ColorCyan(), durationStr, ui.ColorReset(),
			status)
	}

	fmt.Fprintf(s.out, "%s─────────────────────────────────────────────%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// cmdList handles the "list" command.
func (s *Session) cmdList() {
	fmt.Fprintf(s.out, "\n%sAvailable strategies:%s\n", ui.ColorBold(), ui.ColorReset())
	for name, combiner := range s.registry {
		marker := "  "
		if name == s.currentStrategy {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(s.out, "%s%s%-12s%s - %s\n", marker, ui.ColorYellow(), name, ui.ColorReset(), combiner.Name())
	}
	fmt.Fprintln(s.out)
}

// cmdVerbose toggles element value display.
func (s *Session) cmdVerbose() {
	s.config.Verbose = !s.config.Verbose
	status := "disabled"
	if s.config.Verbose {
		status = "enabled"
	}
	fmt.Fprintf(s.out, "Element value display: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
}

// cmdStatus displays current session configuration.
func (s *Session) cmdStatus() {
	fmt.Fprintf(s.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(s.out, "  Strategy:       %s%s%s\n", ui.ColorCyan(), s.currentStrategy, ui.ColorReset())
	fmt.Fprintf(s.out, "  Timeout:        %s%s%s\n", ui.ColorCyan(), s.config.Timeout, ui.ColorReset())
	fmt.Fprintf(s.out, "  Threshold:      %s%d%s elements\n", ui.ColorCyan(), s.config.Threshold, ui.ColorReset())
	fmt.Fprintf(s.out, "  Workers:        %s%d%s\n", ui.ColorCyan(), s.config.Workers, ui.ColorReset())
	if s.config.MemoryLimitBytes > 0 {
		fmt.Fprintf(s.out, "  Memory limit:   %s%s%s\n", ui.ColorCyan(), format.FormatBytes(s.config.MemoryLimitBytes), ui.ColorReset())
	} else {
		fmt.Fprintf(s.out, "  Memory limit:   %snone%s\n", ui.ColorCyan(), ui.ColorReset())
	}
	verboseStatus := "no"
	if s.config.Verbose {
		verboseStatus = "yes"
	}
	fmt.Fprintf(s.out, "  Verbose:        %s%s%s\n", ui.ColorCyan(), verboseStatus, ui.ColorReset())
	fmt.Fprintln(s.out)
}
