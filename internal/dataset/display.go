package dataset

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/abertrand/dsadd/internal/ndarray"
)

// Summary holds the basic statistics of an array, computed for display.
type Summary struct {
	// Elements is the total sample count.
	Elements int
	// Min is the smallest sample; 0 for an empty array.
	Min float64
	// Max is the largest sample; 0 for an empty array.
	Max float64
	// Mean is the arithmetic mean; 0 for an empty array.
	Mean float64
}

// Summarize computes min, max and mean over every sample of the view.
//
// Parameters:
//   - v: The array to summarize.
//
// Returns:
//   - Summary: The computed statistics.
func Summarize(v ndarray.View) Summary {
	s := Summary{Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	_ = forEachCoordinate(v, func(pos []int) error {
		value := v.RealAt(pos)
		if value < s.Min {
			s.Min = value
		}
		if value > s.Max {
			s.Max = value
		}
		sum += value
		s.Elements++
		return nil
	})
	if s.Elements == 0 {
		return Summary{}
	}
	s.Mean = sum / float64(s.Elements)
	return s
}

// CLIDisplayer presents arrays on a terminal writer as a one-line summary
// per dataset: label, shape, axes and value statistics.
type CLIDisplayer struct {
	// Out receives the formatted summaries.
	Out io.Writer
}

// NewCLIDisplayer creates a displayer writing to out.
func NewCLIDisplayer(out io.Writer) *CLIDisplayer {
	return &CLIDisplayer{Out: out}
}

// Show prints the array summary under the given label.
func (d *CLIDisplayer) Show(label string, v ndarray.View) error {
	axes := make([]string, v.Rank())
	shape := make(ndarray.Shape, v.Rank())
	for i := 0; i < v.Rank(); i++ {
		axes[i] = string(v.AxisAt(i))
		shape[i] = v.Extent(i)
	}

	s := Summarize(v)
	if s.Elements == 0 {
		_, err := fmt.Fprintf(d.Out, "%-24s %s [%s] (empty)\n", label, shape, strings.Join(axes, " "))
		return err
	}
	_, err := fmt.Fprintf(d.Out, "%-24s %s [%s] min=%g max=%g mean=%g\n",
		label, shape, strings.Join(axes, " "), s.Min, s.Max, s.Mean)
	return err
}
