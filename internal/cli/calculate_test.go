package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/abertrand/dsadd/internal/ndarray"
	"github.com/abertrand/dsadd/internal/orchestration"
)

// TestPrintExecutionConfig tests the PrintExecutionConfig function.
func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	PrintExecutionConfig("a.nda", "b.nda", time.Minute, 65536, 8, &buf)

	output := buf.String()

	// Check that output contains expected components
	if output == "" {
		t.Error("PrintExecutionConfig should produce output")
	}
	if len(output) < 50 {
		t.Errorf("PrintExecutionConfig output seems too short: %s", output)
	}
}

// TestPrintExecutionMode tests the PrintExecutionMode function.
func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()
	factory := ndarray.NewDefaultFactory()

	t.Run("Single combiner mode", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		combiners := orchestration.GetCombinersToRun("sequential", factory)

		PrintExecutionMode(combiners, &buf)

		output := buf.String()
		if output == "" {
			t.Error("PrintExecutionMode should produce output")
		}
	})

	t.Run("Multiple combiners mode", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		combiners := orchestration.GetCombinersToRun("all", factory)

		PrintExecutionMode(combiners, &buf)

		output := buf.String()
		if output == "" {
			t.Error("PrintExecutionMode should produce output for multiple combiners")
		}
	})
}
