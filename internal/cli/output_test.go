package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abertrand/dsadd/internal/ndarray"
)

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()
	// Create temporary directory
	tmpDir := t.TempDir()

	testCases := []struct {
		name        string
		outputFile  string
		expectError bool
		checkFunc   func(t *testing.T, filePath string)
	}{
		{
			name:        "Write result to native file",
			outputFile:  filepath.Join(tmpDir, "result.nda"),
			expectError: false,
			checkFunc: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				if err != nil {
					t.Fatalf("Failed to read output file: %v", err)
				}
				if !bytes.HasPrefix(content, []byte("NDA1")) {
					t.Error("File should start with the native magic header")
				}
			},
		},
		{
			name:        "Write result to CSV file",
			outputFile:  filepath.Join(tmpDir, "result.csv"),
			expectError: false,
			checkFunc: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				if err != nil {
					t.Fatalf("Failed to read output file: %v", err)
				}
				if !strings.Contains(string(content), "55") {
					t.Error("CSV file should contain the element value 55")
				}
			},
		},
		{
			name:        "Empty output file (no write)",
			outputFile:  "",
			expectError: false,
			checkFunc:   nil, // No file should be created
		},
		{
			name:        "Create nested directory",
			outputFile:  filepath.Join(tmpDir, "nested", "dir", "result.nda"),
			expectError: false,
			checkFunc: func(t *testing.T, filePath string) {
				if _, err := os.Stat(filePath); err != nil {
					t.Errorf("File should exist in nested directory: %v", err)
				}
			},
		},
		{
			name:        "Unsupported extension",
			outputFile:  filepath.Join(tmpDir, "result.xyz"),
			expectError: true,
			checkFunc:   nil,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := testResult(t, ndarray.Shape{2, 2}, 55)
			config := OutputConfig{
				OutputFile: tc.outputFile,
			}

			err := WriteResultToFile(result, config)

			if tc.expectError {
				if err == nil {
					t.Error("Expected error but got none")
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				if tc.outputFile != "" && tc.checkFunc != nil {
					tc.checkFunc(t, tc.outputFile)
				}
			}
		})
	}
}

func TestFormatQuietResult(t *testing.T) {
	t.Parallel()

	t.Run("Standard result", func(t *testing.T) {
		t.Parallel()
		result := testResult(t, ndarray.Shape{2, 3}, 55)
		output := FormatQuietResult(result)
		for _, want := range []string{"shape=2x3", "elements=6", "min=55", "max=55", "mean=55"} {
			if !strings.Contains(output, want) {
				t.Errorf("Expected output to contain %q, got '%s'", want, output)
			}
		}
	})

	t.Run("Empty result", func(t *testing.T) {
		t.Parallel()
		result := testResult(t, ndarray.Shape{0, 3}, 0)
		output := FormatQuietResult(result)
		if !strings.Contains(output, "elements=0") {
			t.Errorf("Expected elements=0, got '%s'", output)
		}
	})
}

func TestDisplayQuietResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	result := testResult(t, ndarray.Shape{2, 2}, 55)
	DisplayQuietResult(&buf, result)
	output := buf.String()
	if !strings.Contains(output, "shape=2x2") {
		t.Errorf("Output should contain shape, got '%s'", output)
	}
}

func TestDisplayResultWithConfig(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	t.Run("Quiet mode", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		result := testResult(t, ndarray.Shape{2, 2}, 55)
		config := OutputConfig{
			Quiet: true,
		}
		err := DisplayResultWithConfig(&buf, result, 100*time.Millisecond, config)
		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		output := buf.String()
		if !strings.Contains(output, "min=55") {
			t.Errorf("Quiet output should contain stats, got '%s'", output)
		}
	})

	t.Run("Normal mode with file output", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		result := testResult(t, ndarray.Shape{2, 2}, 55)
		outputFile := filepath.Join(tmpDir, "test_output.nda")
		config := OutputConfig{
			OutputFile: outputFile,
			Quiet:      false,
		}
		err := DisplayResultWithConfig(&buf, result, 100*time.Millisecond, config)
		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		// Check that file was created
		if _, err := os.Stat(outputFile); err != nil {
			t.Errorf("Output file should exist: %v", err)
		}
		// Check that success message was printed
		output := buf.String()
		if !strings.Contains(output, "Result saved to") {
			t.Errorf("Should show file save message, got '%s'", output)
		}
	})

	t.Run("Quiet mode with file output", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		result := testResult(t, ndarray.Shape{2, 2}, 55)
		outputFile := filepath.Join(tmpDir, "quiet_output.nda")
		config := OutputConfig{
			OutputFile: outputFile,
			Quiet:      true,
		}
		err := DisplayResultWithConfig(&buf, result, 100*time.Millisecond, config)
		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		// Check that file was created
		if _, err := os.Stat(outputFile); err != nil {
			t.Errorf("Output file should exist: %v", err)
		}
		// In quiet mode, file save message should not appear
		output := buf.String()
		if strings.Contains(output, "Result saved to") {
			t.Error("Quiet mode should not show file save message")
		}
	})
}
