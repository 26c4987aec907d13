package dataset

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/abertrand/dsadd/internal/errors"
	"github.com/abertrand/dsadd/internal/ndarray"
)

// writeDataset saves an array to a temp file and returns its path.
func writeDataset(t *testing.T, name string, arr *ndarray.Array[float64]) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	loader := NewFileLoader()
	if err := loader.Save(path, arr); err != nil {
		t.Fatalf("Save(%s) failed: %v", name, err)
	}
	return path
}

func TestFileLoader_Load(t *testing.T) {
	t.Parallel()
	arr, err := ndarray.FromSlice(
		ndarray.Shape{2, 2},
		[]ndarray.Axis{ndarray.AxisY, ndarray.AxisX},
		[]float64{1, 2, 3, 4},
	)
	if err != nil {
		t.Fatal(err)
	}
	path := writeDataset(t, "grid.nda", arr)

	loaded, err := NewFileLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ndarray.EqualValues(arr, loaded) {
		t.Error("loaded array differs from saved array")
	}
}

func TestFileLoader_LoadFailures(t *testing.T) {
	t.Parallel()
	loader := NewFileLoader()

	tests := []struct {
		name  string
		ctx   context.Context
		path  string
		cause error
	}{
		{
			name: "missing file",
			ctx:  context.Background(),
			path: filepath.Join(t.TempDir(), "absent.nda"),
		},
		{
			name: "unknown extension",
			ctx:  context.Background(),
			path: "dataset.bin",
		},
		{
			name:  "canceled context",
			ctx:   canceledContext(),
			path:  "dataset.nda",
			cause: context.Canceled,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := loader.Load(tt.ctx, tt.path)
			var loadErr apperrors.LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("Load error = %v, want LoadError", err)
			}
			if loadErr.Path != tt.path {
				t.Errorf("LoadError.Path = %q, want %q", loadErr.Path, tt.path)
			}
			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Errorf("errors.Is(err, %v) = false", tt.cause)
			}
		})
	}
}

func TestFileLoader_CorruptFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "corrupt.nda")
	if err := os.WriteFile(path, []byte("not a dataset"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileLoader().Load(context.Background(), path)
	var loadErr apperrors.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Load error = %v, want LoadError", err)
	}
}

func canceledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("basic stats", func(t *testing.T) {
		t.Parallel()
		arr, _ := ndarray.FromSlice(ndarray.Shape{2, 2}, nil, []float64{-1, 0, 3, 6})
		s := Summarize(arr)
		if s.Elements != 4 {
			t.Errorf("Elements = %d, want 4", s.Elements)
		}
		if s.Min != -1 || s.Max != 6 {
			t.Errorf("Min/Max = %g/%g, want -1/6", s.Min, s.Max)
		}
		if s.Mean != 2 {
			t.Errorf("Mean = %g, want 2", s.Mean)
		}
	})

	t.Run("empty array", func(t *testing.T) {
		t.Parallel()
		arr, _ := ndarray.New[float64](ndarray.Shape{0, 5}, nil)
		s := Summarize(arr)
		if s.Elements != 0 {
			t.Errorf("Elements = %d, want 0", s.Elements)
		}
		if s.Min != 0 || s.Max != 0 || s.Mean != 0 {
			t.Errorf("empty summary = %+v, want zeroes", s)
		}
	})
}

func TestCLIDisplayer_Show(t *testing.T) {
	t.Parallel()
	arr, err := ndarray.FromSlice(
		ndarray.Shape{2, 3},
		[]ndarray.Axis{ndarray.AxisY, ndarray.AxisX},
		[]float64{1, 2, 3, 4, 5, 6},
	)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := NewCLIDisplayer(&buf).Show("Result", arr); err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Result", "2x3", "Y X", "min=1", "max=6", "mean=3.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestCLIDisplayer_ShowEmpty(t *testing.T) {
	t.Parallel()
	arr, _ := ndarray.New[float64](ndarray.Shape{0, 4}, nil)

	var buf bytes.Buffer
	if err := NewCLIDisplayer(&buf).Show("Empty", arr); err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if !strings.Contains(buf.String(), "(empty)") {
		t.Errorf("output %q missing empty marker", buf.String())
	}
}
