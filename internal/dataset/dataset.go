//go:generate mockgen -source=dataset.go -destination=mocks/mock_dataset.go -package=mocks

// Package dataset is the collaborator shell around the combine core: it
// loads N-dimensional datasets from files and presents arrays to the
// operator. The core never touches files or terminals; it sees only these
// two interfaces.
package dataset

import (
	"context"
	"os"

	apperrors "github.com/abertrand/dsadd/internal/errors"
	"github.com/abertrand/dsadd/internal/ndarray"
)

// Loader produces an array from a dataset location. A failed load (missing
// file, undecodable format, canceled context) is reported as a LoadError and
// aborts the run; loads are never retried automatically.
type Loader interface {
	// Load reads and decodes the dataset at path.
	//
	// Parameters:
	//   - ctx: Cancellation context; loading aborts when it is done.
	//   - path: The dataset file location; the extension selects the codec.
	//
	// Returns:
	//   - *ndarray.Array[float64]: The decoded dataset.
	//   - error: A LoadError describing why the dataset could not be loaded.
	Load(ctx context.Context, path string) (*ndarray.Array[float64], error)
}

// Displayer presents an array to the operator under a label. Side-effect
// only; the core consumes no return value beyond the error.
type Displayer interface {
	// Show presents the array under the given label.
	Show(label string, v ndarray.View) error
}

// FileLoader loads datasets from the local filesystem, selecting the codec
// by file extension.
type FileLoader struct {
	registry *Registry
}

// NewFileLoader creates a FileLoader backed by the default codec registry.
//
// Returns:
//   - *FileLoader: The loader.
func NewFileLoader() *FileLoader {
	return &FileLoader{registry: NewRegistry()}
}

// NewFileLoaderWithRegistry creates a FileLoader with a custom registry.
// Used by tests and by callers that register additional codecs.
func NewFileLoaderWithRegistry(registry *Registry) *FileLoader {
	return &FileLoader{registry: registry}
}

// Load reads and decodes the dataset at path. Every failure is wrapped in a
// LoadError carrying the path, so callers can distinguish load failures from
// combine failures without string matching.
func (l *FileLoader) Load(ctx context.Context, path string) (*ndarray.Array[float64], error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.LoadError{Path: path, Cause: err}
	}

	codec, err := l.registry.ForPath(path)
	if err != nil {
		return nil, apperrors.LoadError{Path: path, Cause: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.LoadError{Path: path, Cause: err}
	}
	defer f.Close()

	arr, err := codec.Decode(f)
	if err != nil {
		return nil, apperrors.LoadError{Path: path, Cause: err}
	}
	return arr, nil
}

// Save encodes an array to path using the codec selected by the extension.
//
// Parameters:
//   - path: The destination file; the extension selects the codec.
//   - v: The array to encode.
//
// Returns:
//   - error: An error if no codec matches or encoding fails.
func (l *FileLoader) Save(path string, v ndarray.View) error {
	codec, err := l.registry.ForPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return codec.Encode(f, v)
}
