package dataset

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abertrand/dsadd/internal/ndarray"
)

// Codec encodes and decodes one dataset file format.
type Codec interface {
	// Name returns the codec identifier, e.g. "csv".
	Name() string
	// Extensions returns the file extensions the codec handles, with the
	// leading dot, lowercase.
	Extensions() []string
	// Decode reads one dataset from r.
	Decode(r io.Reader) (*ndarray.Array[float64], error)
	// Encode writes the array to w. Codecs that cannot represent the
	// array's geometry return a descriptive error.
	Encode(w io.Writer, v ndarray.View) error
}

// Registry maps file extensions to codecs.
type Registry struct {
	byExtension map[string]Codec
}

// NewRegistry creates a Registry with the built-in codecs registered:
// raw .nda, .csv, and .png/.jpg/.jpeg images.
//
// Returns:
//   - *Registry: The populated registry.
func NewRegistry() *Registry {
	r := &Registry{byExtension: make(map[string]Codec)}
	r.Register(&RawCodec{})
	r.Register(&CSVCodec{})
	r.Register(&ImageCodec{})
	r.Register(&JPEGCodec{})
	return r
}

// Register adds a codec for all its extensions, replacing any previous
// codec registered for the same extension.
//
// Parameters:
//   - c: The codec to register.
func (r *Registry) Register(c Codec) {
	for _, ext := range c.Extensions() {
		r.byExtension[ext] = c
	}
}

// ForPath returns the codec responsible for the given file path, selected
// by extension.
//
// Parameters:
//   - path: The dataset file path.
//
// Returns:
//   - Codec: The matching codec.
//   - error: An error if no codec handles the extension.
func (r *Registry) ForPath(path string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if c, ok := r.byExtension[ext]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("no codec for extension %q (supported: %s)", ext, strings.Join(r.Extensions(), ", "))
}

// Extensions returns all registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
