package ndarray

import (
	"context"
	"fmt"
	"sort"

	"github.com/abertrand/dsadd/internal/progress"
)

// Options carries the tuning parameters of a combine run.
type Options struct {
	// ParallelThreshold is the output element count above which the parallel
	// strategy fans out across workers. Zero selects
	// DefaultParallelThreshold.
	ParallelThreshold int
	// Workers is the number of goroutines the parallel strategy uses.
	// Zero selects runtime.NumCPU().
	Workers int
	// MemoryLimitBytes caps the output allocation. Zero means unlimited.
	// When the estimated output size exceeds the limit the combine fails
	// with an AllocationError before allocating.
	MemoryLimitBytes uint64
}

// Combiner is one execution strategy for the elementwise sum of two views
// over their common overlap region. All strategies compute the identical
// result; they differ only in how the output coordinate space is traversed.
type Combiner interface {
	// Name returns the human-readable strategy identifier.
	Name() string

	// Combine computes result[pos] = a[pos] + b[pos] for every coordinate
	// tuple pos in the overlap region of a and b, and returns a newly
	// allocated float64 array shaped to that region. Inputs are never
	// mutated and the caller solely owns the returned array.
	//
	// Parameters:
	//   - ctx: Cancellation context; a canceled context aborts the sweep.
	//   - a: The first operand; its axis labels win in the output.
	//   - b: The second operand.
	//   - onProgress: Receives the completed fraction; must not be nil
	//     (use progress.Noop).
	//   - opts: Tuning parameters.
	//
	// Returns:
	//   - *Array[float64]: The elementwise sum over the overlap region.
	//   - error: An AllocationError if the output exceeds the memory limit,
	//     or the context error if the run was canceled.
	Combine(ctx context.Context, a, b View, onProgress progress.Callback, opts Options) (*Array[float64], error)
}

// Factory provides named access to the registered combine strategies.
type Factory interface {
	// Get returns the combiner registered under name.
	Get(name string) (Combiner, error)
	// GetAll returns all registered combiners keyed by name.
	GetAll() map[string]Combiner
	// List returns the registered names in sorted order.
	List() []string
}

// defaultFactory is the standard Factory holding the built-in strategies.
type defaultFactory struct {
	combiners map[string]Combiner
}

// NewDefaultFactory creates a Factory with the built-in sequential and
// parallel strategies registered.
//
// Returns:
//   - Factory: The populated factory.
func NewDefaultFactory() Factory {
	return &defaultFactory{
		combiners: map[string]Combiner{
			"sequential": &Sequential{},
			"parallel":   &Parallel{},
		},
	}
}

// Get returns the combiner registered under name.
//
// Parameters:
//   - name: The strategy name, e.g. "sequential".
//
// Returns:
//   - Combiner: The registered strategy.
//   - error: An error if no strategy is registered under name.
func (f *defaultFactory) Get(name string) (Combiner, error) {
	if c, ok := f.combiners[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown combine strategy %q (available: %v)", name, f.List())
}

// GetAll returns all registered combiners keyed by name.
func (f *defaultFactory) GetAll() map[string]Combiner {
	out := make(map[string]Combiner, len(f.combiners))
	for k, v := range f.combiners {
		out[k] = v
	}
	return out
}

// List returns the registered strategy names in sorted order for
// reproducible iteration.
func (f *defaultFactory) List() []string {
	names := make([]string, 0, len(f.combiners))
	for name := range f.combiners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// allocateResult plans the overlap geometry, enforces the memory budget and
// allocates the output array. Shared by all strategies so they cannot
// diverge on geometry or failure semantics.
func allocateResult(a, b View, opts Options) (*Array[float64], error) {
	shape, axes := Overlap(a, b)
	if opts.MemoryLimitBytes > 0 {
		if err := CheckMemoryBudget(shape, opts.MemoryLimitBytes); err != nil {
			return nil, err
		}
	}
	return New[float64](shape, axes)
}

// unravel converts a row-major flat index into a coordinate tuple, writing
// into pos. strides must match the output shape.
func unravel(idx int, strides []int, pos []int) {
	for d := range strides {
		pos[d] = idx / strides[d]
		idx %= strides[d]
	}
}

// advance increments a coordinate tuple to the next row-major position.
// The caller guarantees the sweep stops before the tuple overflows.
func advance(pos []int, shape Shape) {
	for d := len(pos) - 1; d >= 0; d-- {
		pos[d]++
		if pos[d] < shape[d] {
			return
		}
		pos[d] = 0
	}
}
