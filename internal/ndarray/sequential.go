package ndarray

import (
	"context"

	"github.com/abertrand/dsadd/internal/progress"
)

// Sequential is the single-threaded combine strategy: one row-major sweep
// over the output coordinate space. It is the right choice for small
// workloads where goroutine scheduling overhead would dominate, and it
// serves as the oracle the parallel strategy is validated against.
type Sequential struct{}

// Name returns the strategy identifier.
func (s *Sequential) Name() string { return "Sequential Sweep" }

// Combine performs a single row-major sweep over the overlap region.
// Cancellation is checked between progress steps so a canceled context
// aborts within one step granule.
func (s *Sequential) Combine(ctx context.Context, a, b View, onProgress progress.Callback, opts Options) (*Array[float64], error) {
	result, err := allocateResult(a, b, opts)
	if err != nil {
		return nil, err
	}
	if err := sweep(ctx, a, b, result, 0, result.NumElements(), onProgress, result.NumElements()); err != nil {
		return nil, err
	}
	onProgress(1.0)
	return result, nil
}

// sweep fills result samples [from, to) with a[pos] + b[pos], advancing the
// coordinate odometer row-major from the unraveled start position. total is
// the full output element count used to scale progress fractions; the
// parallel strategy passes the whole array so per-chunk sweeps report
// comparable fractions.
func sweep(ctx context.Context, a, b View, result *Array[float64], from, to int, onProgress progress.Callback, total int) error {
	if from >= to {
		return nil
	}

	pos := make([]int, result.Rank())
	unravel(from, result.stride, pos)

	step := total / progressGranularity
	if step == 0 {
		step = total
	}

	data := result.data
	for i := from; i < to; i++ {
		data[i] = a.RealAt(pos) + b.RealAt(pos)

		if (i+1)%step == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			onProgress(float64(i+1) / float64(total))
		}
		if i+1 < to {
			advance(pos, result.shape)
		}
	}
	return nil
}
