package ndarray

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/abertrand/dsadd/internal/progress"
)

// Parallel is the data-parallel combine strategy. The output flat-index
// range is partitioned into contiguous chunks handed to an errgroup worker
// pool. Every output element is computed independently from the two
// read-only inputs and written to its own slot, so the only synchronization
// is the final join. The result is identical to the sequential strategy for
// any input pair.
type Parallel struct{}

// Name returns the strategy identifier.
func (p *Parallel) Name() string { return "Parallel Sweep" }

// Combine partitions the output across workers and waits for the join.
// Workloads below opts.ParallelThreshold elements run as a single
// sequential sweep, since fan-out overhead dominates for small arrays.
// The progress callback may be invoked from multiple goroutines.
func (p *Parallel) Combine(ctx context.Context, a, b View, onProgress progress.Callback, opts Options) (*Array[float64], error) {
	result, err := allocateResult(a, b, opts)
	if err != nil {
		return nil, err
	}

	total := result.NumElements()
	threshold := opts.ParallelThreshold
	if threshold == 0 {
		threshold = DefaultParallelThreshold
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if total < threshold || workers == 1 {
		if err := sweep(ctx, a, b, result, 0, total, onProgress, total); err != nil {
			return nil, err
		}
		onProgress(1.0)
		return result, nil
	}

	chunk := (total + workers - 1) / workers
	if chunk < MinChunkElements {
		chunk = MinChunkElements
	}

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for from := 0; from < total; from += chunk {
		to := from + chunk
		if to > total {
			to = total
		}
		from, to := from, to
		g.Go(func() error {
			if err := sweep(gctx, a, b, result, from, to, progress.Noop, total); err != nil {
				return err
			}
			completed := done.Add(int64(to - from))
			onProgress(float64(completed) / float64(total))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	onProgress(1.0)
	return result, nil
}
