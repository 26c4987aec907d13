package ndarray

// ─────────────────────────────────────────────────────────────────────────────
// Performance Tuning Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// DefaultParallelThreshold is the default output element count at which
	// the parallel strategy actually fans out across workers. Below this
	// threshold the overhead of goroutine creation and scheduling exceeds
	// the benefit, so the parallel combiner falls back to a single sweep.
	DefaultParallelThreshold = 65536

	// MinChunkElements is the smallest number of output elements a parallel
	// worker chunk may cover. Smaller chunks would make the per-chunk
	// bookkeeping visible against the trivial per-element work.
	MinChunkElements = 4096

	// progressGranularity is the number of progress notifications a combiner
	// aims to emit over a full sweep. Progress is reported at most this many
	// times regardless of array size.
	progressGranularity = 100
)
