// Package parallel provides parallel execution utilities for the opbridge engines.
package parallel

import (
	"runtime"

	"github.com/gomlx/exceptions"
	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4096,
	}
}

// workerPanic carries a panic raised inside a worker back to the calling goroutine.
type workerPanic struct {
	value any
}

func (p *workerPanic) Error() string {
	return "panic in parallel worker"
}

// ForRange calls f on disjoint [start, end) chunks covering [0, n).
// Falls back to a single call if parallelism is disabled or n is too small.
// A panic inside any chunk is re-raised in the caller once all chunks finished.
func ForRange(n int, cfg Config, f func(start, end int)) {
	if n <= 0 {
		return
	}
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < 2*cfg.MinChunkSize {
		f(0, n)
		return
	}

	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)
	var g errgroup.Group
	g.SetLimit(cfg.NumWorkers)
	for start := 0; start < n; start += chunkSize {
		s, e := start, min(start+chunkSize, n)
		g.Go(func() error {
			if p := exceptions.Try(func() { f(s, e) }); p != nil {
				return &workerPanic{value: p}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(err.(*workerPanic).value)
	}
}

// For executes f(i) for i in [0, n) with optional parallelism.
func For(n int, f func(i int), cfg Config) {
	ForRange(n, cfg, func(start, end int) {
		for i := start; i < end; i++ {
			f(i)
		}
	})
}

// ForBatch is optimized for the batch*channels iteration pattern of image kernels.
func ForBatch(batch, channels int, f func(b, c int), cfg Config) {
	if channels == 0 {
		return
	}
	n := batch * channels
	For(n, func(k int) {
		f(k/channels, k%channels)
	}, cfg)
}
