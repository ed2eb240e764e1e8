package heightfield

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Option configures how a stage executes.
type Option func(*options)

type options struct {
	workers int
}

// WithWorkers bounds the number of rows processed concurrently.
// Values below 1 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// ForEachBand splits [0, rows) into contiguous bands and calls fn for each band
// concurrently. Every call owns its rows exclusively.
func ForEachBand(rows, workers int, fn func(start, end int)) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > rows {
		workers = rows
	}
	if workers <= 1 {
		fn(0, rows)
		return
	}

	band := (rows + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < rows; start += band {
		start := start
		end := min(start+band, rows)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
}

// Workers resolves the worker count selected by opts.
func Workers(opts ...Option) int {
	return buildOptions(opts).workers
}
