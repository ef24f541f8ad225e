package renderer

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BandJob renders one band. It must only touch the pixels that belong to the band.
type BandJob func(ctx context.Context, band Band) error

// WorkerPool runs one goroutine per band and joins them
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run starts every band and blocks until all of them return. The first error cancels the
// context shared by the remaining bands and is returned. A panicking band is reported as
// an error instead of taking down the process.
func (wp *WorkerPool) Run(ctx context.Context, bands []Band, job BandJob) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, band := range bands {
		band := band // per-iteration copy; module targets go 1.21 loop semantics
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%v panicked: %v", band, r)
				}
			}()
			return job(gctx, band)
		})
	}

	return g.Wait()
}
