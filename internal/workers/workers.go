package workers

import (
	"context"
	"sync"
)

// Workers runs a set of background workers under a shared context.
type Workers struct {
	workers []Worker
	wg      sync.WaitGroup
}

func New(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Add registers another worker. Must be called before Run.
func (w *Workers) Add(worker Worker) {
	w.workers = append(w.workers, worker)
}

// Run launches every worker in its own goroutine. It returns immediately;
// use Wait to block until all workers exit after ctx is cancelled.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func(worker Worker) {
			defer w.wg.Done()
			worker.Run(ctx)
		}(worker)
	}
}

// Wait blocks until all launched workers have returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}
