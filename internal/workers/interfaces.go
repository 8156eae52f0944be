// Package workers provides abstractions for managing and running
// background workers in the client application.
// It defines the Worker interface and a Workers aggregate that launches
// multiple workers under one context and waits for them to finish.
package workers

import "context"

// Worker is the interface that must be implemented by any background
// worker. Run is expected to block until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

// WorkerFunc adapts a plain function to the Worker interface.
type WorkerFunc func(ctx context.Context)

// Run implements [Worker].
func (f WorkerFunc) Run(ctx context.Context) {
	f(ctx)
}
