// Package workers runs groups of independent units of work concurrently.
// The server runs its long-lived components as workers and the mirror runs
// one worker per collection.
package workers

import "context"

// Worker is the interface that must be implemented by any unit of work.
// Run blocks until the work is finished or ctx is cancelled.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// Func adapts a function to [Worker].
type Func func(ctx context.Context) error

func (f Func) Run(ctx context.Context) error {
	return f(ctx)
}
