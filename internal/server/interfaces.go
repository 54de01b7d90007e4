package server

import "context"

// Server defines the lifecycle contract of the transport server.
//
// Run starts serving requests and blocks until ctx is cancelled or the
// server fails. On cancellation it shuts down gracefully and returns nil.
type Server interface {
	Run(ctx context.Context) error
}
