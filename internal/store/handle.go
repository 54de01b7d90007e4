package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
)

// Opener opens the physical store behind a handle.
type Opener func(ctx context.Context) (Backend, error)

// Handle is a reference-counted opening of one physical store. The backend
// is opened on the first Acquire and closed on the last Release, so
// collections that live in the same store (events and to-dos of one
// calendar) share a single connection.
type Handle struct {
	resource string
	open     Opener
	logger   *logger.Logger

	mu      sync.Mutex
	refs    int
	backend Backend
}

func NewHandle(resource string, open Opener, log *logger.Logger) *Handle {
	return &Handle{
		resource: resource,
		open:     open,
		logger:   log,
	}
}

// Acquire returns the opened backend, opening it when no other holder has.
func (h *Handle) Acquire(ctx context.Context) (Backend, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.refs == 0 {
		backend, err := h.open(ctx)
		if err != nil {
			h.logger.Err(err).
				Str("func", "Handle.Acquire").
				Str("resource", h.resource).
				Msg("failed to open store")
			return nil, fmt.Errorf("open store %s: %w", h.resource, err)
		}
		h.backend = backend
		h.logger.Debug().
			Str("func", "Handle.Acquire").
			Str("resource", h.resource).
			Msg("store opened")
	}

	h.refs++
	return h.backend, nil
}

// Release drops one reference and closes the backend with the last one.
func (h *Handle) Release(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.refs == 0 {
		return fmt.Errorf("%w: %s", ErrHandleNotAcquired, h.resource)
	}

	h.refs--
	if h.refs > 0 {
		return nil
	}

	backend := h.backend
	h.backend = nil
	if err := backend.Close(); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "Handle.Release").
			Str("resource", h.resource).
			Msg("failed to close store")
		return fmt.Errorf("close store %s: %w", h.resource, err)
	}

	h.logger.Debug().
		Str("func", "Handle.Release").
		Str("resource", h.resource).
		Msg("store closed")
	return nil
}

// Refs reports the number of current holders.
func (h *Handle) Refs() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.refs
}

// Handles is the registry of store handles shared by all collections of a
// process. It is built once at startup and passed to every engine.
type Handles struct {
	mu      sync.Mutex
	open    func(ctx context.Context, resource string) (Backend, error)
	handles map[string]*Handle
	logger  *logger.Logger
}

func NewHandles(open func(ctx context.Context, resource string) (Backend, error), log *logger.Logger) *Handles {
	return &Handles{
		open:    open,
		handles: make(map[string]*Handle),
		logger:  log,
	}
}

// Get returns the handle for resource, creating it on first use. Every
// caller asking for the same resource receives the same handle.
func (hs *Handles) Get(resource string) *Handle {
	hs.mu.Lock()
	defer hs.mu.Unlock()

	if h, ok := hs.handles[resource]; ok {
		return h
	}

	h := NewHandle(resource, func(ctx context.Context) (Backend, error) {
		return hs.open(ctx, resource)
	}, hs.logger)
	hs.handles[resource] = h
	return h
}
