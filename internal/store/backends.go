package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/models"
)

// NewBackendOpener returns the opener used by the process-wide [Handles]
// registry. A memory DSN opens in-memory backends; any other DSN is a
// directory holding one sqlite database per resource.
func NewBackendOpener(dsn string, kinds map[string][]models.Kind, ids IDGenerator, log *logger.Logger) func(ctx context.Context, resource string) (Backend, error) {
	var (
		mu       sync.Mutex
		memories = make(map[string]*memoryBackend)
	)

	return func(ctx context.Context, resource string) (Backend, error) {
		resourceKinds, ok := kinds[resource]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownResource, resource)
		}

		if isMemoryDSN(dsn) {
			mu.Lock()
			defer mu.Unlock()

			if b, ok := memories[resource]; ok {
				return b.Reopen(), nil
			}
			b := NewMemoryBackend(resourceKinds, WithIDGenerator(ids))
			memories[resource] = b
			return b.Reopen(), nil
		}

		return NewSQLiteBackend(ctx, filepath.Join(dsn, resource+".db"), resourceKinds, ids, log)
	}
}
