package state

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/store"
	"github.com/MKhiriev/go-pim-sync/migrations"
)

// Supported persistence backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

const sqliteFileName = "state.db"

// Repositories bundles the table and anchor repositories of one backend.
type Repositories struct {
	Tables  TableRepository
	Anchors AnchorRepository

	close func() error
}

// Close releases the resources held by the backend.
func (r *Repositories) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// NewRepositories opens the persistence backend named by backend inside
// dir.
func NewRepositories(ctx context.Context, backend, dir string, log *logger.Logger) (*Repositories, error) {
	switch backend {
	case BackendFile, "":
		repo, err := NewFileRepository(dir, log)
		if err != nil {
			return nil, err
		}
		return &Repositories{Tables: repo, Anchors: repo}, nil

	case BackendSQLite:
		dsn := store.MemoryDSN
		if dir != store.MemoryDSN {
			dsn = filepath.Join(dir, sqliteFileName)
		}

		db, err := store.NewConnectSQLite(ctx, dsn, log)
		if err != nil {
			return nil, err
		}
		if err = db.Migrate(migrations.SchemaState); err != nil {
			_ = db.Close()
			log.Err(err).Str("func", "NewRepositories").Msg("error migrating state database")
			return nil, err
		}

		repo := NewSQLiteRepository(db, log)
		return &Repositories{Tables: repo, Anchors: repo, close: db.Close}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
