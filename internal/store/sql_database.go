package store

import (
	"database/sql"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/migrations"
)

type DB struct {
	*sql.DB
	logger *logger.Logger
}

// NewDB wraps an already opened connection pool.
func NewDB(conn *sql.DB, log *logger.Logger) *DB {
	return &DB{DB: conn, logger: log}
}

func (db *DB) Migrate(schema migrations.Schema) error {
	return migrations.Migrate(db.DB, schema)
}
