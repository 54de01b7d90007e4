package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Schema names one embedded set of migrations.
type Schema string

const (
	// SchemaItems is the layout of a local item store.
	SchemaItems Schema = "items"
	// SchemaState is the layout of the state table and anchor database.
	SchemaState Schema = "state"
)

//go:embed items/*.sql state/*.sql
var embedMigrations embed.FS

func Migrate(db *sql.DB, schema Schema) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}
	if schema != SchemaItems && schema != SchemaState {
		return fmt.Errorf("migration error: unknown schema %q", schema)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, string(schema)); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
