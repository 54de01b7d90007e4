package state

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/state_mock.go -package=mock

// TableRepository persists one [Table] per collection.
type TableRepository interface {
	// Load returns the persisted table of collection. A collection that was
	// never saved yields an empty table and no error.
	Load(ctx context.Context, collection string) (*Table, error)

	// Save durably replaces the persisted table of collection. A crash
	// during Save leaves either the old or the new table, never a mix.
	Save(ctx context.Context, collection string, table *Table) error
}

// AnchorRepository persists one marker per collection. An anchor is used
// only to tell a first synchronization from an incremental one.
type AnchorRepository interface {
	// Matches reports whether an anchor exists for collection and equals
	// marker. A missing anchor is not an error.
	Matches(ctx context.Context, collection, marker string) (bool, error)

	// Set stores marker for collection, overwriting any previous value.
	// The marker is durable when Set returns.
	Set(ctx context.Context, collection, marker string) error
}
