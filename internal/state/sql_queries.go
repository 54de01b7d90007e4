package state

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pim-sync/models"
)

const (
	entriesTable = "state_entries"
	anchorsTable = "anchors"

	// insertBatchSize bounds the rows of one INSERT so large tables stay
	// under the sqlite bound-parameter limit.
	insertBatchSize = 250
)

func selectEntriesQuery(collection string) (string, []any, error) {
	return sq.Select("id", "fingerprint").
		From(entriesTable).
		Where(sq.Eq{"collection": collection}).
		OrderBy("id").
		ToSql()
}

func deleteEntriesQuery(collection string) (string, []any, error) {
	return sq.Delete(entriesTable).
		Where(sq.Eq{"collection": collection}).
		ToSql()
}

func insertEntriesQuery(collection string, entries []models.StateEntry) (string, []any, error) {
	builder := sq.Insert(entriesTable).Columns("collection", "id", "fingerprint")
	for _, e := range entries {
		builder = builder.Values(collection, e.ID, e.Fingerprint)
	}
	return builder.ToSql()
}

func selectAnchorQuery(collection string) (string, []any, error) {
	return sq.Select("marker").
		From(anchorsTable).
		Where(sq.Eq{"collection": collection}).
		ToSql()
}

func upsertAnchorQuery(collection, marker string, updatedAt int64) (string, []any, error) {
	return sq.Insert(anchorsTable).
		Columns("collection", "marker", "updated_at").
		Values(collection, marker, updatedAt).
		Suffix("ON CONFLICT (collection) DO UPDATE SET marker = excluded.marker, updated_at = excluded.updated_at").
		ToSql()
}
