package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pim-sync/models"
)

const itemsTable = "items"

var itemColumns = []string{"id", "summary", "body", "categories", "last_modified", "payload"}

func selectItemsQuery(kind models.Kind) (string, []any, error) {
	return sq.Select(itemColumns...).
		From(itemsTable).
		Where(sq.Eq{"kind": string(kind)}).
		OrderBy("id").
		ToSql()
}

func selectItemQuery(kind models.Kind, id string) (string, []any, error) {
	return sq.Select(itemColumns...).
		From(itemsTable).
		Where(sq.Eq{"kind": string(kind), "id": id}).
		ToSql()
}

func upsertItemQuery(kind models.Kind, row itemRow) (string, []any, error) {
	return sq.Insert(itemsTable).
		Columns(append([]string{"kind"}, itemColumns...)...).
		Values(string(kind), row.ID, row.Summary, row.Body, row.Categories, row.LastModified, row.Payload).
		Suffix(`ON CONFLICT (kind, id) DO UPDATE SET
			summary = excluded.summary,
			body = excluded.body,
			categories = excluded.categories,
			last_modified = excluded.last_modified,
			payload = excluded.payload`).
		ToSql()
}

func deleteItemQuery(kind models.Kind, id string) (string, []any, error) {
	return sq.Delete(itemsTable).
		Where(sq.Eq{"kind": string(kind), "id": id}).
		ToSql()
}
