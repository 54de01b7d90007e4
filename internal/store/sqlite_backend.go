package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/migrations"
	"github.com/MKhiriev/go-pim-sync/models"
)

// itemRow is the column layout of the items table.
type itemRow struct {
	ID           string
	Summary      string
	Body         string
	Categories   string
	LastModified int64
	Payload      []byte
}

func toRow(item models.Item) (itemRow, error) {
	categories := "[]"
	if len(item.Categories) > 0 {
		raw, err := json.Marshal(item.Categories)
		if err != nil {
			return itemRow{}, fmt.Errorf("encode categories: %w", err)
		}
		categories = string(raw)
	}

	var lastModified int64
	if !item.LastModified.IsZero() {
		lastModified = item.LastModified.Unix()
	}

	return itemRow{
		ID:           item.ID,
		Summary:      item.Summary,
		Body:         item.Body,
		Categories:   categories,
		LastModified: lastModified,
		Payload:      item.Payload,
	}, nil
}

func (r itemRow) toItem(kind models.Kind) (models.Item, error) {
	item := models.Item{
		ID:      r.ID,
		Kind:    kind,
		Summary: r.Summary,
		Body:    r.Body,
		Payload: r.Payload,
	}
	if r.Categories != "" {
		if err := json.Unmarshal([]byte(r.Categories), &item.Categories); err != nil {
			return models.Item{}, fmt.Errorf("decode categories of %s: %w", r.ID, err)
		}
	}
	if r.LastModified > 0 {
		item.LastModified = time.Unix(r.LastModified, 0).UTC()
	}
	return item, nil
}

// sqliteBackend keeps items of one resource in a sqlite database.
type sqliteBackend struct {
	*DB
	kinds  []models.Kind
	ids    IDGenerator
	now    func() time.Time
	logger *logger.Logger
}

// NewSQLiteBackend connects to dsn, applies the item schema and returns a
// backend holding the given kinds. No kinds means every kind.
func NewSQLiteBackend(ctx context.Context, dsn string, kinds []models.Kind, ids IDGenerator, log *logger.Logger) (*sqliteBackend, error) {
	db, err := NewConnectSQLite(ctx, dsn, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(migrations.SchemaItems); err != nil {
		_ = db.Close()
		log.Err(err).Str("func", "NewSQLiteBackend").Msg("error migrating item store")
		return nil, err
	}

	return newSQLiteBackend(db, kinds, ids, log), nil
}

func newSQLiteBackend(db *DB, kinds []models.Kind, ids IDGenerator, log *logger.Logger) *sqliteBackend {
	return &sqliteBackend{
		DB:     db,
		kinds:  kinds,
		ids:    ids,
		now:    time.Now,
		logger: log,
	}
}

func (s *sqliteBackend) Items(kind models.Kind) (ItemStore, error) {
	if len(s.kinds) > 0 && !slices.Contains(s.kinds, kind) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
	return &sqliteItems{backend: s, kind: kind}, nil
}

func (s *sqliteBackend) Close() error {
	return s.DB.Close()
}

type sqliteItems struct {
	backend *sqliteBackend
	kind    models.Kind
}

func (s *sqliteItems) Enumerate(ctx context.Context) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectItemsQuery(s.kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	rows, err := s.backend.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteItems.Enumerate").
			Str("kind", string(s.kind)).
			Msg("failed to execute query for enumerating items")
		return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var row itemRow
		if err = rows.Scan(&row.ID, &row.Summary, &row.Body, &row.Categories, &row.LastModified, &row.Payload); err != nil {
			log.Err(err).
				Str("func", "sqliteItems.Enumerate").
				Str("kind", string(s.kind)).
				Msg("failed to scan item row")
			return nil, fmt.Errorf("%w: %v", ErrScanningRows, err)
		}

		item, convErr := row.toItem(s.kind)
		if convErr != nil {
			return nil, convErr
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).
			Str("func", "sqliteItems.Enumerate").
			Str("kind", string(s.kind)).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %v", ErrScanningRows, err)
	}

	return items, nil
}

func (s *sqliteItems) Fetch(ctx context.Context, id string) (models.Item, error) {
	query, args, err := selectItemQuery(s.kind, id)
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var row itemRow
	err = s.backend.QueryRowContext(ctx, query, args...).
		Scan(&row.ID, &row.Summary, &row.Body, &row.Categories, &row.LastModified, &row.Payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqliteItems.Fetch").
			Str("kind", string(s.kind)).
			Str("id", id).
			Msg("failed to fetch item")
		return models.Item{}, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}

	return row.toItem(s.kind)
}

func (s *sqliteItems) InsertOrReplace(ctx context.Context, item models.Item) (models.Item, error) {
	if item.ID == "" {
		item.ID = s.backend.ids.Generate()
	}
	item.Kind = s.kind
	item.LastModified = stampWrite(s.kind, s.backend.now)

	row, err := toRow(item)
	if err != nil {
		return models.Item{}, err
	}

	query, args, err := upsertItemQuery(s.kind, row)
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	if _, err = s.backend.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqliteItems.InsertOrReplace").
			Str("kind", string(s.kind)).
			Str("id", item.ID).
			Msg("failed to write item")
		return models.Item{}, fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}

	return item, nil
}

func (s *sqliteItems) Delete(ctx context.Context, id string) error {
	query, args, err := deleteItemQuery(s.kind, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	res, err := s.backend.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqliteItems.Delete").
			Str("kind", string(s.kind)).
			Str("id", id).
			Msg("failed to delete item")
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return nil
}

func (s *sqliteItems) NativeLastModified(item models.Item) (time.Time, bool) {
	return nativeLastModified(s.kind, item)
}
