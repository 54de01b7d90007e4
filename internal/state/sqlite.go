package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/store"
	"github.com/MKhiriev/go-pim-sync/models"
)

// sqliteRepository keeps tables and anchors of every collection in one
// sqlite database. It implements both [TableRepository] and
// [AnchorRepository].
type sqliteRepository struct {
	*store.DB
	now    func() time.Time
	logger *logger.Logger
}

func NewSQLiteRepository(db *store.DB, log *logger.Logger) *sqliteRepository {
	return &sqliteRepository{
		DB:     db,
		now:    time.Now,
		logger: log,
	}
}

func (s *sqliteRepository) Load(ctx context.Context, collection string) (*Table, error) {
	log := logger.FromContext(ctx)

	if err := validateCollection(collection); err != nil {
		return nil, err
	}

	query, args, err := selectEntriesQuery(collection)
	if err != nil {
		return nil, fmt.Errorf("build state query: %w", err)
	}

	rows, err := s.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteRepository.Load").
			Str("collection", collection).
			Msg("failed to query state entries")
		return nil, fmt.Errorf("query state entries: %w", err)
	}
	defer rows.Close()

	var entries []models.StateEntry
	for rows.Next() {
		var e models.StateEntry
		if err = rows.Scan(&e.ID, &e.Fingerprint); err != nil {
			log.Err(err).
				Str("func", "sqliteRepository.Load").
				Str("collection", collection).
				Msg("failed to scan state entry")
			return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate state entries: %w", err)
	}

	return NewTableFromEntries(entries), nil
}

// Save replaces the stored entries of collection inside one transaction.
func (s *sqliteRepository) Save(ctx context.Context, collection string, table *Table) (err error) {
	log := logger.FromContext(ctx)

	if err = validateCollection(collection); err != nil {
		return err
	}

	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteRepository.Save").
			Str("collection", collection).
			Msg("failed to begin transaction")
		return fmt.Errorf("begin state transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	query, args, err := deleteEntriesQuery(collection)
	if err != nil {
		return fmt.Errorf("build state query: %w", err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqliteRepository.Save").
			Str("collection", collection).
			Msg("failed to clear state entries")
		return fmt.Errorf("clear state entries: %w", err)
	}

	entries := table.Entries()
	for start := 0; start < len(entries); start += insertBatchSize {
		end := min(start+insertBatchSize, len(entries))

		query, args, err = insertEntriesQuery(collection, entries[start:end])
		if err != nil {
			return fmt.Errorf("build state query: %w", err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "sqliteRepository.Save").
				Str("collection", collection).
				Int("batch_start", start).
				Msg("failed to insert state entries")
			return fmt.Errorf("insert state entries: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "sqliteRepository.Save").
			Str("collection", collection).
			Msg("failed to commit transaction")
		return fmt.Errorf("commit state transaction: %w", err)
	}

	return nil
}

func (s *sqliteRepository) Matches(ctx context.Context, collection, marker string) (bool, error) {
	if err := validateCollection(collection); err != nil {
		return false, err
	}

	query, args, err := selectAnchorQuery(collection)
	if err != nil {
		return false, fmt.Errorf("build anchor query: %w", err)
	}

	var stored string
	err = s.QueryRowContext(ctx, query, args...).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqliteRepository.Matches").
			Str("collection", collection).
			Msg("failed to read anchor")
		return false, fmt.Errorf("read anchor: %w", err)
	}

	return stored == marker, nil
}

func (s *sqliteRepository) Set(ctx context.Context, collection, marker string) error {
	if err := validateCollection(collection); err != nil {
		return err
	}

	query, args, err := upsertAnchorQuery(collection, marker, s.now().Unix())
	if err != nil {
		return fmt.Errorf("build anchor query: %w", err)
	}

	if _, err = s.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqliteRepository.Set").
			Str("collection", collection).
			Msg("failed to write anchor")
		return fmt.Errorf("write anchor: %w", err)
	}

	return nil
}
