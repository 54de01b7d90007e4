// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package state

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*sqliteRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewSQLiteRepository(store.NewDB(db, logger.Nop()), logger.Nop()), mock
}

func TestSQLiteRepository_Load(t *testing.T) {
	repo, mock := newMockRepository(t)

	rows := sqlmock.NewRows([]string{"id", "fingerprint"}).
		AddRow("1", "fp1").
		AddRow("2", "fp2")
	mock.ExpectQuery(`SELECT id, fingerprint FROM state_entries WHERE collection = \?`).
		WithArgs("contacts").
		WillReturnRows(rows)

	table, err := repo.Load(context.Background(), "contacts")
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	fp, ok := table.Fingerprint("2")
	require.True(t, ok)
	assert.Equal(t, "fp2", fp)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepository_Load_QueryError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT id, fingerprint FROM state_entries`).
		WillReturnError(errors.New("disk I/O error"))

	_, err := repo.Load(context.Background(), "contacts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk I/O error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepository_Save(t *testing.T) {
	repo, mock := newMockRepository(t)

	table := NewTable()
	table.Update("b", "2")
	table.Update("a", "1")

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM state_entries WHERE collection = \?`).
		WithArgs("notes").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO state_entries \(collection,id,fingerprint\) VALUES`).
		WithArgs("notes", "a", "1", "notes", "b", "2").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), "notes", table))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepository_Save_EmptyTableOnlyClears(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM state_entries`).
		WithArgs("notes").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), "notes", NewTable()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepository_Save_RollsBackOnInsertError(t *testing.T) {
	repo, mock := newMockRepository(t)

	table := NewTable()
	table.Update("a", "1")

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM state_entries`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO state_entries`).
		WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), "notes", table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert state entries")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepository_Save_BeginError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin().WillReturnError(errors.New("database is locked"))

	err := repo.Save(context.Background(), "notes", NewTable())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin state transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepository_Matches(t *testing.T) {
	tests := []struct {
		name   string
		rows   *sqlmock.Rows
		marker string
		want   bool
	}{
		{
			name:   "stored marker equals",
			rows:   sqlmock.NewRows([]string{"marker"}).AddRow("true"),
			marker: "true",
			want:   true,
		},
		{
			name:   "stored marker differs",
			rows:   sqlmock.NewRows([]string{"marker"}).AddRow("false"),
			marker: "true",
			want:   false,
		},
		{
			name:   "no anchor",
			rows:   sqlmock.NewRows([]string{"marker"}),
			marker: "true",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)

			mock.ExpectQuery(`SELECT marker FROM anchors WHERE collection = \?`).
				WithArgs("events").
				WillReturnRows(tt.rows)

			got, err := repo.Matches(context.Background(), "events", tt.marker)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLiteRepository_Set(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`INSERT INTO anchors \(collection,marker,updated_at\) VALUES \(\?,\?,\?\) ON CONFLICT`).
		WithArgs("events", "true", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Set(context.Background(), "events", "true"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepository_InvalidCollection(t *testing.T) {
	repo, mock := newMockRepository(t)

	_, err := repo.Load(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidCollection)

	err = repo.Set(context.Background(), "../x", "true")
	assert.ErrorIs(t, err, ErrInvalidCollection)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewRepositories(t *testing.T) {
	ctx := context.Background()

	t.Run("file backend", func(t *testing.T) {
		repos, err := NewRepositories(ctx, BackendFile, t.TempDir(), logger.Nop())
		require.NoError(t, err)
		defer repos.Close()

		require.NoError(t, repos.Anchors.Set(ctx, "notes", "true"))
		ok, err := repos.Anchors.Matches(ctx, "notes", "true")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("sqlite backend", func(t *testing.T) {
		repos, err := NewRepositories(ctx, BackendSQLite, t.TempDir(), logger.Nop())
		require.NoError(t, err)
		defer repos.Close()

		table := NewTable()
		table.Update("1", "fp")
		require.NoError(t, repos.Tables.Save(ctx, "contacts", table))

		loaded, err := repos.Tables.Load(ctx, "contacts")
		require.NoError(t, err)
		assert.Equal(t, table.Entries(), loaded.Entries())

		require.NoError(t, repos.Anchors.Set(ctx, "contacts", "true"))
		require.NoError(t, repos.Anchors.Set(ctx, "contacts", "true"))
		ok, err := repos.Anchors.Matches(ctx, "contacts", "true")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := NewRepositories(ctx, "postgres", t.TempDir(), logger.Nop())
		assert.ErrorIs(t, err, ErrUnknownBackend)
	})
}
