// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileRepository(t *testing.T) (*fileRepository, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "state")
	repo, err := NewFileRepository(dir, logger.Nop())
	require.NoError(t, err)
	return repo, dir
}

func TestFileRepository_LoadMissingIsEmpty(t *testing.T) {
	repo, _ := newTestFileRepository(t)

	table, err := repo.Load(context.Background(), "contacts")
	require.NoError(t, err)
	assert.Zero(t, table.Len())
}

func TestFileRepository_SaveLoadRoundTrip(t *testing.T) {
	repo, dir := newTestFileRepository(t)
	ctx := context.Background()

	table := NewTable()
	table.Update("1", "2026-01-02T03:04:05Z")
	table.Update("2", "digest")

	require.NoError(t, repo.Save(ctx, "contacts", table))
	assert.FileExists(t, filepath.Join(dir, "contacts.table.json"))

	loaded, err := repo.Load(ctx, "contacts")
	require.NoError(t, err)
	assert.Equal(t, table.Entries(), loaded.Entries())

	// коллекции не пересекаются
	other, err := repo.Load(ctx, "notes")
	require.NoError(t, err)
	assert.Zero(t, other.Len())
}

func TestFileRepository_SaveOverwrites(t *testing.T) {
	repo, dir := newTestFileRepository(t)
	ctx := context.Background()

	first := NewTable()
	first.Update("1", "a")
	first.Update("2", "b")
	require.NoError(t, repo.Save(ctx, "notes", first))

	second := NewTable()
	second.Update("3", "c")
	require.NoError(t, repo.Save(ctx, "notes", second))

	loaded, err := repo.Load(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, []models.StateEntry{{ID: "3", Fingerprint: "c"}}, loaded.Entries())

	// no temp files are left behind
	files, err := filepath.Glob(filepath.Join(dir, "*.tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileRepository_LoadCorrupt(t *testing.T) {
	repo, dir := newTestFileRepository(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "events.table.json"), []byte("{not json"), 0o600))

	_, err := repo.Load(context.Background(), "events")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptState)
}

func TestFileRepository_InvalidCollection(t *testing.T) {
	repo, _ := newTestFileRepository(t)
	ctx := context.Background()

	for _, name := range []string{"", "..", "a/b", `a\b`} {
		_, err := repo.Load(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidCollection, "load %q", name)

		err = repo.Save(ctx, name, NewTable())
		assert.ErrorIs(t, err, ErrInvalidCollection, "save %q", name)

		_, err = repo.Matches(ctx, name, "true")
		assert.ErrorIs(t, err, ErrInvalidCollection, "matches %q", name)

		err = repo.Set(ctx, name, "true")
		assert.ErrorIs(t, err, ErrInvalidCollection, "set %q", name)
	}
}

func TestFileRepository_Anchors(t *testing.T) {
	repo, dir := newTestFileRepository(t)
	ctx := context.Background()

	ok, err := repo.Matches(ctx, "contacts", "true")
	require.NoError(t, err)
	assert.False(t, ok, "missing anchor must not match")

	require.NoError(t, repo.Set(ctx, "contacts", "true"))
	require.NoError(t, repo.Set(ctx, "todos", "false"))

	ok, err = repo.Matches(ctx, "contacts", "true")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Matches(ctx, "todos", "true")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, "todos", "true"))
	ok, err = repo.Matches(ctx, "todos", "true")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.FileExists(t, filepath.Join(dir, "anchors.json"))

	// a second repository over the same directory sees the anchors
	reopened, err := NewFileRepository(dir, logger.Nop())
	require.NoError(t, err)
	ok, err = reopened.Matches(ctx, "contacts", "true")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFileRepository_CorruptAnchors(t *testing.T) {
	repo, dir := newTestFileRepository(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "anchors.json"), []byte("[]"), 0o600))

	_, err := repo.Matches(context.Background(), "contacts", "true")
	assert.ErrorIs(t, err, ErrCorruptState)
}
