package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/models"
)

const (
	tableFileSuffix = ".table.json"
	anchorsFileName = "anchors.json"
	lockFileName    = ".state.lock"
)

// persistedTable is the on-disk layout of a table file.
type persistedTable struct {
	Collection string              `json:"collection"`
	Entries    []models.StateEntry `json:"entries"`
}

// fileRepository keeps tables and anchors as JSON files in one directory.
// Every write goes to a temporary file that is synced and renamed over the
// target, and runs under an exclusive lock on the directory so that two
// processes sharing the directory do not interleave read-modify-write cycles.
type fileRepository struct {
	dir    string
	lock   *flock.Flock
	logger *logger.Logger
}

// NewFileRepository returns a repository rooted at dir, creating dir when
// needed. The returned value implements both [TableRepository] and
// [AnchorRepository].
func NewFileRepository(dir string, log *logger.Logger) (*fileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	return &fileRepository{
		dir:    dir,
		lock:   flock.New(filepath.Join(dir, lockFileName)),
		logger: log,
	}, nil
}

func (f *fileRepository) Load(ctx context.Context, collection string) (*Table, error) {
	path, err := f.tablePath(collection)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewTable(), nil
		}
		return nil, fmt.Errorf("read state table %s: %w", collection, err)
	}

	var pt persistedTable
	if err = json.Unmarshal(data, &pt); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "fileRepository.Load").
			Str("collection", collection).
			Msg("state table file cannot be decoded")
		return nil, fmt.Errorf("%w: table %s: %v", ErrCorruptState, collection, err)
	}

	return NewTableFromEntries(pt.Entries), nil
}

func (f *fileRepository) Save(ctx context.Context, collection string, table *Table) error {
	path, err := f.tablePath(collection)
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(persistedTable{Collection: collection, Entries: table.Entries()}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state table %s: %w", collection, err)
	}

	return f.withLock(ctx, func() error {
		return writeFileAtomic(path, payload)
	})
}

func (f *fileRepository) Matches(ctx context.Context, collection, marker string) (bool, error) {
	if err := validateCollection(collection); err != nil {
		return false, err
	}

	anchors, err := f.readAnchors()
	if err != nil {
		return false, err
	}

	stored, ok := anchors[collection]
	return ok && stored == marker, nil
}

func (f *fileRepository) Set(ctx context.Context, collection, marker string) error {
	if err := validateCollection(collection); err != nil {
		return err
	}

	return f.withLock(ctx, func() error {
		anchors, err := f.readAnchors()
		if err != nil {
			return err
		}
		anchors[collection] = marker

		payload, err := json.MarshalIndent(anchors, "", "  ")
		if err != nil {
			return fmt.Errorf("encode anchors: %w", err)
		}
		return writeFileAtomic(filepath.Join(f.dir, anchorsFileName), payload)
	})
}

func (f *fileRepository) readAnchors() (map[string]string, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, anchorsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("read anchors: %w", err)
	}

	anchors := make(map[string]string)
	if err = json.Unmarshal(data, &anchors); err != nil {
		return nil, fmt.Errorf("%w: anchors: %v", ErrCorruptState, err)
	}
	return anchors, nil
}

func (f *fileRepository) withLock(ctx context.Context, fn func() error) error {
	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("lock state dir: %w", err)
	}
	defer func() {
		if err := f.lock.Unlock(); err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "fileRepository.withLock").
				Msg("failed to unlock state dir")
		}
	}()

	return fn()
}

func (f *fileRepository) tablePath(collection string) (string, error) {
	if err := validateCollection(collection); err != nil {
		return "", err
	}
	return filepath.Join(f.dir, collection+tableFileSuffix), nil
}

func validateCollection(collection string) error {
	if collection == "" || strings.ContainsAny(collection, `/\`) || collection == "." || collection == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidCollection, collection)
	}
	return nil
}

// writeFileAtomic writes data next to path, syncs it and renames it over
// path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return cause
	}

	if _, err = tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("write temp file: %w", err))
	}
	if err = tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("sync temp file: %w", err))
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpName, 0o600); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}

	// the rename itself is durable only once the directory entry is synced
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	return nil
}
