package store

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/MKhiriev/go-pim-sync/models"
)

// MemoryOption configures a memory backend.
type MemoryOption func(*memoryBackend)

// WithIDGenerator makes the backend assign ids from g instead of its
// sequential counter.
func WithIDGenerator(g IDGenerator) MemoryOption {
	return func(b *memoryBackend) {
		if g != nil {
			b.ids = g
		}
	}
}

// WithClock replaces the clock used to stamp writes of timestamped kinds.
func WithClock(now func() time.Time) MemoryOption {
	return func(b *memoryBackend) { b.now = now }
}

type sequentialIDs struct {
	mu     sync.Mutex
	nextID int64
}

func (s *sequentialIDs) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return strconv.FormatInt(s.nextID, 10)
}

// memoryData is the content of an in-memory store. It outlives the
// backends opened on it, so a store reopened through a [Handle] keeps its
// items.
type memoryData struct {
	mu    sync.RWMutex
	items map[models.Kind]map[string]models.Item
	ids   IDGenerator
	now   func() time.Time
}

// memoryBackend is one opening of an in-memory store. It serves tests and
// the "memory" DSN.
type memoryBackend struct {
	*memoryData
	kinds  []models.Kind
	closed bool
}

// NewMemoryBackend returns an empty in-memory backend holding the given
// kinds. No kinds means every kind.
func NewMemoryBackend(kinds []models.Kind, opts ...MemoryOption) *memoryBackend {
	b := &memoryBackend{
		memoryData: &memoryData{
			items: make(map[models.Kind]map[string]models.Item),
			ids:   &sequentialIDs{},
			now:   time.Now,
		},
		kinds: kinds,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Reopen returns a fresh backend over the same items.
func (b *memoryBackend) Reopen() *memoryBackend {
	return &memoryBackend{memoryData: b.memoryData, kinds: b.kinds}
}

func (b *memoryBackend) Items(kind models.Kind) (ItemStore, error) {
	if len(b.kinds) > 0 && !slices.Contains(b.kinds, kind) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
	return &memoryItems{backend: b, kind: kind}, nil
}

func (b *memoryBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBackendClosed
	}
	b.closed = true
	return nil
}

type memoryItems struct {
	backend *memoryBackend
	kind    models.Kind
}

func (m *memoryItems) Enumerate(ctx context.Context) ([]models.Item, error) {
	b := m.backend
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, ErrBackendClosed
	}

	items := make([]models.Item, 0, len(b.items[m.kind]))
	for _, item := range b.items[m.kind] {
		items = append(items, cloneItem(item))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (m *memoryItems) Fetch(ctx context.Context, id string) (models.Item, error) {
	b := m.backend
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return models.Item{}, ErrBackendClosed
	}

	item, ok := b.items[m.kind][id]
	if !ok {
		return models.Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return cloneItem(item), nil
}

func (m *memoryItems) InsertOrReplace(ctx context.Context, item models.Item) (models.Item, error) {
	b := m.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return models.Item{}, ErrBackendClosed
	}

	item = cloneItem(item)
	if item.ID == "" {
		item.ID = b.ids.Generate()
	}
	item.Kind = m.kind
	item.LastModified = stampWrite(m.kind, b.now)

	if b.items[m.kind] == nil {
		b.items[m.kind] = make(map[string]models.Item)
	}
	b.items[m.kind][item.ID] = item

	return cloneItem(item), nil
}

func (m *memoryItems) Delete(ctx context.Context, id string) error {
	b := m.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBackendClosed
	}

	if _, ok := b.items[m.kind][id]; !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	delete(b.items[m.kind], id)
	return nil
}

func (m *memoryItems) NativeLastModified(item models.Item) (time.Time, bool) {
	return nativeLastModified(m.kind, item)
}

// stampWrite returns the modification time a store records for a write of
// the given kind: now, at second precision, or nothing for kinds without
// native timestamps.
func stampWrite(kind models.Kind, now func() time.Time) time.Time {
	if !kind.Timestamped() {
		return time.Time{}
	}
	return now().UTC().Truncate(time.Second)
}

func nativeLastModified(kind models.Kind, item models.Item) (time.Time, bool) {
	if !kind.Timestamped() || item.LastModified.IsZero() {
		return time.Time{}, false
	}
	return item.LastModified, true
}

func cloneItem(item models.Item) models.Item {
	item.Categories = slices.Clone(item.Categories)
	item.Payload = slices.Clone(item.Payload)
	return item
}
