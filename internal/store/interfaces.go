package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pim-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ItemStore is one kind of items inside a physical PIM store (the contacts
// of an address book, the to-dos of a calendar, ...).
type ItemStore interface {
	// Enumerate returns every live item of the store's kind.
	Enumerate(ctx context.Context) ([]models.Item, error)
	// Fetch returns the item with the given id or ErrItemNotFound.
	Fetch(ctx context.Context, id string) (models.Item, error)
	// InsertOrReplace writes item and returns it as stored. An empty
	// item.ID makes the store assign one.
	InsertOrReplace(ctx context.Context, item models.Item) (models.Item, error)
	// Delete removes the item with the given id or returns ErrItemNotFound.
	Delete(ctx context.Context, id string) error
	// NativeLastModified reports the store-maintained modification time of
	// item, if the store keeps one for its kind.
	NativeLastModified(item models.Item) (time.Time, bool)
}

// Backend is an opened physical store. Several collections may read from
// one backend through a shared [Handle].
type Backend interface {
	Items(kind models.Kind) (ItemStore, error)
	Close() error
}

// IDGenerator assigns ids to items inserted without one.
type IDGenerator interface {
	Generate() string
}
