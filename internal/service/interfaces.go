package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pim-sync/models"
)

// Session is one collection's side of a synchronization cycle. Steps are
// called in order: Connect, GetChanges, any number of Commit, SyncDone and
// finally Disconnect.
type Session interface {
	// Connect opens the store and loads the state table. It reports
	// slowSync when no previous cycle completed, in which case every live
	// item is reported as added.
	Connect(ctx context.Context) (slowSync bool, err error)

	// GetChanges reports every item added, modified or deleted since the
	// last completed cycle.
	GetChanges(ctx context.Context) ([]models.ChangeRecord, error)

	// Commit applies one remote change to the store and returns it with
	// the id and fingerprint the item now has locally.
	Commit(ctx context.Context, change models.ChangeRecord) (models.ChangeRecord, error)

	// SyncDone makes the cycle durable.
	SyncDone(ctx context.Context) error

	// Disconnect releases the store.
	Disconnect(ctx context.Context) error
}

// Source is the remote side pulled by a [Mirror], usually a peer reached
// over the session API.
type Source interface {
	Connect(ctx context.Context, collection string) (models.ConnectResponse, error)
	GetChanges(ctx context.Context, collection string) (models.ChangesResponse, error)
	SyncDone(ctx context.Context, collection string) error
	Disconnect(ctx context.Context, collection string) error
}

// SessionProvider looks up local sessions by collection name.
// [Services] implements it.
type SessionProvider interface {
	Session(collection string) (Session, error)
	Collections() []string
}

// MirrorService pulls a remote peer's changes into local sessions.
type MirrorService interface {
	// Pull runs one cycle for collection.
	Pull(ctx context.Context, collection string) (PullReport, error)

	// PullAll runs one cycle for every local collection concurrently.
	PullAll(ctx context.Context) error
}

// MirrorJob periodically pulls every configured collection.
type MirrorJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}
