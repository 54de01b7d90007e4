package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/workers"
	"github.com/MKhiriev/go-pim-sync/models"
)

// PullReport summarizes one mirror cycle of a collection.
type PullReport struct {
	Collection string
	// SlowSync is set when the peer had no completed cycle on record and
	// sent its whole collection.
	SlowSync bool
	// Applied counts changes committed to the local session.
	Applied int
	// Skipped counts deletions of items the local store never had.
	Skipped int
}

// Mirror drives a peer's session and commits its change stream into the
// local session of the same collection. The flow is one-way: local
// changes are not pushed back.
type Mirror struct {
	source   Source
	sessions SessionProvider
	logger   *logger.Logger
}

func NewMirror(source Source, sessions SessionProvider, log *logger.Logger) *Mirror {
	return &Mirror{
		source:   source,
		sessions: sessions,
		logger:   log,
	}
}

// Pull runs one cycle for collection. The local cycle is completed before
// the peer's, so a failure anywhere leaves the peer's anchor untouched and
// the same changes are delivered again by the next cycle.
func (m *Mirror) Pull(ctx context.Context, collection string) (report PullReport, err error) {
	report.Collection = collection
	log := m.logger.WithCollection(collection)

	local, err := m.sessions.Session(collection)
	if err != nil {
		return report, err
	}

	if _, err = local.Connect(ctx); err != nil {
		return report, fmt.Errorf("connect local session: %w", err)
	}
	defer func() {
		if dErr := local.Disconnect(ctx); dErr != nil {
			err = errors.Join(err, fmt.Errorf("disconnect local session: %w", dErr))
		}
	}()

	connected, err := m.source.Connect(ctx, collection)
	if err != nil {
		return report, fmt.Errorf("connect peer: %w", err)
	}
	report.SlowSync = connected.SlowSync
	defer func() {
		if dErr := m.source.Disconnect(ctx, collection); dErr != nil {
			err = errors.Join(err, fmt.Errorf("disconnect peer: %w", dErr))
		}
	}()

	changes, err := m.source.GetChanges(ctx, collection)
	if err != nil {
		return report, fmt.Errorf("get peer changes: %w", err)
	}

	for _, change := range changes.Changes {
		applied, err := m.apply(ctx, local, change)
		if err != nil {
			log.Err(err).
				Str("func", "Mirror.Pull").
				Str("id", change.ID).
				Str("kind", string(change.Kind)).
				Msg("failed to commit peer change")
			return report, fmt.Errorf("commit %s %s: %w", change.Kind, change.ID, err)
		}
		if applied {
			report.Applied++
		} else {
			report.Skipped++
		}
	}

	if err = local.SyncDone(ctx); err != nil {
		return report, fmt.Errorf("complete local session: %w", err)
	}
	if err = m.source.SyncDone(ctx, collection); err != nil {
		return report, fmt.Errorf("complete peer session: %w", err)
	}

	log.Info().
		Str("func", "Mirror.Pull").
		Bool("slow_sync", report.SlowSync).
		Int("applied", report.Applied).
		Int("skipped", report.Skipped).
		Msg("collection mirrored")

	return report, nil
}

// apply commits one change. A deletion of an item that is not in the
// local store is not an error: it was never mirrored or is already gone.
func (m *Mirror) apply(ctx context.Context, local Session, change models.ChangeRecord) (bool, error) {
	_, err := local.Commit(ctx, change)
	if err != nil && change.Kind == models.ChangeDeleted && errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// PullAll mirrors every local collection concurrently. Collections are
// independent: all of them are attempted and every failure is returned.
func (m *Mirror) PullAll(ctx context.Context) error {
	collections := m.sessions.Collections()
	pool := workers.New()
	for _, collection := range collections {
		pool.Add(workers.Func(func(ctx context.Context) error {
			_, err := m.Pull(ctx, collection)
			return err
		}))
	}
	return pool.RunAll(ctx)
}
