// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-pim-sync/internal/codec"
	"github.com/MKhiriev/go-pim-sync/internal/hasher"
	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/state"
	"github.com/MKhiriev/go-pim-sync/internal/store"
	"github.com/MKhiriev/go-pim-sync/models"
)

// SyncedMarker is the anchor value recorded once a cycle completed.
const SyncedMarker = "true"

type phase int

const (
	phaseDisconnected phase = iota
	phaseConnected
	phaseEnumerated
	phaseDone
)

func (p phase) String() string {
	switch p {
	case phaseDisconnected:
		return "disconnected"
	case phaseConnected:
		return "connected"
	case phaseEnumerated:
		return "enumerated"
	case phaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Engine detects local changes of one collection and applies remote ones.
// It implements [Session].
type Engine struct {
	collection models.Collection
	handle     *store.Handle
	tables     state.TableRepository
	anchors    state.AnchorRepository
	codec      codec.Codec
	logger     *logger.Logger

	mu    sync.Mutex
	phase phase
	items store.ItemStore
	table *state.Table
}

func NewEngine(
	collection models.Collection,
	handle *store.Handle,
	tables state.TableRepository,
	anchors state.AnchorRepository,
	c codec.Codec,
	log *logger.Logger,
) *Engine {
	return &Engine{
		collection: collection,
		handle:     handle,
		tables:     tables,
		anchors:    anchors,
		codec:      c,
		logger:     log,
	}
}

// Collection returns the name of the engine's collection.
func (e *Engine) Collection() string {
	return e.collection.Name
}

func (e *Engine) Connect(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	log := logger.FromContext(ctx)
	if err := e.expect("connect", phaseDisconnected); err != nil {
		return false, err
	}

	backend, err := e.handle.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	items, err := backend.Items(e.collection.Kind)
	if err != nil {
		return false, e.abortConnect(ctx, fmt.Errorf("%w: %w", ErrStoreUnavailable, err))
	}

	table, err := e.tables.Load(ctx, e.collection.Name)
	if err != nil {
		log.Err(err).
			Str("func", "Engine.Connect").
			Str("collection", e.collection.Name).
			Msg("failed to load state table")
		return false, e.abortConnect(ctx, fmt.Errorf("%w: %w", ErrPersistence, err))
	}

	synced, err := e.anchors.Matches(ctx, e.collection.Name, SyncedMarker)
	if err != nil {
		log.Err(err).
			Str("func", "Engine.Connect").
			Str("collection", e.collection.Name).
			Msg("failed to read anchor")
		return false, e.abortConnect(ctx, fmt.Errorf("%w: %w", ErrPersistence, err))
	}

	slowSync := !synced
	if slowSync {
		table.Reset()
	}

	e.items = items
	e.table = table
	e.phase = phaseConnected

	log.Info().
		Str("func", "Engine.Connect").
		Str("collection", e.collection.Name).
		Bool("slow_sync", slowSync).
		Int("known_items", table.Len()).
		Msg("session connected")

	return slowSync, nil
}

// abortConnect releases the handle acquired by a failed Connect.
func (e *Engine) abortConnect(ctx context.Context, cause error) error {
	if err := e.handle.Release(ctx); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

// GetChanges enumerates the store. The state table is replaced only when
// the whole enumeration succeeds, so a failed call can be retried.
func (e *Engine) GetChanges(ctx context.Context) ([]models.ChangeRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	log := logger.FromContext(ctx)
	if err := e.expect("get changes", phaseConnected); err != nil {
		return nil, err
	}

	live, err := e.items.Enumerate(ctx)
	if err != nil {
		log.Err(err).
			Str("func", "Engine.GetChanges").
			Str("collection", e.collection.Name).
			Msg("failed to enumerate store")
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	table := e.table.Clone()
	seen := make(map[string]struct{}, len(live))
	changes := make([]models.ChangeRecord, 0)

	for _, item := range live {
		if e.collection.Skips(item.ID) || !e.collection.Filter.Match(item.Categories) {
			continue
		}

		payload, fingerprint, err := e.describe(item)
		if err != nil {
			log.Err(err).
				Str("func", "Engine.GetChanges").
				Str("collection", e.collection.Name).
				Str("id", item.ID).
				Msg("failed to serialize item")
			return nil, fmt.Errorf("serialize item %s: %w", item.ID, err)
		}

		kind := table.Classify(item.ID, fingerprint)
		table.Update(item.ID, fingerprint)
		seen[item.ID] = struct{}{}

		if kind == models.ChangeUnmodified {
			continue
		}
		changes = append(changes, models.ChangeRecord{
			ID:          item.ID,
			Kind:        kind,
			Payload:     payload,
			Fingerprint: fingerprint,
		})
	}

	for _, id := range table.SweepMissing(seen) {
		changes = append(changes, models.ChangeRecord{ID: id, Kind: models.ChangeDeleted})
	}

	e.table = table
	e.phase = phaseEnumerated

	log.Info().
		Str("func", "Engine.GetChanges").
		Str("collection", e.collection.Name).
		Int("live_items", len(live)).
		Int("changes", len(changes)).
		Msg("changes detected")

	return changes, nil
}

// Commit applies one remote change. Each commit stands alone: a failure
// leaves earlier commits in place.
func (e *Engine) Commit(ctx context.Context, change models.ChangeRecord) (models.ChangeRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.expect("commit", phaseConnected, phaseEnumerated); err != nil {
		return models.ChangeRecord{}, err
	}

	switch change.Kind {
	case models.ChangeAdded, models.ChangeModified:
		return e.commitWrite(ctx, change)
	case models.ChangeDeleted:
		return e.commitDelete(ctx, change)
	default:
		return models.ChangeRecord{}, fmt.Errorf("%w: %q", ErrUnsupportedOperation, change.Kind)
	}
}

func (e *Engine) commitWrite(ctx context.Context, change models.ChangeRecord) (models.ChangeRecord, error) {
	log := logger.FromContext(ctx)

	item, err := e.codec.Decode(change.Payload)
	if err != nil {
		log.Err(err).
			Str("func", "Engine.Commit").
			Str("collection", e.collection.Name).
			Str("id", change.ID).
			Msg("failed to decode change payload")
		return models.ChangeRecord{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	// items written by the peer must stay visible through the filter
	if !e.collection.Filter.Match(item.Categories) {
		item.AddCategories(e.collection.Filter...)
	}

	if change.ID != "" {
		item.ID = change.ID
	}
	item.Kind = e.collection.Kind

	if item.ID != "" {
		if err = e.items.Delete(ctx, item.ID); err != nil && !errors.Is(err, store.ErrItemNotFound) {
			log.Err(err).
				Str("func", "Engine.Commit").
				Str("collection", e.collection.Name).
				Str("id", item.ID).
				Msg("failed to remove previous version")
			return models.ChangeRecord{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
	}

	stored, err := e.items.InsertOrReplace(ctx, item)
	if err != nil {
		log.Err(err).
			Str("func", "Engine.Commit").
			Str("collection", e.collection.Name).
			Str("id", item.ID).
			Msg("failed to write item")
		return models.ChangeRecord{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	// the store may normalize the item, so the fingerprint is taken from
	// what it now returns
	fetched, err := e.items.Fetch(ctx, stored.ID)
	if err != nil {
		log.Err(err).
			Str("func", "Engine.Commit").
			Str("collection", e.collection.Name).
			Str("id", stored.ID).
			Msg("failed to re-read written item")
		e.trackWritten(stored)
		return models.ChangeRecord{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	payload, fingerprint, err := e.describe(fetched)
	if err != nil {
		log.Err(err).
			Str("func", "Engine.Commit").
			Str("collection", e.collection.Name).
			Str("id", fetched.ID).
			Msg("failed to serialize written item")
		e.trackWritten(stored)
		return models.ChangeRecord{}, fmt.Errorf("serialize item %s: %w", fetched.ID, err)
	}
	e.table.Update(fetched.ID, fingerprint)

	log.Debug().
		Str("func", "Engine.Commit").
		Str("collection", e.collection.Name).
		Str("id", fetched.ID).
		Str("kind", string(change.Kind)).
		Msg("change committed")

	return models.ChangeRecord{
		ID:          fetched.ID,
		Kind:        change.Kind,
		Payload:     payload,
		Fingerprint: fingerprint,
	}, nil
}

func (e *Engine) commitDelete(ctx context.Context, change models.ChangeRecord) (models.ChangeRecord, error) {
	if change.ID == "" {
		return models.ChangeRecord{}, fmt.Errorf("%w: empty id", ErrNotFound)
	}

	if err := e.items.Delete(ctx, change.ID); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return models.ChangeRecord{}, fmt.Errorf("%w: %s", ErrNotFound, change.ID)
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "Engine.Commit").
			Str("collection", e.collection.Name).
			Str("id", change.ID).
			Msg("failed to delete item")
		return models.ChangeRecord{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	e.table.Remove(change.ID)

	return models.ChangeRecord{ID: change.ID, Kind: models.ChangeDeleted}, nil
}

// SyncDone records the anchor and saves the table. Store writes made
// during the cycle are not undone when it fails, and it may be retried.
func (e *Engine) SyncDone(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.expect("sync done", phaseConnected, phaseEnumerated); err != nil {
		return err
	}

	var errs []error
	if err := e.anchors.Set(ctx, e.collection.Name, SyncedMarker); err != nil {
		errs = append(errs, fmt.Errorf("set anchor: %w", err))
	}
	if err := e.tables.Save(ctx, e.collection.Name, e.table); err != nil {
		errs = append(errs, fmt.Errorf("save state table: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "Engine.SyncDone").
			Str("collection", e.collection.Name).
			Msg("failed to persist sync state")
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	e.phase = phaseDone
	return nil
}

// Disconnect releases the store. It is accepted in every state after
// Connect, which lets a peer abandon a cycle.
func (e *Engine) Disconnect(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.expect("disconnect", phaseConnected, phaseEnumerated, phaseDone); err != nil {
		return err
	}

	e.phase = phaseDisconnected
	e.items = nil
	e.table = nil

	if err := e.handle.Release(ctx); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "Engine.Disconnect").
			Str("collection", e.collection.Name).
			Msg("failed to release store")
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// trackWritten records the fingerprint of an item the store accepted even
// though the commit failed afterwards, so the next enumeration does not
// send the peer's own write back to it. An item that cannot be serialized
// is left out; enumeration fails on it anyway.
func (e *Engine) trackWritten(stored models.Item) {
	if _, fingerprint, err := e.describe(stored); err == nil {
		e.table.Update(stored.ID, fingerprint)
	}
}

// describe serializes item the way it is reported to peers and returns the
// payload together with its fingerprint.
func (e *Engine) describe(item models.Item) ([]byte, string, error) {
	ts, ok := e.items.NativeLastModified(item)
	hasher.Stamp(&item, ts, ok)

	payload, err := e.codec.Encode(item)
	if err != nil {
		return nil, "", err
	}
	item.Payload = payload

	return payload, hasher.Fingerprint(item), nil
}

func (e *Engine) expect(step string, allowed ...phase) error {
	for _, p := range allowed {
		if e.phase == p {
			return nil
		}
	}
	return fmt.Errorf("%w: %s while %s", ErrInvalidSessionState, step, e.phase)
}
