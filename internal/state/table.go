// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package state

import (
	"maps"
	"sort"

	"github.com/MKhiriev/go-pim-sync/models"
)

// Table maps item ids to the fingerprint last reported for them. It is the
// basis of incremental change detection for one collection.
//
// A Table is owned by a single session at a time and is not safe for
// concurrent use.
type Table struct {
	entries map[string]string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[string]string)}
}

// NewTableFromEntries builds a table from persisted entries. Later entries
// win over earlier ones with the same id.
func NewTableFromEntries(entries []models.StateEntry) *Table {
	t := &Table{entries: make(map[string]string, len(entries))}
	for _, e := range entries {
		t.entries[e.ID] = e.Fingerprint
	}
	return t
}

// Classify compares fingerprint against the entry for id without changing
// the table: added when id is unknown, modified when the fingerprint
// differs, unmodified otherwise.
func (t *Table) Classify(id, fingerprint string) models.ChangeKind {
	known, ok := t.entries[id]
	switch {
	case !ok:
		return models.ChangeAdded
	case known != fingerprint:
		return models.ChangeModified
	default:
		return models.ChangeUnmodified
	}
}

// Update upserts the entry for id.
func (t *Table) Update(id, fingerprint string) {
	t.entries[id] = fingerprint
}

// Remove drops the entry for id. It reports whether an entry existed.
func (t *Table) Remove(id string) bool {
	if _, ok := t.entries[id]; !ok {
		return false
	}
	delete(t.entries, id)
	return true
}

// SweepMissing returns, in ascending order, every id that is not in seen,
// and removes those entries: each deletion is reported at most once.
func (t *Table) SweepMissing(seen map[string]struct{}) []string {
	var missing []string
	for id := range t.entries {
		if _, ok := seen[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)

	for _, id := range missing {
		delete(t.entries, id)
	}
	return missing
}

// Reset clears every entry, so every live item classifies as added on the
// next enumeration.
func (t *Table) Reset() {
	t.entries = make(map[string]string)
}

// Fingerprint returns the known fingerprint for id.
func (t *Table) Fingerprint(id string) (string, bool) {
	fp, ok := t.entries[id]
	return fp, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns a snapshot of the table sorted by id.
func (t *Table) Entries() []models.StateEntry {
	out := make([]models.StateEntry, 0, len(t.entries))
	for id, fp := range t.entries {
		out = append(out, models.StateEntry{ID: id, Fingerprint: fp})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	return &Table{entries: maps.Clone(t.entries)}
}
