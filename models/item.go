// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Kind identifies the record format a collection stores.
type Kind string

const (
	KindContact Kind = "contact"
	KindEvent   Kind = "event"
	KindTodo    Kind = "todo"
	KindNote    Kind = "note"
)

// Timestamped reports whether stores keep a native modification time for
// items of the kind. Notes carry none.
func (k Kind) Timestamped() bool {
	switch k {
	case KindContact, KindEvent, KindTodo:
		return true
	default:
		return false
	}
}

// Item is a single entity of the external data store (a contact, an event,
// a to-do or a note).
//
// The store owns item content. The reconciliation engine only reads items
// during change detection and writes them through the store when a remote
// change is committed.
type Item struct {
	// ID is the store-assigned identifier, stable across sessions.
	ID string `json:"id"`

	// Kind is the record format of the item.
	Kind Kind `json:"kind"`

	// Summary is the display line of the item (formatted name, event
	// summary, note title).
	Summary string `json:"summary"`

	// Body is the free-form text of the item (note text, description).
	Body string `json:"body,omitempty"`

	// Categories is the ordered set of labels used by the category filter.
	Categories []string `json:"categories,omitempty"`

	// LastModified is the native modification timestamp reported by the
	// store. The zero value means the store has no timestamp for the item.
	LastModified time.Time `json:"last_modified"`

	// Payload is the serialized record (vCard, iCalendar or plain text).
	Payload []byte `json:"payload,omitempty"`
}

// HasCategory reports whether the item carries the given label.
// Comparison is exact and case-sensitive.
func (i Item) HasCategory(label string) bool {
	for _, c := range i.Categories {
		if c == label {
			return true
		}
	}
	return false
}

// AddCategories appends every label of labels the item does not carry yet,
// preserving order.
func (i *Item) AddCategories(labels ...string) {
	for _, l := range labels {
		if !i.HasCategory(l) {
			i.Categories = append(i.Categories, l)
		}
	}
}
