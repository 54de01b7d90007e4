// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// Well-known collection names.
const (
	CollectionContacts = "contacts"
	CollectionEvents   = "events"
	CollectionTodos    = "todos"
	CollectionNotes    = "notes"
)

// Collection describes one synchronizable collection: its record kind, the
// physical resource (store handle) it lives in, and per-collection
// enumeration rules.
type Collection struct {
	// Name is the collection identifier used for state files, anchors and
	// transport routes.
	Name string

	// Kind is the record format of the collection.
	Kind Kind

	// Resource names the store handle backing the collection. Collections
	// with equal resources share one reference-counted handle.
	Resource string

	// Filter is the category filter applied to enumeration and commits.
	Filter CategoryFilter

	// SkipIDSubstrings excludes items whose id contains any of the
	// substrings from enumeration.
	SkipIDSubstrings []string
}

// DefaultCollections returns the standard PIM collections. Events and to-dos
// share the calendar resource.
func DefaultCollections(filter CategoryFilter) []Collection {
	return []Collection{
		{Name: CollectionContacts, Kind: KindContact, Resource: "addressbook", Filter: filter},
		{
			Name:             CollectionEvents,
			Kind:             KindEvent,
			Resource:         "calendar",
			Filter:           filter,
			SkipIDSubstrings: []string{"KABC_Birthday", "KABC_Anniversary"},
		},
		{Name: CollectionTodos, Kind: KindTodo, Resource: "calendar", Filter: filter},
		// notes carry no categories, so the filter does not apply to them
		{Name: CollectionNotes, Kind: KindNote, Resource: "notes"},
	}
}

// ResourceKinds groups the kinds of collections by the resource they live
// in, preserving first-seen order.
func ResourceKinds(collections []Collection) map[string][]Kind {
	kinds := make(map[string][]Kind)
	for _, c := range collections {
		seen := false
		for _, k := range kinds[c.Resource] {
			if k == c.Kind {
				seen = true
				break
			}
		}
		if !seen {
			kinds[c.Resource] = append(kinds[c.Resource], c.Kind)
		}
	}
	return kinds
}

// Skips reports whether an item id is excluded from enumeration.
func (c Collection) Skips(id string) bool {
	for _, s := range c.SkipIDSubstrings {
		if s != "" && strings.Contains(id, s) {
			return true
		}
	}
	return false
}
