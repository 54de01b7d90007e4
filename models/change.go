// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ChangeKind classifies an item relative to the last completed session.
type ChangeKind string

const (
	ChangeUnmodified ChangeKind = "unmodified"
	ChangeAdded      ChangeKind = "added"
	ChangeModified   ChangeKind = "modified"
	ChangeDeleted    ChangeKind = "deleted"
)

// ChangeRecord is a transient description of one change crossing the
// session boundary. Records are produced during enumeration and consumed by
// the caller, or received from the caller and applied by a commit.
type ChangeRecord struct {
	// ID is the item identifier. It may be empty for an added record, in
	// which case the store assigns one during commit.
	ID string `json:"id"`

	// Kind is the change classification.
	Kind ChangeKind `json:"kind"`

	// Payload is the serialized record. Absent for deletions.
	Payload []byte `json:"payload,omitempty"`

	// Fingerprint is the content fingerprint of the item the record
	// describes. Empty for deletions.
	Fingerprint string `json:"fingerprint,omitempty"`
}
