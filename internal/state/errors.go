// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package state

import "errors"

var (
	// ErrInvalidCollection is returned when a collection name cannot be used
	// as a persistence key (empty, or containing path separators).
	ErrInvalidCollection = errors.New("invalid collection name")

	// ErrCorruptState is returned when persisted state exists but cannot be
	// decoded.
	ErrCorruptState = errors.New("persisted sync state is corrupt")

	// ErrUnknownBackend is returned by [NewRepositories] for an unsupported
	// backend name.
	ErrUnknownBackend = errors.New("unknown state backend")
)
