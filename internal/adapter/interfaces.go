// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the HTTP session API: it drives a
// remote peer's collection sessions over REST.
//
// Error statuses returned by the peer are mapped back to the service
// sentinels by mapHTTPError, so callers use [errors.Is] the same way for a
// remote session as for a local one (e.g. [service.ErrNotFound] for 404).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-pim-sync/internal/service"
	"github.com/MKhiriev/go-pim-sync/models"
)

// SessionAdapter reaches the sessions of a remote peer. Besides the pull
// steps of [service.Source] it can push a change and query the peer's
// version.
type SessionAdapter interface {
	service.Source

	// Commit sends one change to the peer and returns it as the peer
	// applied it.
	Commit(ctx context.Context, collection string, change models.ChangeRecord) (models.ChangeRecord, error)

	// Version returns the peer's application version.
	Version(ctx context.Context) (string, error)
}
