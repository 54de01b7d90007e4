// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app assembles the pieces shared by the server and the mirror
// client: the enabled collections, the state repositories, the store
// handle registry and one session per collection.
package app

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pim-sync/internal/config"
	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/service"
	"github.com/MKhiriev/go-pim-sync/internal/state"
	"github.com/MKhiriev/go-pim-sync/internal/store"
	"github.com/MKhiriev/go-pim-sync/internal/utils"
	"github.com/MKhiriev/go-pim-sync/models"
)

type Runtime struct {
	Collections []models.Collection
	Services    *service.Services
	Handles     *store.Handles

	repos *state.Repositories
}

// NewRuntime builds the sessions of every enabled collection. The handle
// registry is created here once, so collections sharing a resource share
// its handle.
func NewRuntime(ctx context.Context, appCfg config.App, storage config.Storage, log *logger.Logger) (*Runtime, error) {
	collections, err := appCfg.CollectionSet()
	if err != nil {
		return nil, err
	}

	repos, err := state.NewRepositories(ctx, storage.State.Backend, storage.State.Dir, log)
	if err != nil {
		return nil, fmt.Errorf("open state repositories: %w", err)
	}

	opener := store.NewBackendOpener(storage.DB.DSN, models.ResourceKinds(collections), utils.NewUUIDGenerator(), log)
	handles := store.NewHandles(opener, log)

	services, err := service.NewServices(collections, handles, repos, appCfg, log)
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("create services: %w", err)
	}

	log.Info().
		Int("collections", len(collections)).
		Str("state_backend", storage.State.Backend).
		Msg("runtime ready")

	return &Runtime{
		Collections: collections,
		Services:    services,
		Handles:     handles,
		repos:       repos,
	}, nil
}

// Close releases the state repositories.
func (r *Runtime) Close() error {
	return r.repos.Close()
}
