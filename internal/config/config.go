// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-pim-sync application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the synchronized collections and the category filter.
	App App `envPrefix:"APP_"`

	// Storage holds the sync state backend and the item store location.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address and timeout of the session API.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the address of the peer pulled by the mirror client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// FilterCategories narrows synchronization to items carrying at least
	// one of the labels. Empty means every item.
	// Env: APP_FILTER_CATEGORIES (comma separated)
	FilterCategories []string `env:"FILTER_CATEGORIES"`

	// Collections lists the enabled collections. Empty means all of
	// contacts, events, todos and notes.
	// Env: APP_COLLECTIONS (comma separated)
	Collections []string `env:"COLLECTIONS"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// State holds where state tables and anchors are persisted.
	State State `envPrefix:"STATE_"`

	// DB holds the item store settings.
	DB DB `envPrefix:"DB_"`
}

// State selects the persistence backend of state tables and anchors.
type State struct {
	// Backend is "file" (one JSON file per collection plus anchors.json)
	// or "sqlite" (state.db).
	// Env: STORAGE_STATE_BACKEND
	Backend string `env:"BACKEND"`

	// Dir is the directory holding the persisted state.
	// Env: STORAGE_STATE_DIR
	Dir string `env:"DIR"`
}

// DB holds the item store location.
type DB struct {
	// DSN is either "memory" or a directory that holds one sqlite database
	// per resource (addressbook.db, calendar.db, notes.db). A "memory" store
	// is only accepted together with in-memory state (sqlite backend, dir
	// "memory").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the outbound connection to a peer session API.
type Adapter struct {
	// HTTPAddress is the peer address, "host:port" or a full URL.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the period of the mirror job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
