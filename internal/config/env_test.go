// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_FILTER_CATEGORIES": "Work,Family",
		"APP_COLLECTIONS":       "contacts,events",
		"APP_VERSION":           "1.2.3",

		"SERVER_ADDRESS":         "localhost:8080",
		"SERVER_REQUEST_TIMEOUT": "30s",

		"ADAPTER_ADDRESS":         "http://peer:8080",
		"ADAPTER_REQUEST_TIMEOUT": "10s",

		// Storage has nested prefixes: STORAGE_ + STATE_ / DB_
		"STORAGE_STATE_BACKEND": "sqlite",
		"STORAGE_STATE_DIR":     "/var/lib/pim/state",
		"STORAGE_DB_DSN":        "/var/lib/pim",

		"WORKERS_SYNC_INTERVAL": "2m",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, []string{"Work", "Family"}, cfg.App.FilterCategories)
	assert.Equal(t, []string{"contacts", "events"}, cfg.App.Collections)
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "http://peer:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 10*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "sqlite", cfg.Storage.State.Backend)
	assert.Equal(t, "/var/lib/pim/state", cfg.Storage.State.Dir)
	assert.Equal(t, "/var/lib/pim", cfg.Storage.DB.DSN)
	assert.Equal(t, 2*time.Minute, cfg.Workers.SyncInterval)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Empty(t, cfg.App.FilterCategories)
	assert.Empty(t, cfg.Storage.State.Dir)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{"SERVER_REQUEST_TIMEOUT": "not-a-duration"})

	err := parseEnv(&StructuredConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}
