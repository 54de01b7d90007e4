package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSONFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON_Success(t *testing.T) {
	path := writeJSONFile(t, `{
		"app": {"filter_categories": ["Work"], "collections": ["notes"], "version": "0.9.0"},
		"storage": {"state": {"backend": "sqlite", "dir": "/tmp/state"}, "db": {"dsn": "memory"}},
		"server": {"http_address": "0.0.0.0:8080", "request_timeout": "15s"},
		"adapter": {"http_address": "http://peer:8080", "request_timeout": 5000000000},
		"workers": {"sync_interval": "10m"}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Work"}, cfg.App.FilterCategories)
	assert.Equal(t, []string{"notes"}, cfg.App.Collections)
	assert.Equal(t, "0.9.0", cfg.App.Version)
	assert.Equal(t, "sqlite", cfg.Storage.State.Backend)
	assert.Equal(t, "/tmp/state", cfg.Storage.State.Dir)
	assert.Equal(t, "memory", cfg.Storage.DB.DSN)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 10*time.Minute, cfg.Workers.SyncInterval)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	_, err := parseJSON(writeJSONFile(t, `{"app":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	_, err := parseJSON(writeJSONFile(t, `{"workers": {"sync_interval": "often"}}`))
	assert.Error(t, err)
}

func TestParseJSON_EmptyObject(t *testing.T) {
	cfg, err := parseJSON(writeJSONFile(t, `{}`))
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}
