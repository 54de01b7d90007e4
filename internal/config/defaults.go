package config

import "time"

const (
	defaultStateBackend   = "file"
	defaultStateDir       = "state"
	defaultItemStoreDSN   = "data"
	defaultHTTPAddress    = "localhost:8080"
	defaultRequestTimeout = 30 * time.Second
	defaultSyncInterval   = 5 * time.Minute
	defaultVersion        = "dev"
)

// setDefaults fills the fields no source provided.
func (cfg *StructuredConfig) setDefaults() {
	if cfg.App.Version == "" {
		cfg.App.Version = defaultVersion
	}
	if cfg.Storage.State.Backend == "" {
		cfg.Storage.State.Backend = defaultStateBackend
	}
	if cfg.Storage.State.Dir == "" {
		cfg.Storage.State.Dir = defaultStateDir
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = defaultItemStoreDSN
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Workers.SyncInterval == 0 {
		cfg.Workers.SyncInterval = defaultSyncInterval
	}
}
