package config

import (
	"fmt"
)

// ClientConfig is the configuration of the mirror client, assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains the enabled collections and the category filter.
	App App
	// Adapter contains the peer address and timeout.
	Adapter Adapter
	// Storage contains the local state and item store settings.
	Storage Storage
	// Workers contains background job settings.
	Workers Workers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App:     cfg.App,
		Adapter: cfg.Adapter,
		Storage: cfg.Storage,
		Workers: cfg.Workers,
	}
}
