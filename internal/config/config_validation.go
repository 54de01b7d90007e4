// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"path/filepath"
)

const memoryLocation = "memory"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if _, err := cfg.App.CollectionSet(); err != nil {
		return err
	}

	return validateStorage(cfg.Storage)
}

func (cfg *ClientConfig) validate() error {
	if _, err := cfg.App.CollectionSet(); err != nil {
		return err
	}

	if err := validateStorage(cfg.Storage); err != nil {
		return err
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func validateStorage(s Storage) error {
	switch s.State.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("%w: unknown state backend %q", ErrInvalidStorageConfigs, s.State.Backend)
	}

	if s.State.Dir == "" || filepath.Clean(s.State.Dir) == string(filepath.Separator) {
		return fmt.Errorf("%w: state dir %q", ErrInvalidStorageConfigs, s.State.Dir)
	}

	if s.DB.DSN == "" {
		return fmt.Errorf("%w: empty item store dsn", ErrInvalidStorageConfigs)
	}

	// an in-memory store starts empty on every run, so persisted anchors
	// would report every synced item as deleted
	if isMemoryLocation(s.DB.DSN) && !(s.State.Backend == "sqlite" && isMemoryLocation(s.State.Dir)) {
		return fmt.Errorf("%w: in-memory item store requires in-memory state", ErrInvalidStorageConfigs)
	}

	return nil
}

func isMemoryLocation(s string) bool {
	return s == memoryLocation || s == ":memory:"
}
