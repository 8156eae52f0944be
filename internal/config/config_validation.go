// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Defaults applied after merging all sources. Zero means "unset" for every
// tunable, so defaults never shadow an explicit value.
const (
	defaultBatchSize      = 50
	defaultMaxRetries     = 10
	defaultBackoffBase    = time.Second
	defaultBackoffCap     = 5 * time.Minute
	defaultSyncInterval   = 15 * time.Minute
	defaultConcurrency    = 3
	defaultJobTimeout     = 30 * time.Second
	defaultRequestTimeout = 15 * time.Second
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Sync.BatchSize <= 0 {
		cfg.Sync.BatchSize = defaultBatchSize
	}
	if cfg.Sync.MaxRetries <= 0 {
		cfg.Sync.MaxRetries = defaultMaxRetries
	}
	if cfg.Sync.BackoffBase <= 0 {
		cfg.Sync.BackoffBase = defaultBackoffBase
	}
	if cfg.Sync.BackoffCap <= 0 {
		cfg.Sync.BackoffCap = defaultBackoffCap
	}
	if cfg.Workers.SyncInterval <= 0 {
		cfg.Workers.SyncInterval = defaultSyncInterval
	}
	if cfg.Workers.Concurrency <= 0 {
		cfg.Workers.Concurrency = defaultConcurrency
	}
	if cfg.Workers.JobTimeout <= 0 {
		cfg.Workers.JobTimeout = defaultJobTimeout
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
}

// validate checks the merged [StructuredConfig] before it is used at
// startup. Only cross-cutting invariants live here; binary-specific checks
// are performed by the client/server config views.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.Path == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Adapter.ServerURL == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Workers.SyncInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Storage.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}
	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
