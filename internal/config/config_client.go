// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// ServerURL is the coordinator's base URL.
	ServerURL string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientStorage holds the client's local database settings.
type ClientStorage struct {
	// Path is the SQLite database file path.
	Path string
}

// ClientSync holds the sync engine's tuning knobs.
type ClientSync struct {
	BatchSize   int
	MaxRetries  int
	BackoffBase time.Duration
	BackoffCap  time.Duration
}

// ClientWorkers holds background scheduler settings.
type ClientWorkers struct {
	SyncInterval time.Duration
	Concurrency  int
	JobTimeout   time.Duration
}

// ClientConfig is the client-side view of the merged configuration.
type ClientConfig struct {
	Adapter ClientAdapter
	Storage ClientStorage
	Sync    ClientSync
	Workers ClientWorkers
}

// GetClientConfig builds and validates the client view of the merged
// structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			ServerURL:      cfg.Adapter.ServerURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{Path: cfg.Storage.ClientDB.Path},
		Sync: ClientSync{
			BatchSize:   cfg.Sync.BatchSize,
			MaxRetries:  cfg.Sync.MaxRetries,
			BackoffBase: cfg.Sync.BackoffBase,
			BackoffCap:  cfg.Sync.BackoffCap,
		},
		Workers: ClientWorkers{
			SyncInterval: cfg.Workers.SyncInterval,
			Concurrency:  cfg.Workers.Concurrency,
			JobTimeout:   cfg.Workers.JobTimeout,
		},
	}

	return clientCfg, clientCfg.validate()
}

// ServerApp holds application-level settings needed by the coordinator.
type ServerApp struct {
	TokenSignKey string
	TokenIssuer  string
	Version      string
}

// ServerStorage holds the coordinator's database settings.
type ServerStorage struct {
	DSN string
}

// ServerHTTP holds inbound listener settings.
type ServerHTTP struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ServerConfig is the coordinator-side view of the merged configuration.
type ServerConfig struct {
	App     ServerApp
	Storage ServerStorage
	Server  ServerHTTP
}

// GetServerConfig builds and validates the coordinator view of the merged
// structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		App: ServerApp{
			TokenSignKey: cfg.App.TokenSignKey,
			TokenIssuer:  cfg.App.TokenIssuer,
			Version:      cfg.App.Version,
		},
		Storage: ServerStorage{DSN: cfg.Storage.DB.DSN},
		Server: ServerHTTP{
			HTTPAddress:    cfg.Server.HTTPAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
	}

	return serverCfg, serverCfg.validate()
}
