// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-habit-sync application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token validation
	// parameters and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the persistence backends: the
	// coordinator's PostgreSQL database and the client's SQLite file.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the
	// coordinator's HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds settings for the client's outbound HTTP transport.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Sync holds tuning knobs for the sync engine: batch size, retry
	// limits, and backoff parameters.
	Sync Sync `envPrefix:"SYNC_"`

	// Workers holds settings for the background job scheduler.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file,
	// merged on top of env and flag values when non-empty.
	// Populated via the CONFIG environment variable or the -c/-config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to validate bearer JWT tokens
	// issued by the external authentication service.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim of accepted tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// Version is the semantic version of the running application,
	// exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all persistence backends.
type Storage struct {
	// DB holds the coordinator's PostgreSQL connection settings.
	DB DB `envPrefix:"DB_"`

	// ClientDB holds the client's local SQLite settings.
	ClientDB ClientDB `envPrefix:"CLIENT_DB_"`
}

// DB contains relational database connection settings.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// ClientDB contains the client's local database settings.
type ClientDB struct {
	// Path is the SQLite database file path.
	// Env: STORAGE_CLIENT_DB_PATH
	Path string `env:"PATH"`
}

// Server holds network and timeout settings for the coordinator.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on,
	// in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the handling of a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds settings for the client's outbound transport.
type Adapter struct {
	// ServerURL is the base URL of the sync coordinator.
	// Env: ADAPTER_SERVER_URL
	ServerURL string `env:"SERVER_URL"`

	// RequestTimeout is the per-request timeout of the HTTP client.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Sync holds tuning knobs for the sync engine.
type Sync struct {
	// BatchSize bounds how many pending items are pushed per round trip.
	// Correctness does not depend on it; it exists for bandwidth control.
	// Env: SYNC_BATCH_SIZE
	BatchSize int `env:"BATCH_SIZE"`

	// MaxRetries caps automatic retries of a failed SyncItem.
	// Env: SYNC_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`

	// BackoffBase is the initial retry delay; doubled per attempt.
	// Env: SYNC_BACKOFF_BASE
	BackoffBase time.Duration `env:"BACKOFF_BASE"`

	// BackoffCap bounds the retry delay growth.
	// Env: SYNC_BACKOFF_CAP
	BackoffCap time.Duration `env:"BACKOFF_CAP"`
}

// Workers holds background job scheduler settings.
type Workers struct {
	// SyncInterval is the base interval of the periodic sync job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// Concurrency bounds simultaneous job execution.
	// Env: WORKERS_CONCURRENCY
	Concurrency int `env:"CONCURRENCY"`

	// JobTimeout is the hard per-job execution timeout.
	// Env: WORKERS_JOB_TIMEOUT
	JobTimeout time.Duration `env:"JOB_TIMEOUT"`
}

// GetStructuredConfig assembles the final configuration by merging, in
// priority order: environment variables, command-line flags, and the
// optional JSON file named by either of the first two sources.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
