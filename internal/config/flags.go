// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags into a partial
// [StructuredConfig].
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d coordinator database DSN
//	-local-db client SQLite database path
//	-server-url coordinator base URL for the client
//	-c/-config json file path with configs
//	-token-sign-key token validation key
//	-token-issuer expected token issuer name
//	-sync-interval periodic sync interval (e.g. "15m")
//	-batch-size push batch size
//	-request-timeout outbound request timeout (e.g. "15s")
func ParseFlags() *StructuredConfig {
	var (
		serverAddress  string
		databaseDSN    string
		localDBPath    string
		serverURL      string
		jsonConfigPath string
		tokenSignKey   string
		tokenIssuer    string
		syncInterval   time.Duration
		batchSize      int
		requestTimeout time.Duration
	)

	flag.StringVar(&serverAddress, "a", "", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Coordinator database DSN")
	flag.StringVar(&localDBPath, "local-db", "", "Client SQLite database path")
	flag.StringVar(&serverURL, "server-url", "", "Coordinator base URL")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token validation key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Expected token issuer")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Periodic sync interval (e.g. 15m)")
	flag.IntVar(&batchSize, "batch-size", 0, "Push batch size")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Outbound request timeout (e.g. 15s)")

	flag.Parse()

	cfg := &StructuredConfig{JSONFilePath: jsonConfigPath}
	cfg.Server.HTTPAddress = serverAddress
	cfg.Storage.DB.DSN = databaseDSN
	cfg.Storage.ClientDB.Path = localDBPath
	cfg.Adapter.ServerURL = serverURL
	cfg.Adapter.RequestTimeout = requestTimeout
	cfg.App.TokenSignKey = tokenSignKey
	cfg.App.TokenIssuer = tokenIssuer
	cfg.Workers.SyncInterval = syncInterval
	cfg.Sync.BatchSize = batchSize

	return cfg
}
