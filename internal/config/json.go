// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration is a time.Duration that unmarshals from JSON strings like
// "15m" or "30s" in addition to raw nanosecond numbers.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		*d = Duration(time.Duration(v))
		return nil
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration value %v", raw)
	}
}

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations. It exists so the JSON file format can evolve
// independently of env/flag parsing.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
		Version      string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		ClientDB struct {
			Path string `json:"path"`
		} `json:"client_db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		ServerURL      string   `json:"server_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Sync struct {
		BatchSize   int      `json:"batch_size"`
		MaxRetries  int      `json:"max_retries"`
		BackoffBase Duration `json:"backoff_base"`
		BackoffCap  Duration `json:"backoff_cap"`
	} `json:"sync,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
		Concurrency  int      `json:"concurrency"`
		JobTimeout   Duration `json:"job_timeout"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err = json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{}
	cfg.App.TokenSignKey = jsonCfg.App.TokenSignKey
	cfg.App.TokenIssuer = jsonCfg.App.TokenIssuer
	cfg.App.Version = jsonCfg.App.Version
	cfg.Storage.DB.DSN = jsonCfg.Storage.DB.DSN
	cfg.Storage.ClientDB.Path = jsonCfg.Storage.ClientDB.Path
	cfg.Server.HTTPAddress = jsonCfg.Server.HTTPAddress
	cfg.Server.RequestTimeout = time.Duration(jsonCfg.Server.RequestTimeout)
	cfg.Adapter.ServerURL = jsonCfg.Adapter.ServerURL
	cfg.Adapter.RequestTimeout = time.Duration(jsonCfg.Adapter.RequestTimeout)
	cfg.Sync.BatchSize = jsonCfg.Sync.BatchSize
	cfg.Sync.MaxRetries = jsonCfg.Sync.MaxRetries
	cfg.Sync.BackoffBase = time.Duration(jsonCfg.Sync.BackoffBase)
	cfg.Sync.BackoffCap = time.Duration(jsonCfg.Sync.BackoffCap)
	cfg.Workers.SyncInterval = time.Duration(jsonCfg.Workers.SyncInterval)
	cfg.Workers.Concurrency = jsonCfg.Workers.Concurrency
	cfg.Workers.JobTimeout = time.Duration(jsonCfg.Workers.JobTimeout)

	return cfg, nil
}
