// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-habit-sync/internal/config"
	"github.com/MKhiriev/go-habit-sync/internal/logger"
)

// DB wraps a *sql.DB together with the application logger. Both the SQLite
// client store and the PostgreSQL coordinator store embed it.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// NewConnectSQLite opens (creating if necessary) the client's local SQLite
// database and applies the schema. Foreign keys and WAL journaling are
// enabled via the DSN so concurrent readers never block the writer.
func NewConnectSQLite(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*DB, error) {
	if err := createLocalDBFileIfNotExists(cfg.Path); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file: %w", err)
	}

	conn, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	db := &DB{DB: conn, logger: log}

	if err = db.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return db, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}

// Migrate applies the client schema. Statements are idempotent
// (CREATE ... IF NOT EXISTS) so startup can always run them.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range clientSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply client schema: %w", err)
		}
	}

	return nil
}

// clientSchema is the persisted local state layout: entity rows keyed by
// (type, id) with version and tombstone columns, an append-only change log
// keyed by a monotonically increasing sequence number, pending sync items,
// open conflict records, persisted jobs, and a small kv table holding the
// pull watermark.
var clientSchema = []string{
	`CREATE TABLE IF NOT EXISTS entities (
		entity_type    TEXT NOT NULL,
		entity_id      TEXT NOT NULL,
		fields         TEXT NOT NULL DEFAULT '{}',
		version        INTEGER NOT NULL DEFAULT 0,
		server_version INTEGER NOT NULL DEFAULT 0,
		deleted        INTEGER NOT NULL DEFAULT 0,
		checksum       TEXT NOT NULL DEFAULT '',
		updated_at     TIMESTAMP NOT NULL,
		PRIMARY KEY (entity_type, entity_id)
	);`,

	`CREATE TABLE IF NOT EXISTS change_log (
		seq         INTEGER PRIMARY KEY AUTOINCREMENT,
		entity_type TEXT NOT NULL,
		entity_id   TEXT NOT NULL,
		operation   TEXT NOT NULL,
		diff        TEXT NOT NULL DEFAULT '{}',
		version     INTEGER NOT NULL,
		created_at  TIMESTAMP NOT NULL
	);`,

	`CREATE TABLE IF NOT EXISTS sync_items (
		id          TEXT PRIMARY KEY,
		entity_type TEXT NOT NULL,
		entity_id   TEXT NOT NULL,
		operation   TEXT NOT NULL,
		local_data  TEXT NOT NULL,
		server_data TEXT,
		local_ts    TIMESTAMP NOT NULL,
		server_ts   TIMESTAMP,
		status      TEXT NOT NULL,
		priority    INTEGER NOT NULL DEFAULT 1,
		retry_count INTEGER NOT NULL DEFAULT 0,
		max_retries INTEGER NOT NULL DEFAULT 10,
		base_version INTEGER NOT NULL DEFAULT 0,
		diff        TEXT NOT NULL DEFAULT '{}',
		seq         INTEGER NOT NULL DEFAULT 0
	);`,

	`CREATE INDEX IF NOT EXISTS idx_sync_items_entity
		ON sync_items (entity_type, entity_id, status);`,

	`CREATE TABLE IF NOT EXISTS conflicts (
		id           TEXT PRIMARY KEY,
		sync_item_id TEXT NOT NULL,
		entity_type  TEXT NOT NULL,
		entity_id    TEXT NOT NULL,
		local_data   TEXT NOT NULL,
		remote_data  TEXT NOT NULL,
		strategy     TEXT NOT NULL,
		resolved     INTEGER NOT NULL DEFAULT 0,
		resolution   TEXT,
		detected_at  TIMESTAMP NOT NULL,
		resolved_at  TIMESTAMP
	);`,

	`CREATE TABLE IF NOT EXISTS jobs (
		id              TEXT PRIMARY KEY,
		type            TEXT NOT NULL,
		params          TEXT NOT NULL DEFAULT '{}',
		constraints     TEXT NOT NULL DEFAULT '{}',
		priority        INTEGER NOT NULL DEFAULT 1,
		max_retries     INTEGER NOT NULL DEFAULT 3,
		retry_count     INTEGER NOT NULL DEFAULT 0,
		retry_backoff   INTEGER NOT NULL DEFAULT 0,
		scheduled_for   TIMESTAMP NOT NULL,
		repeat_interval INTEGER NOT NULL DEFAULT 0,
		state           TEXT NOT NULL
	);`,

	`CREATE TABLE IF NOT EXISTS sync_state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`,
}
