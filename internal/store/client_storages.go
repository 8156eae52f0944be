// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-habit-sync/internal/config"
	"github.com/MKhiriev/go-habit-sync/internal/logger"
)

// ClientStorages groups all client-side repositories into a single value
// passed around the engine and scheduler.
type ClientStorages struct {
	// Entities is the Local Store and Change Tracker.
	Entities EntityStorage

	// SyncItems persists pending synchronization work.
	SyncItems SyncItemStorage

	// Conflicts persists conflict records until resolved.
	Conflicts ConflictStorage

	// Jobs persists scheduled background jobs.
	Jobs JobStorage
}

// NewClientStorages initialises the client storage layer: it opens the
// SQLite database at cfg.Path (creating the file if absent), applies the
// schema, and wires the repositories.
func NewClientStorages(cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Msg("creating client storages...")

	db, err := NewConnectSQLite(context.Background(), cfg, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	syncRepo := NewSyncItemRepository(db, log)
	if err = syncRepo.RecoverInFlight(context.Background()); err != nil {
		return nil, fmt.Errorf("recover in-flight sync items: %w", err)
	}

	return &ClientStorages{
		Entities:  NewEntityRepository(db, log),
		SyncItems: syncRepo,
		Conflicts: syncRepo,
		Jobs:      NewJobRepository(db, log),
	}, nil
}
