// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-habit-sync/internal/config"
	"github.com/MKhiriev/go-habit-sync/internal/logger"
)

// Storages groups the server-side repositories.
type Storages struct {
	Coordinator CoordinatorStorage
}

// NewStorages initialises the coordinator storage layer: it connects to
// PostgreSQL, applies migrations, and wires the repositories.
func NewStorages(cfg config.ServerStorage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating server storages...")

	db, err := NewConnectPostgres(context.Background(), cfg, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	return &Storages{
		Coordinator: NewCoordinatorRepository(db, log),
	}, nil
}
