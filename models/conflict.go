// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Strategy selects how a detected conflict is resolved.
type Strategy string

const (
	// StrategyServerWins discards local changes and adopts the server
	// snapshot. Suitable for low-stakes derived data.
	StrategyServerWins Strategy = "server-wins"

	// StrategyClientWins force-pushes the local snapshot, overwriting the
	// server. Used when the user has explicitly confirmed intent.
	StrategyClientWins Strategy = "client-wins"

	// StrategyMerge performs field-level resolution: matching values are
	// kept, one-sided fields are kept, and a field both sides changed is
	// taken from the side with the later source timestamp.
	StrategyMerge Strategy = "merge"

	// StrategyManual defers resolution; the ConflictRecord stays open
	// until an external decision is supplied.
	StrategyManual Strategy = "manual"
)

// ConflictRecord is created when the engine detects divergent entity
// versions. It holds both candidate snapshots and, once resolved, the
// strategy used and the resulting entity. Records persist until
// explicitly resolved; they never auto-expire.
type ConflictRecord struct {
	ID         string `json:"id"`
	SyncItemID string `json:"sync_item_id"`

	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`

	Local  Entity `json:"local"`
	Remote Entity `json:"remote"`

	Strategy Strategy `json:"strategy"`

	Resolved   bool    `json:"resolved"`
	Resolution *Entity `json:"resolution,omitempty"`

	DetectedAt time.Time  `json:"detected_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}
