// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ChangeLogEntry is one immutable, append-only record of an accepted
// mutation. Entries are never updated in place; the log is only appended
// to and eventually compacted once the server has acknowledged the
// entries (client side) or all clients have consumed them (server side).
//
// Seq is assigned by the owning store and is strictly monotonic per
// replica (per user on the server). Applying entries in Seq order is what
// preserves causal ordering during delta sync.
type ChangeLogEntry struct {
	Seq int64 `json:"seq"`

	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	Operation  Operation  `json:"operation"`

	// Diff holds the fields changed by the mutation. For creates it is the
	// full field set; for deletes it is empty (the tombstone flag travels
	// in Operation).
	Diff FieldDiff `json:"diff"`

	// Version is the entity version produced by the mutation on the
	// replica that recorded the entry.
	Version int64 `json:"version"`

	At time.Time `json:"at"`
}
