// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"time"
)

// EntityType identifies the domain kind of a synchronized record
// (e.g. "habit", "goal"). The sync engine treats entity payloads as
// opaque field maps; only the type and id are meaningful to it.
type EntityType string

const (
	EntityTypeHabit EntityType = "habit"
	EntityTypeGoal  EntityType = "goal"
)

// FieldValue is one field of an entity together with the source timestamp
// of its last mutation. The timestamp is what the field-level merge
// strategy compares, so it must reflect when the value was produced on the
// originating device, not when it was persisted or transmitted.
type FieldValue struct {
	// Value is the field content. Stored and transmitted as a string;
	// the sync layer never interprets it.
	Value string `json:"value"`

	// UpdatedAt is the source timestamp of the mutation that produced Value.
	UpdatedAt time.Time `json:"updated_at"`
}

// FieldDiff is the set of fields changed by one mutation, keyed by field
// name. A create operation carries the full field set; updates carry only
// the fields that actually changed.
type FieldDiff map[string]FieldValue

// Entity is a single synchronized domain record.
//
// Version is a per-entity counter incremented on every accepted local or
// remote mutation. ServerVersion is the last server-authoritative version
// this replica has applied or had acknowledged; it is the base the
// coordinator compares pushes against. Deleted is the tombstone flag:
// deletions are soft until the server acknowledges them, at which point
// the record may be physically purged.
type Entity struct {
	Type EntityType `json:"entity_type"`
	ID   string     `json:"entity_id"`

	Fields FieldDiff `json:"fields"`

	Version       int64 `json:"version"`
	ServerVersion int64 `json:"server_version"`
	Deleted       bool  `json:"deleted"`

	// Checksum is the hex SHA-256 of the canonical field encoding,
	// recomputed on every write and verified on read.
	Checksum string `json:"checksum"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy of the entity. Fields maps must never be
// shared between the in-memory working copy and persisted snapshots.
func (e Entity) Clone() Entity {
	cp := e
	cp.Fields = make(FieldDiff, len(e.Fields))
	for name, fv := range e.Fields {
		cp.Fields[name] = fv
	}
	return cp
}

// Apply overlays diff onto the entity's fields, replacing existing values
// and adding missing ones. The caller is responsible for bumping Version
// and recomputing Checksum afterwards.
func (e *Entity) Apply(diff FieldDiff) {
	if e.Fields == nil {
		e.Fields = make(FieldDiff, len(diff))
	}
	for name, fv := range diff {
		e.Fields[name] = fv
	}
}

// DiffAgainst returns the fields of e that differ from base (changed value
// or absent from base). Used to build the payload diff attached to a push
// so that unchanged fields are not re-transmitted.
func (e Entity) DiffAgainst(base FieldDiff) FieldDiff {
	diff := make(FieldDiff)
	for name, fv := range e.Fields {
		if old, ok := base[name]; !ok || old.Value != fv.Value {
			diff[name] = fv
		}
	}
	return diff
}

// ComputeChecksum returns the hex SHA-256 over the canonical encoding of
// the entity's fields and tombstone flag. Field names are sorted so the
// checksum is independent of map iteration order; two replicas holding
// the same materialized state produce the same checksum.
func (e Entity) ComputeChecksum() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		fv := e.Fields[name]
		h.Write([]byte(name))
		h.Write([]byte{0})
		h.Write([]byte(fv.Value))
		h.Write([]byte{0})
		h.Write([]byte(fv.UpdatedAt.UTC().Format(time.RFC3339Nano)))
		h.Write([]byte{0})
	}
	if e.Deleted {
		h.Write([]byte("tombstone"))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// EntityKey uniquely addresses one entity across both replicas.
type EntityKey struct {
	Type EntityType
	ID   string
}

// Key returns the entity's addressing key.
func (e Entity) Key() EntityKey {
	return EntityKey{Type: e.Type, ID: e.ID}
}
