// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Outcome is the coordinator's per-item verdict on a pushed mutation.
type Outcome string

const (
	// OutcomeAccepted means the server adopted the client mutation and
	// incremented its authoritative version.
	OutcomeAccepted Outcome = "accepted"

	// OutcomeSuperseded means the server had newer, non-overlapping
	// changes; the client change was merged in and the client should pull
	// to catch up. Not a conflict.
	OutcomeSuperseded Outcome = "superseded"

	// OutcomeConflicting means both sides mutated overlapping fields since
	// the last common version; the server snapshot is returned for
	// client-side resolution.
	OutcomeConflicting Outcome = "conflicting"
)

// PushItem is one pushed mutation on the wire.
type PushItem struct {
	// ID is the SyncItem id; stable across retries so the server can
	// deduplicate replays after a lost acknowledgment.
	ID string `json:"id"`

	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	Operation  Operation  `json:"operation"`

	// Diff carries only the fields changed since BaseVersion.
	Diff FieldDiff `json:"diff"`

	// BaseVersion is the server version the mutation was made against.
	BaseVersion int64 `json:"base_version"`

	// ClientVersion is the entity's local version counter, echoed back in
	// logs and diagnostics; the server never trusts it for ordering.
	ClientVersion int64 `json:"client_version"`

	// LocalSnapshot is the full entity at mutation time, needed by the
	// server to materialize creates and to hand back on conflicts.
	LocalSnapshot Entity `json:"local_snapshot"`
}

// PushRequest is the body of POST /api/sync/push.
type PushRequest struct {
	Items  []PushItem `json:"items"`
	Length int        `json:"length"`
}

// PushResult is the server's verdict on one pushed item.
type PushResult struct {
	ID      string  `json:"id"`
	Outcome Outcome `json:"outcome"`

	ServerVersion int64 `json:"server_version"`

	// ServerSnapshot is set only for conflicting outcomes.
	ServerSnapshot *Entity `json:"server_snapshot,omitempty"`

	ServerTimestamp time.Time `json:"server_timestamp"`
}

// PushResponse is the body returned by POST /api/sync/push.
type PushResponse struct {
	Results []PushResult `json:"results"`
	Length  int          `json:"length"`
}

// PullRequest asks for all change-log entries after SinceSeq.
type PullRequest struct {
	SinceSeq int64 `json:"since_seq"`
}

// PullResponse returns entries ordered by sequence number together with
// the new watermark (the highest sequence number included).
type PullResponse struct {
	Entries   []ChangeLogEntry `json:"entries"`
	Watermark int64            `json:"watermark"`
	Length    int              `json:"length"`
}

// BatchRequest combines push and pull in one round trip. Semantically
// equivalent to push followed by pull.
type BatchRequest struct {
	Push PushRequest `json:"push"`
	Pull PullRequest `json:"pull"`
}

// BatchResponse carries both halves of a batch round trip.
type BatchResponse struct {
	Push PushResponse `json:"push"`
	Pull PullResponse `json:"pull"`
}

// ResolveRequest submits a conflict resolution to the coordinator.
type ResolveRequest struct {
	ConflictID       string   `json:"conflict_id"`
	Strategy         Strategy `json:"strategy"`
	ResolvedSnapshot Entity   `json:"resolved_snapshot"`
}

// ResolveResponse acknowledges a resolution with the new server version.
type ResolveResponse struct {
	ConflictID    string `json:"conflict_id"`
	ServerVersion int64  `json:"server_version"`
}
