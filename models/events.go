// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncEventType classifies entries on the engine's event stream.
type SyncEventType string

const (
	SyncEventStarted   SyncEventType = "started"
	SyncEventCompleted SyncEventType = "completed"
	SyncEventConflict  SyncEventType = "conflict"
	SyncEventFailed    SyncEventType = "failed"
)

// SyncEvent is one notification on the engine's event stream. UI
// collaborators subscribe to drive the non-blocking status indicator;
// nothing in the engine waits on subscribers.
type SyncEvent struct {
	Type SyncEventType `json:"type"`

	EntityType EntityType `json:"entity_type,omitempty"`
	EntityID   string     `json:"entity_id,omitempty"`
	SyncItemID string     `json:"sync_item_id,omitempty"`

	Err string `json:"error,omitempty"`

	At time.Time `json:"at"`
}

// SyncSummary is returned by a full sync pass.
type SyncSummary struct {
	Pushed    int `json:"pushed"`
	Pulled    int `json:"pulled"`
	Conflicts int `json:"conflicts"`
	Failed    int `json:"failed"`
}

// SyncStatusIndicator is the coarse state exposed to UI collaborators.
// Recoverable conditions never escalate past conflict-pending; a modal
// interruption is never warranted by any of these states.
type SyncStatusIndicator string

const (
	SyncStatusIdle            SyncStatusIndicator = "idle"
	SyncStatusSyncing         SyncStatusIndicator = "syncing"
	SyncStatusConflictPending SyncStatusIndicator = "conflict-pending"
	SyncStatusError           SyncStatusIndicator = "error"
)
