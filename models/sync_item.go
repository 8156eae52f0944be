// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Operation is the kind of mutation a SyncItem carries.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// SyncStatus is the lifecycle state of a SyncItem.
//
// At most one item per entity may be in StatusSyncing at a time; a local
// mutation made while its entity is syncing enqueues a new pending item
// instead of blocking. Completed items are eventually pruned. Failed items
// past MaxRetries stay visible until explicitly re-triggered.
type SyncStatus string

const (
	StatusPending   SyncStatus = "pending"
	StatusSyncing   SyncStatus = "syncing"
	StatusCompleted SyncStatus = "completed"
	StatusFailed    SyncStatus = "failed"
	StatusConflict  SyncStatus = "conflict"
)

// Priority orders SyncItems and background jobs. Higher values are
// dequeued first; within a tier ordering is FIFO.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
	PriorityCritical
)

// String returns the lowercase tier name, used in logs and persisted rows.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	default:
		return "normal"
	}
}

// SyncItem is one pending unit of synchronization work: a single recorded
// mutation of a single entity awaiting acknowledgment by the coordinator.
//
// ID is client-generated and stable across retries, which is what lets the
// coordinator deduplicate a replayed push after a lost acknowledgment.
type SyncItem struct {
	ID string `json:"id"`

	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	Operation  Operation  `json:"operation"`

	// LocalData is the entity snapshot at mutation time.
	LocalData Entity `json:"local_data"`

	// ServerData is the last-known remote snapshot; zero until the entity
	// has been synced at least once.
	ServerData *Entity `json:"server_data,omitempty"`

	LocalTimestamp  time.Time  `json:"local_timestamp"`
	ServerTimestamp *time.Time `json:"server_timestamp,omitempty"`

	Status   SyncStatus `json:"status"`
	Priority Priority   `json:"priority"`

	RetryCount int `json:"retry_count"`
	MaxRetries int `json:"max_retries"`

	// BaseVersion is the server version the local mutation was made
	// against, i.e. the entity's ServerVersion at mutation time. The
	// coordinator uses it to detect intervening remote writes.
	BaseVersion int64 `json:"base_version"`

	// Diff holds the fields changed by this mutation.
	Diff FieldDiff `json:"diff"`

	// Seq is the change-log sequence number assigned to the mutation,
	// used to acknowledge and later compact the local change log.
	Seq int64 `json:"seq"`
}

// RetriesExhausted reports whether the item must not be retried again.
func (s SyncItem) RetriesExhausted() bool {
	return s.RetryCount >= s.MaxRetries
}
