// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-habit-sync/models"
)

// Mutation describes one local create/update/delete to be recorded by
// [EntityStorage.RecordMutation]. Delete marks the entity as tombstoned;
// Diff is ignored in that case.
type Mutation struct {
	EntityType models.EntityType
	EntityID   string
	Diff       models.FieldDiff
	Delete     bool

	Priority   models.Priority
	MaxRetries int

	// At is the source timestamp of the mutation on this device.
	At time.Time
}

// EntityStorage is the client's Local Store and Change Tracker combined:
// entity records, the append-only change log, and the pull watermark.
//
// Entities are mutated only through RecordMutation (local edits) and
// ApplyRemote (pulled deltas); both paths atomically maintain the version
// counter and, for local edits, the change log, in a single transaction.
type EntityStorage interface {
	// RecordMutation applies a local mutation: it bumps the entity
	// version, recomputes the checksum, appends exactly one ChangeLogEntry,
	// and creates or merges a pending SyncItem, all in one transaction.
	RecordMutation(ctx context.Context, mut Mutation) (models.Entity, models.SyncItem, error)

	// Get returns the entity, verifying its checksum and that its version
	// has not regressed versus the last value seen by this process.
	// Returns ErrStorageCorruption on either violation.
	Get(ctx context.Context, entityType models.EntityType, entityID string) (models.Entity, error)

	// Query returns all live entities of the given type matching pred;
	// a nil pred matches everything. Tombstoned records are excluded.
	Query(ctx context.Context, entityType models.EntityType, pred func(models.Entity) bool) ([]models.Entity, error)

	// ApplyRemote applies a pulled ChangeLogEntry to the local replica.
	// Entries whose server version is not newer than the entity's last
	// applied server version are skipped, which makes replays idempotent.
	// Remote application appends no local change-log entry.
	ApplyRemote(ctx context.Context, entry models.ChangeLogEntry) (models.Entity, error)

	// AckServerVersion records that the server has adopted the entity at
	// the given authoritative version (after an accepted push).
	AckServerVersion(ctx context.Context, entityType models.EntityType, entityID string, serverVersion int64) error

	// Purge physically removes a tombstoned entity after the server has
	// acknowledged the deletion.
	Purge(ctx context.Context, entityType models.EntityType, entityID string) error

	// Discard drops the local copy of an entity without recording a
	// change. Used for the corruption recovery path (full per-entity
	// resync: discard, then re-pull).
	Discard(ctx context.Context, entityType models.EntityType, entityID string) error

	// ChangesSince returns local change-log entries with Seq > seq in
	// ascending order.
	ChangesSince(ctx context.Context, seq int64) ([]models.ChangeLogEntry, error)

	// CompactChangeLog removes entries with Seq <= uptoSeq. Only entries
	// already acknowledged by the server may be compacted.
	CompactChangeLog(ctx context.Context, uptoSeq int64) error

	// Watermark returns the last server change-log sequence number this
	// client has consumed; SetWatermark advances it.
	Watermark(ctx context.Context) (int64, error)
	SetWatermark(ctx context.Context, seq int64) error
}

// SyncItemStorage persists pending synchronization work so that it
// survives process restarts.
type SyncItemStorage interface {
	SaveItem(ctx context.Context, item models.SyncItem) error
	GetItem(ctx context.Context, id string) (models.SyncItem, error)

	// PendingItems returns items in StatusPending ordered by priority
	// (critical first) then by change-log sequence (FIFO within a tier).
	PendingItems(ctx context.Context) ([]models.SyncItem, error)

	// FailedItems returns items whose retries are exhausted; they are
	// surfaced, never silently dropped.
	FailedItems(ctx context.Context) ([]models.SyncItem, error)

	MarkStatus(ctx context.Context, id string, status models.SyncStatus) error

	// UpdateRetry persists a new retry count together with the status the
	// item transitions to (pending for another attempt, failed when
	// exhausted).
	UpdateRetry(ctx context.Context, id string, retryCount int, status models.SyncStatus) error

	// PruneCompleted removes completed items older than the cutoff.
	PruneCompleted(ctx context.Context, olderThan time.Time) error
}

// ConflictStorage persists conflict records until they are explicitly
// resolved. Records never auto-expire.
type ConflictStorage interface {
	SaveConflict(ctx context.Context, rec models.ConflictRecord) error
	GetConflict(ctx context.Context, id string) (models.ConflictRecord, error)
	GetConflictBySyncItem(ctx context.Context, syncItemID string) (models.ConflictRecord, error)
	OpenConflicts(ctx context.Context) ([]models.ConflictRecord, error)
	MarkResolved(ctx context.Context, id string, resolution models.Entity, strategy models.Strategy, at time.Time) error
}

// JobStorage persists background jobs so scheduled work survives process
// restarts and can be re-evaluated against current device state.
type JobStorage interface {
	SaveJob(ctx context.Context, job models.BackgroundJob) error
	DeleteJob(ctx context.Context, id string) error

	// LoadJobs returns all jobs not in a terminal state, for re-enqueueing
	// on startup.
	LoadJobs(ctx context.Context) ([]models.BackgroundJob, error)
}

// CoordinatorStorage is the server-side storage surface: authoritative
// entity versions, the per-user change log, and the processed-push ledger
// that makes push idempotent.
type CoordinatorStorage interface {
	// CurrentEntity returns the authoritative entity state, reporting
	// whether it exists at all.
	CurrentEntity(ctx context.Context, userID int64, entityType models.EntityType, entityID string) (models.Entity, bool, error)

	// FieldsChangedSince returns the union of field names mutated by
	// change-log entries for the entity with version > baseVersion. The
	// coordinator uses it for overlap detection; wall-clock time is never
	// consulted.
	FieldsChangedSince(ctx context.Context, userID int64, entityType models.EntityType, entityID string, baseVersion int64) ([]string, error)

	// ApplyChange upserts the entity, appends a change-log entry, and
	// records the processed push id with the given outcome, all in one
	// transaction. Returns the new authoritative version and the assigned
	// sequence number.
	ApplyChange(ctx context.Context, userID int64, entity models.Entity, op models.Operation, diff models.FieldDiff, itemID string, outcome models.Outcome) (int64, int64, error)

	// LookupProcessed returns the recorded outcome of a previously
	// processed push id, if any. Replayed pushes return this verbatim.
	LookupProcessed(ctx context.Context, userID int64, itemID string) (models.PushResult, bool, error)

	// RecordProcessed stores a verdict that did not modify entity state
	// (superseded and conflicting outcomes).
	RecordProcessed(ctx context.Context, userID int64, itemID string, result models.PushResult) error

	// EntriesSince returns change-log entries with Seq > seq in ascending
	// order, together with the new watermark.
	EntriesSince(ctx context.Context, userID int64, seq int64) ([]models.ChangeLogEntry, int64, error)
}
