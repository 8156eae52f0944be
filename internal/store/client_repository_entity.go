// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-habit-sync/internal/logger"
	"github.com/MKhiriev/go-habit-sync/models"
)

const watermarkKey = "pull_watermark"

// entityRepository is the SQLite-backed implementation of [EntityStorage].
//
// It tracks the highest version seen per entity in-process; a read that
// produces a lower version than previously observed is reported as
// ErrStorageCorruption, since versions are append-only by construction.
type entityRepository struct {
	*DB
	logger *logger.Logger

	mu       sync.Mutex
	lastSeen map[models.EntityKey]int64
}

// NewEntityRepository constructs an [EntityStorage] backed by the provided
// database connection and logger.
func NewEntityRepository(db *DB, log *logger.Logger) EntityStorage {
	return &entityRepository{
		DB:       db,
		logger:   log,
		lastSeen: make(map[models.EntityKey]int64),
	}
}

// RecordMutation implements [EntityStorage]. The entity upsert, the
// change-log append, and the sync-item upsert happen in one transaction so
// a partial write is never observable.
func (r *entityRepository) RecordMutation(ctx context.Context, mut Mutation) (models.Entity, models.SyncItem, error) {
	log := logger.FromContext(ctx)

	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		return models.Entity{}, models.SyncItem{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	entity, found, err := getEntityTx(ctx, tx, mut.EntityType, mut.EntityID)
	if err != nil {
		return models.Entity{}, models.SyncItem{}, err
	}

	var op models.Operation
	switch {
	case mut.Delete && !found:
		return models.Entity{}, models.SyncItem{}, ErrEntityNotFound
	case mut.Delete:
		op = models.OperationDelete
	case !found:
		op = models.OperationCreate
		entity = models.Entity{
			Type:   mut.EntityType,
			ID:     mut.EntityID,
			Fields: models.FieldDiff{},
		}
	default:
		op = models.OperationUpdate
	}

	baseServerVersion := entity.ServerVersion

	if mut.Delete {
		entity.Deleted = true
	} else {
		entity.Apply(mut.Diff)
		entity.Deleted = false
	}
	entity.Version++
	entity.UpdatedAt = mut.At
	entity.Checksum = entity.ComputeChecksum()

	if err = upsertEntityTx(ctx, tx, entity); err != nil {
		return models.Entity{}, models.SyncItem{}, err
	}

	diff := mut.Diff
	if mut.Delete {
		diff = models.FieldDiff{}
	}
	seq, err := appendChangeLogTx(ctx, tx, entity, op, diff, mut.At)
	if err != nil {
		return models.Entity{}, models.SyncItem{}, err
	}

	item, err := r.mergePendingItem(ctx, tx, entity, op, diff, mut, baseServerVersion, seq)
	if err != nil {
		return models.Entity{}, models.SyncItem{}, err
	}

	if err = tx.Commit(); err != nil {
		return models.Entity{}, models.SyncItem{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	r.remember(entity)

	log.Debug().
		Str("entity_type", string(entity.Type)).
		Str("entity_id", entity.ID).
		Str("operation", string(op)).
		Int64("version", entity.Version).
		Int64("seq", seq).
		Msg("recorded local mutation")

	return entity, item, nil
}

// mergePendingItem folds the mutation into the entity's pending SyncItem
// when one exists, or creates a fresh one. An item currently in syncing
// state is left untouched and a new pending item is queued behind it; the
// next sync pass picks it up once the entity lock is released.
func (r *entityRepository) mergePendingItem(
	ctx context.Context,
	tx *sql.Tx,
	entity models.Entity,
	op models.Operation,
	diff models.FieldDiff,
	mut Mutation,
	baseServerVersion int64,
	seq int64,
) (models.SyncItem, error) {
	existing, found, err := getPendingItemTx(ctx, tx, entity.Type, entity.ID)
	if err != nil {
		return models.SyncItem{}, err
	}

	item := models.SyncItem{
		ID:             uuid.NewString(),
		EntityType:     entity.Type,
		EntityID:       entity.ID,
		Operation:      op,
		LocalData:      entity,
		LocalTimestamp: mut.At,
		Status:         models.StatusPending,
		Priority:       mut.Priority,
		MaxRetries:     mut.MaxRetries,
		BaseVersion:    baseServerVersion,
		Diff:           diff,
		Seq:            seq,
	}
	if item.MaxRetries <= 0 {
		item.MaxRetries = 10
	}

	if found {
		// Fold into the queued item: a create followed by updates is still
		// a create from the server's point of view; any operation followed
		// by a delete is a delete. The base version stays at the oldest
		// unsynced point.
		item.ID = existing.ID
		item.BaseVersion = existing.BaseVersion
		if existing.Operation == models.OperationCreate && op != models.OperationDelete {
			item.Operation = models.OperationCreate
		}
		merged := make(models.FieldDiff, len(existing.Diff)+len(diff))
		for k, v := range existing.Diff {
			merged[k] = v
		}
		for k, v := range diff {
			merged[k] = v
		}
		item.Diff = merged
		if existing.Priority > item.Priority {
			item.Priority = existing.Priority
		}
		item.ServerData = existing.ServerData
		item.ServerTimestamp = existing.ServerTimestamp
	}

	if err = upsertSyncItemTx(ctx, tx, item); err != nil {
		return models.SyncItem{}, err
	}

	return item, nil
}

// Get implements [EntityStorage].
func (r *entityRepository) Get(ctx context.Context, entityType models.EntityType, entityID string) (models.Entity, error) {
	row := r.QueryRowContext(ctx, getEntity, entityType, entityID)

	entity, err := scanEntity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Entity{}, ErrEntityNotFound
		}
		return models.Entity{}, err
	}

	if err = r.checkIntegrity(entity); err != nil {
		return models.Entity{}, err
	}

	return entity, nil
}

// Query implements [EntityStorage].
func (r *entityRepository) Query(ctx context.Context, entityType models.EntityType, pred func(models.Entity) bool) ([]models.Entity, error) {
	rows, err := r.QueryContext(ctx, getEntitiesByType, entityType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var result []models.Entity
	for rows.Next() {
		entity, scanErr := scanEntity(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		if err = r.checkIntegrity(entity); err != nil {
			return nil, err
		}
		if pred == nil || pred(entity) {
			result = append(result, entity)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}

// ApplyRemote implements [EntityStorage]. Entries are applied in sequence
// order by the caller; entries at or below the entity's last applied
// server version are skipped so that replays are harmless.
func (r *entityRepository) ApplyRemote(ctx context.Context, entry models.ChangeLogEntry) (models.Entity, error) {
	log := logger.FromContext(ctx)

	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		return models.Entity{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	entity, found, err := getEntityTx(ctx, tx, entry.EntityType, entry.EntityID)
	if err != nil {
		return models.Entity{}, err
	}

	if found && entry.Version <= entity.ServerVersion {
		return entity, tx.Commit()
	}
	if !found {
		entity = models.Entity{
			Type:   entry.EntityType,
			ID:     entry.EntityID,
			Fields: models.FieldDiff{},
		}
	}

	if entry.Operation == models.OperationDelete {
		entity.Deleted = true
	} else {
		entity.Apply(entry.Diff)
		entity.Deleted = false
	}
	entity.Version++
	entity.ServerVersion = entry.Version
	entity.UpdatedAt = entry.At
	entity.Checksum = entity.ComputeChecksum()

	if err = upsertEntityTx(ctx, tx, entity); err != nil {
		return models.Entity{}, err
	}

	if err = tx.Commit(); err != nil {
		return models.Entity{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	r.remember(entity)

	log.Debug().
		Str("entity_type", string(entity.Type)).
		Str("entity_id", entity.ID).
		Int64("server_version", entity.ServerVersion).
		Msg("applied remote change")

	return entity, nil
}

// AckServerVersion implements [EntityStorage].
func (r *entityRepository) AckServerVersion(ctx context.Context, entityType models.EntityType, entityID string, serverVersion int64) error {
	res, err := r.ExecContext(ctx, setEntityServerVersion, serverVersion, entityType, entityID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEntityNotFound
	}

	return nil
}

// Purge implements [EntityStorage].
func (r *entityRepository) Purge(ctx context.Context, entityType models.EntityType, entityID string) error {
	if _, err := r.ExecContext(ctx, purgeEntity, entityType, entityID); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	r.forget(models.EntityKey{Type: entityType, ID: entityID})

	return nil
}

// Discard implements [EntityStorage]. Unlike Purge it also resets the
// in-process version tracking so the re-pulled copy is accepted.
func (r *entityRepository) Discard(ctx context.Context, entityType models.EntityType, entityID string) error {
	return r.Purge(ctx, entityType, entityID)
}

// ChangesSince implements [EntityStorage].
func (r *entityRepository) ChangesSince(ctx context.Context, seq int64) ([]models.ChangeLogEntry, error) {
	rows, err := r.QueryContext(ctx, getChangesSince, seq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entries []models.ChangeLogEntry
	for rows.Next() {
		var (
			entry    models.ChangeLogEntry
			diffJSON string
		)
		if err = rows.Scan(&entry.Seq, &entry.EntityType, &entry.EntityID, &entry.Operation, &diffJSON, &entry.Version, &entry.At); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if err = json.Unmarshal([]byte(diffJSON), &entry.Diff); err != nil {
			return nil, fmt.Errorf("decode change diff: %w", err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// CompactChangeLog implements [EntityStorage].
func (r *entityRepository) CompactChangeLog(ctx context.Context, uptoSeq int64) error {
	if _, err := r.ExecContext(ctx, compactChangeLog, uptoSeq); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Watermark implements [EntityStorage].
func (r *entityRepository) Watermark(ctx context.Context) (int64, error) {
	var raw string
	err := r.QueryRowContext(ctx, getSyncStateValue, watermarkKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	seq, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode watermark: %w", err)
	}

	return seq, nil
}

// SetWatermark implements [EntityStorage].
func (r *entityRepository) SetWatermark(ctx context.Context, seq int64) error {
	if _, err := r.ExecContext(ctx, setSyncStateValue, watermarkKey, strconv.FormatInt(seq, 10)); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// checkIntegrity verifies the stored checksum and that the version has not
// regressed versus the last value this process observed for the entity.
func (r *entityRepository) checkIntegrity(entity models.Entity) error {
	if entity.Checksum != "" && entity.Checksum != entity.ComputeChecksum() {
		return fmt.Errorf("%w: checksum mismatch for %s/%s", ErrStorageCorruption, entity.Type, entity.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := entity.Key()
	if last, ok := r.lastSeen[key]; ok && entity.Version < last {
		return fmt.Errorf("%w: version regressed from %d to %d for %s/%s",
			ErrStorageCorruption, last, entity.Version, entity.Type, entity.ID)
	}
	r.lastSeen[key] = entity.Version

	return nil
}

func (r *entityRepository) remember(entity models.Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastSeen[entity.Key()] = entity.Version
}

func (r *entityRepository) forget(key models.EntityKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lastSeen, key)
}

// ── transaction-scoped helpers ───────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntity(row rowScanner) (models.Entity, error) {
	var (
		entity     models.Entity
		fieldsJSON string
	)
	err := row.Scan(
		&entity.Type,
		&entity.ID,
		&fieldsJSON,
		&entity.Version,
		&entity.ServerVersion,
		&entity.Deleted,
		&entity.Checksum,
		&entity.UpdatedAt,
	)
	if err != nil {
		return models.Entity{}, err
	}
	if err = json.Unmarshal([]byte(fieldsJSON), &entity.Fields); err != nil {
		return models.Entity{}, fmt.Errorf("decode entity fields: %w", err)
	}

	return entity, nil
}

func getEntityTx(ctx context.Context, tx *sql.Tx, entityType models.EntityType, entityID string) (models.Entity, bool, error) {
	entity, err := scanEntity(tx.QueryRowContext(ctx, getEntity, entityType, entityID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Entity{}, false, nil
	}
	if err != nil {
		return models.Entity{}, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return entity, true, nil
}

func upsertEntityTx(ctx context.Context, tx *sql.Tx, entity models.Entity) error {
	fieldsJSON, err := json.Marshal(entity.Fields)
	if err != nil {
		return fmt.Errorf("encode entity fields: %w", err)
	}

	_, err = tx.ExecContext(ctx, upsertEntity,
		entity.Type,
		entity.ID,
		string(fieldsJSON),
		entity.Version,
		entity.ServerVersion,
		entity.Deleted,
		entity.Checksum,
		entity.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func appendChangeLogTx(ctx context.Context, tx *sql.Tx, entity models.Entity, op models.Operation, diff models.FieldDiff, at time.Time) (int64, error) {
	diffJSON, err := json.Marshal(diff)
	if err != nil {
		return 0, fmt.Errorf("encode change diff: %w", err)
	}

	res, err := tx.ExecContext(ctx, appendChangeLog,
		entity.Type,
		entity.ID,
		op,
		string(diffJSON),
		entity.Version,
		at,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("change log sequence: %w", err)
	}

	return seq, nil
}
