// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-habit-sync/internal/logger"
	"github.com/MKhiriev/go-habit-sync/models"
)

// syncItemRepository is the SQLite-backed implementation of
// [SyncItemStorage] and [ConflictStorage].
type syncItemRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncItemRepository constructs a repository for pending sync work and
// conflict records.
func NewSyncItemRepository(db *DB, log *logger.Logger) *syncItemRepository {
	return &syncItemRepository{DB: db, logger: log}
}

// SaveItem implements [SyncItemStorage].
func (r *syncItemRepository) SaveItem(ctx context.Context, item models.SyncItem) error {
	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = upsertSyncItemTx(ctx, tx, item); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// GetItem implements [SyncItemStorage].
func (r *syncItemRepository) GetItem(ctx context.Context, id string) (models.SyncItem, error) {
	item, err := scanSyncItem(r.QueryRowContext(ctx, getSyncItem, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncItem{}, ErrSyncItemNotFound
	}
	if err != nil {
		return models.SyncItem{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, nil
}

// PendingItems implements [SyncItemStorage].
func (r *syncItemRepository) PendingItems(ctx context.Context) ([]models.SyncItem, error) {
	return r.itemsByStatus(ctx, models.StatusPending)
}

// FailedItems implements [SyncItemStorage].
func (r *syncItemRepository) FailedItems(ctx context.Context) ([]models.SyncItem, error) {
	return r.itemsByStatus(ctx, models.StatusFailed)
}

func (r *syncItemRepository) itemsByStatus(ctx context.Context, status models.SyncStatus) ([]models.SyncItem, error) {
	rows, err := r.QueryContext(ctx, getSyncItemsByStatus, status)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var items []models.SyncItem
	for rows.Next() {
		item, scanErr := scanSyncItem(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

// RecoverInFlight returns items stuck in the syncing state to pending.
// An item is syncing only for the duration of one push attempt, so any
// syncing row found outside an attempt belongs to a process that died
// mid-push; without the reset it would be invisible to PendingItems
// forever. Called once when the storage layer is opened.
func (r *syncItemRepository) RecoverInFlight(ctx context.Context) error {
	res, err := r.ExecContext(ctx, recoverInFlightSyncItems)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		r.logger.Info().Int64("count", n).Msg("recovered in-flight sync items to pending")
	}

	return nil
}

// MarkStatus implements [SyncItemStorage].
func (r *syncItemRepository) MarkStatus(ctx context.Context, id string, status models.SyncStatus) error {
	res, err := r.ExecContext(ctx, setSyncItemStatus, status, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSyncItemNotFound
	}

	return nil
}

// UpdateRetry implements [SyncItemStorage].
func (r *syncItemRepository) UpdateRetry(ctx context.Context, id string, retryCount int, status models.SyncStatus) error {
	res, err := r.ExecContext(ctx, setSyncItemRetry, retryCount, status, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSyncItemNotFound
	}

	return nil
}

// PruneCompleted implements [SyncItemStorage].
func (r *syncItemRepository) PruneCompleted(ctx context.Context, olderThan time.Time) error {
	if _, err := r.ExecContext(ctx, pruneCompletedSyncItems, olderThan); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ── ConflictStorage ──────────────────────────────────────────────────────────

// SaveConflict implements [ConflictStorage].
func (r *syncItemRepository) SaveConflict(ctx context.Context, rec models.ConflictRecord) error {
	localJSON, err := json.Marshal(rec.Local)
	if err != nil {
		return fmt.Errorf("encode local snapshot: %w", err)
	}
	remoteJSON, err := json.Marshal(rec.Remote)
	if err != nil {
		return fmt.Errorf("encode remote snapshot: %w", err)
	}

	var resolutionJSON any
	if rec.Resolution != nil {
		encoded, encErr := json.Marshal(rec.Resolution)
		if encErr != nil {
			return fmt.Errorf("encode resolution: %w", encErr)
		}
		resolutionJSON = string(encoded)
	}

	_, err = r.ExecContext(ctx, upsertConflict,
		rec.ID,
		rec.SyncItemID,
		rec.EntityType,
		rec.EntityID,
		string(localJSON),
		string(remoteJSON),
		rec.Strategy,
		rec.Resolved,
		resolutionJSON,
		rec.DetectedAt,
		rec.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetConflict implements [ConflictStorage].
func (r *syncItemRepository) GetConflict(ctx context.Context, id string) (models.ConflictRecord, error) {
	rec, err := scanConflict(r.QueryRowContext(ctx, getConflict, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.ConflictRecord{}, ErrConflictNotFound
	}
	if err != nil {
		return models.ConflictRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return rec, nil
}

// GetConflictBySyncItem implements [ConflictStorage].
func (r *syncItemRepository) GetConflictBySyncItem(ctx context.Context, syncItemID string) (models.ConflictRecord, error) {
	rec, err := scanConflict(r.QueryRowContext(ctx, getConflictBySyncItem, syncItemID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.ConflictRecord{}, ErrConflictNotFound
	}
	if err != nil {
		return models.ConflictRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return rec, nil
}

// OpenConflicts implements [ConflictStorage].
func (r *syncItemRepository) OpenConflicts(ctx context.Context) ([]models.ConflictRecord, error) {
	rows, err := r.QueryContext(ctx, getOpenConflicts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []models.ConflictRecord
	for rows.Next() {
		rec, scanErr := scanConflict(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

// MarkResolved implements [ConflictStorage].
func (r *syncItemRepository) MarkResolved(ctx context.Context, id string, resolution models.Entity, strategy models.Strategy, at time.Time) error {
	resolutionJSON, err := json.Marshal(resolution)
	if err != nil {
		return fmt.Errorf("encode resolution: %w", err)
	}

	res, err := r.ExecContext(ctx, resolveConflict, string(resolutionJSON), strategy, at, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConflictNotFound
	}

	return nil
}

// ── scan helpers shared with the entity repository ───────────────────────────

func scanSyncItem(row rowScanner) (models.SyncItem, error) {
	var (
		item       models.SyncItem
		localJSON  string
		serverJSON sql.NullString
		serverTS   sql.NullTime
		diffJSON   string
	)
	err := row.Scan(
		&item.ID,
		&item.EntityType,
		&item.EntityID,
		&item.Operation,
		&localJSON,
		&serverJSON,
		&item.LocalTimestamp,
		&serverTS,
		&item.Status,
		&item.Priority,
		&item.RetryCount,
		&item.MaxRetries,
		&item.BaseVersion,
		&diffJSON,
		&item.Seq,
	)
	if err != nil {
		return models.SyncItem{}, err
	}

	if err = json.Unmarshal([]byte(localJSON), &item.LocalData); err != nil {
		return models.SyncItem{}, fmt.Errorf("decode local snapshot: %w", err)
	}
	if serverJSON.Valid {
		var server models.Entity
		if err = json.Unmarshal([]byte(serverJSON.String), &server); err != nil {
			return models.SyncItem{}, fmt.Errorf("decode server snapshot: %w", err)
		}
		item.ServerData = &server
	}
	if serverTS.Valid {
		ts := serverTS.Time
		item.ServerTimestamp = &ts
	}
	if err = json.Unmarshal([]byte(diffJSON), &item.Diff); err != nil {
		return models.SyncItem{}, fmt.Errorf("decode item diff: %w", err)
	}

	return item, nil
}

func scanConflict(row rowScanner) (models.ConflictRecord, error) {
	var (
		rec            models.ConflictRecord
		localJSON      string
		remoteJSON     string
		resolutionJSON sql.NullString
		resolvedAt     sql.NullTime
	)
	err := row.Scan(
		&rec.ID,
		&rec.SyncItemID,
		&rec.EntityType,
		&rec.EntityID,
		&localJSON,
		&remoteJSON,
		&rec.Strategy,
		&rec.Resolved,
		&resolutionJSON,
		&rec.DetectedAt,
		&resolvedAt,
	)
	if err != nil {
		return models.ConflictRecord{}, err
	}

	if err = json.Unmarshal([]byte(localJSON), &rec.Local); err != nil {
		return models.ConflictRecord{}, fmt.Errorf("decode local snapshot: %w", err)
	}
	if err = json.Unmarshal([]byte(remoteJSON), &rec.Remote); err != nil {
		return models.ConflictRecord{}, fmt.Errorf("decode remote snapshot: %w", err)
	}
	if resolutionJSON.Valid {
		var resolution models.Entity
		if err = json.Unmarshal([]byte(resolutionJSON.String), &resolution); err != nil {
			return models.ConflictRecord{}, fmt.Errorf("decode resolution: %w", err)
		}
		rec.Resolution = &resolution
	}
	if resolvedAt.Valid {
		ts := resolvedAt.Time
		rec.ResolvedAt = &ts
	}

	return rec, nil
}

func getPendingItemTx(ctx context.Context, tx *sql.Tx, entityType models.EntityType, entityID string) (models.SyncItem, bool, error) {
	item, err := scanSyncItem(tx.QueryRowContext(ctx, getPendingSyncItemForEntity, entityType, entityID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncItem{}, false, nil
	}
	if err != nil {
		return models.SyncItem{}, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, true, nil
}

func upsertSyncItemTx(ctx context.Context, tx *sql.Tx, item models.SyncItem) error {
	localJSON, err := json.Marshal(item.LocalData)
	if err != nil {
		return fmt.Errorf("encode local snapshot: %w", err)
	}

	var serverJSON any
	if item.ServerData != nil {
		encoded, encErr := json.Marshal(item.ServerData)
		if encErr != nil {
			return fmt.Errorf("encode server snapshot: %w", encErr)
		}
		serverJSON = string(encoded)
	}

	diffJSON, err := json.Marshal(item.Diff)
	if err != nil {
		return fmt.Errorf("encode item diff: %w", err)
	}

	var serverTS any
	if item.ServerTimestamp != nil {
		serverTS = *item.ServerTimestamp
	}

	_, err = tx.ExecContext(ctx, upsertSyncItem,
		item.ID,
		item.EntityType,
		item.EntityID,
		item.Operation,
		string(localJSON),
		serverJSON,
		item.LocalTimestamp,
		serverTS,
		item.Status,
		item.Priority,
		item.RetryCount,
		item.MaxRetries,
		item.BaseVersion,
		string(diffJSON),
		item.Seq,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
