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

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-habit-sync/internal/logger"
	"github.com/MKhiriev/go-habit-sync/models"
)

// coordinatorRepository is the PostgreSQL-backed implementation of
// [CoordinatorStorage]. Dynamic queries (delta reads, overlap scans) are
// built with squirrel; hot-path statements are SQL constants.
type coordinatorRepository struct {
	*DB
	logger *logger.Logger

	builder sq.StatementBuilderType
}

// NewCoordinatorRepository constructs a [CoordinatorStorage] backed by the
// provided database connection and logger.
func NewCoordinatorRepository(db *DB, log *logger.Logger) CoordinatorStorage {
	return &coordinatorRepository{
		DB:      db,
		logger:  log,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// CurrentEntity implements [CoordinatorStorage].
func (r *coordinatorRepository) CurrentEntity(ctx context.Context, userID int64, entityType models.EntityType, entityID string) (models.Entity, bool, error) {
	var (
		entity     models.Entity
		fieldsJSON string
	)
	err := r.QueryRowContext(ctx, getServerEntity, userID, entityType, entityID).Scan(
		&entity.Type,
		&entity.ID,
		&fieldsJSON,
		&entity.Version,
		&entity.Deleted,
		&entity.Checksum,
		&entity.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Entity{}, false, nil
	}
	if err != nil {
		return models.Entity{}, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = json.Unmarshal([]byte(fieldsJSON), &entity.Fields); err != nil {
		return models.Entity{}, false, fmt.Errorf("decode entity fields: %w", err)
	}
	entity.ServerVersion = entity.Version

	return entity, true, nil
}

// FieldsChangedSince implements [CoordinatorStorage]. The overlap scan is
// driven purely by the version counter recorded with each change-log
// entry; client wall clocks are never consulted.
func (r *coordinatorRepository) FieldsChangedSince(ctx context.Context, userID int64, entityType models.EntityType, entityID string, baseVersion int64) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("diff").
		From("server_change_log").
		Where(sq.Eq{"user_id": userID, "entity_type": entityType, "entity_id": entityID}).
		Where(sq.Gt{"version": baseVersion}).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "coordinatorRepository.FieldsChangedSince").
			Int64("user_id", userID).
			Msg("failed to query changed fields")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	var fields []string
	for rows.Next() {
		var diffJSON string
		if err = rows.Scan(&diffJSON); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		var diff models.FieldDiff
		if err = json.Unmarshal([]byte(diffJSON), &diff); err != nil {
			return nil, fmt.Errorf("decode change diff: %w", err)
		}
		for name := range diff {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				fields = append(fields, name)
			}
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return fields, nil
}

// ApplyChange implements [CoordinatorStorage]. The entity upsert, the
// change-log append, and the processed-push record are committed in one
// transaction; a replayed push therefore either sees the processed record
// or nothing at all.
func (r *coordinatorRepository) ApplyChange(ctx context.Context, userID int64, entity models.Entity, op models.Operation, diff models.FieldDiff, itemID string, outcome models.Outcome) (int64, int64, error) {
	log := logger.FromContext(ctx)

	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	fieldsJSON, err := json.Marshal(entity.Fields)
	if err != nil {
		return 0, 0, fmt.Errorf("encode entity fields: %w", err)
	}

	_, err = tx.ExecContext(ctx, upsertServerEntity,
		userID,
		entity.Type,
		entity.ID,
		string(fieldsJSON),
		entity.Version,
		entity.Deleted,
		entity.Checksum,
		entity.UpdatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "coordinatorRepository.ApplyChange").
			Int64("user_id", userID).
			Str("entity_id", entity.ID).
			Msg("failed to upsert entity")
		return 0, 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	diffJSON, err := json.Marshal(diff)
	if err != nil {
		return 0, 0, fmt.Errorf("encode change diff: %w", err)
	}

	var seq int64
	err = tx.QueryRowContext(ctx, appendServerChangeLog,
		userID,
		entity.Type,
		entity.ID,
		op,
		string(diffJSON),
		entity.Version,
		entity.UpdatedAt,
	).Scan(&seq)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if itemID != "" {
		_, err = tx.ExecContext(ctx, insertProcessedPush,
			userID, itemID, outcome, entity.Version, time.Now().UTC())
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return entity.Version, seq, nil
}

// LookupProcessed implements [CoordinatorStorage].
func (r *coordinatorRepository) LookupProcessed(ctx context.Context, userID int64, itemID string) (models.PushResult, bool, error) {
	var result models.PushResult
	result.ID = itemID

	err := r.QueryRowContext(ctx, getProcessedPush, userID, itemID).Scan(
		&result.Outcome,
		&result.ServerVersion,
		&result.ServerTimestamp,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PushResult{}, false, nil
	}
	if err != nil {
		return models.PushResult{}, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return result, true, nil
}

// RecordProcessed implements [CoordinatorStorage].
func (r *coordinatorRepository) RecordProcessed(ctx context.Context, userID int64, itemID string, result models.PushResult) error {
	_, err := r.ExecContext(ctx, insertProcessedPush,
		userID, itemID, result.Outcome, result.ServerVersion, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// EntriesSince implements [CoordinatorStorage].
func (r *coordinatorRepository) EntriesSince(ctx context.Context, userID int64, seq int64) ([]models.ChangeLogEntry, int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("seq", "entity_type", "entity_id", "operation", "diff", "version", "created_at").
		From("server_change_log").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Gt{"seq": seq}).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "coordinatorRepository.EntriesSince").
			Int64("user_id", userID).
			Int64("since_seq", seq).
			Msg("failed to query change log")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	watermark := seq
	var entries []models.ChangeLogEntry
	for rows.Next() {
		var (
			entry    models.ChangeLogEntry
			diffJSON string
		)
		if err = rows.Scan(&entry.Seq, &entry.EntityType, &entry.EntityID, &entry.Operation, &diffJSON, &entry.Version, &entry.At); err != nil {
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if err = json.Unmarshal([]byte(diffJSON), &entry.Diff); err != nil {
			return nil, 0, fmt.Errorf("decode change diff: %w", err)
		}
		if entry.Seq > watermark {
			watermark = entry.Seq
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, watermark, nil
}
