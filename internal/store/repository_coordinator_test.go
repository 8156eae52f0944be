// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-habit-sync/internal/logger"
	"github.com/MKhiriev/go-habit-sync/models"
)

func newCoordinatorMock(t *testing.T) (CoordinatorStorage, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	repo := NewCoordinatorRepository(&DB{DB: conn, logger: logger.Nop()}, logger.Nop())

	return repo, mock
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return string(raw)
}

func TestCoordinatorRepository_CurrentEntity(t *testing.T) {
	repo, mock := newCoordinatorMock(t)
	now := time.Now().UTC()

	fields := diffOf("name", "Meditate")
	mock.ExpectQuery(`SELECT(.|\s)+FROM server_entities`).
		WithArgs(int64(42), models.EntityTypeHabit, "habit-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"entity_type", "entity_id", "fields", "version", "deleted", "checksum", "updated_at",
		}).AddRow("habit", "habit-1", mustJSON(t, fields), int64(3), false, "abc", now))

	entity, found, err := repo.CurrentEntity(context.Background(), 42, models.EntityTypeHabit, "habit-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(3), entity.Version)
	assert.Equal(t, int64(3), entity.ServerVersion)
	assert.Equal(t, "Meditate", entity.Fields["name"].Value)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCoordinatorRepository_CurrentEntity_NotFound(t *testing.T) {
	repo, mock := newCoordinatorMock(t)

	mock.ExpectQuery(`SELECT(.|\s)+FROM server_entities`).
		WithArgs(int64(42), models.EntityTypeHabit, "missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"entity_type", "entity_id", "fields", "version", "deleted", "checksum", "updated_at",
		}))

	_, found, err := repo.CurrentEntity(context.Background(), 42, models.EntityTypeHabit, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCoordinatorRepository_FieldsChangedSince(t *testing.T) {
	repo, mock := newCoordinatorMock(t)

	// squirrel emits Eq map columns in alphabetical order.
	mock.ExpectQuery(`SELECT diff FROM server_change_log`).
		WithArgs("habit-1", models.EntityTypeHabit, int64(42), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"diff"}).
			AddRow(mustJSON(t, diffOf("name", "a", "streak", "3"))).
			AddRow(mustJSON(t, diffOf("streak", "4"))))

	fields, err := repo.FieldsChangedSince(context.Background(), 42, models.EntityTypeHabit, "habit-1", 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"name", "streak"}, fields)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCoordinatorRepository_ApplyChange(t *testing.T) {
	repo, mock := newCoordinatorMock(t)
	now := time.Now().UTC()

	entity := models.Entity{
		Type:      models.EntityTypeHabit,
		ID:        "habit-1",
		Fields:    diffOf("name", "Meditate"),
		Version:   4,
		UpdatedAt: now,
	}
	entity.Checksum = entity.ComputeChecksum()
	diff := diffOf("name", "Meditate")

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO server_entities`).
		WithArgs(int64(42), entity.Type, entity.ID, mustJSON(t, entity.Fields),
			entity.Version, entity.Deleted, entity.Checksum, entity.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO server_change_log`).
		WithArgs(int64(42), entity.Type, entity.ID, models.OperationUpdate,
			mustJSON(t, diff), entity.Version, entity.UpdatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(int64(17)))
	mock.ExpectExec(`INSERT INTO processed_pushes`).
		WithArgs(int64(42), "item-1", models.OutcomeAccepted, entity.Version, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	version, seq, err := repo.ApplyChange(context.Background(), 42, entity,
		models.OperationUpdate, diff, "item-1", models.OutcomeAccepted)
	require.NoError(t, err)
	assert.Equal(t, int64(4), version)
	assert.Equal(t, int64(17), seq)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCoordinatorRepository_ApplyChange_NoLedgerEntryWithoutItemID(t *testing.T) {
	repo, mock := newCoordinatorMock(t)

	entity := models.Entity{
		Type:      models.EntityTypeHabit,
		ID:        "habit-1",
		Fields:    models.FieldDiff{},
		Version:   1,
		UpdatedAt: time.Now().UTC(),
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO server_entities`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO server_change_log`).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(int64(1)))
	mock.ExpectCommit()

	_, _, err := repo.ApplyChange(context.Background(), 42, entity,
		models.OperationCreate, models.FieldDiff{}, "", models.OutcomeAccepted)
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCoordinatorRepository_ApplyChange_RollsBackOnFailure(t *testing.T) {
	repo, mock := newCoordinatorMock(t)

	entity := models.Entity{
		Type:      models.EntityTypeHabit,
		ID:        "habit-1",
		Fields:    models.FieldDiff{},
		Version:   1,
		UpdatedAt: time.Now().UTC(),
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO server_entities`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, _, err := repo.ApplyChange(context.Background(), 42, entity,
		models.OperationCreate, models.FieldDiff{}, "item-1", models.OutcomeAccepted)
	assert.ErrorIs(t, err, ErrExecutingStatement)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCoordinatorRepository_ProcessedPushLedger(t *testing.T) {
	repo, mock := newCoordinatorMock(t)
	now := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO processed_pushes`).
		WithArgs(int64(42), "item-1", models.OutcomeConflicting, int64(5), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.RecordProcessed(context.Background(), 42, "item-1", models.PushResult{
		ID:            "item-1",
		Outcome:       models.OutcomeConflicting,
		ServerVersion: 5,
	})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT outcome, server_version, processed_at FROM processed_pushes`).
		WithArgs(int64(42), "item-1").
		WillReturnRows(sqlmock.NewRows([]string{"outcome", "server_version", "processed_at"}).
			AddRow("conflicting", int64(5), now))

	result, found, err := repo.LookupProcessed(context.Background(), 42, "item-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "item-1", result.ID)
	assert.Equal(t, models.OutcomeConflicting, result.Outcome)
	assert.Equal(t, int64(5), result.ServerVersion)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCoordinatorRepository_LookupProcessed_NotFound(t *testing.T) {
	repo, mock := newCoordinatorMock(t)

	mock.ExpectQuery(`SELECT outcome, server_version, processed_at FROM processed_pushes`).
		WithArgs(int64(42), "missing").
		WillReturnRows(sqlmock.NewRows([]string{"outcome", "server_version", "processed_at"}))

	_, found, err := repo.LookupProcessed(context.Background(), 42, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCoordinatorRepository_EntriesSince(t *testing.T) {
	repo, mock := newCoordinatorMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT seq, entity_type, entity_id, operation, diff, version, created_at FROM server_change_log`).
		WithArgs(int64(42), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{
			"seq", "entity_type", "entity_id", "operation", "diff", "version", "created_at",
		}).
			AddRow(int64(11), "habit", "habit-1", "update", mustJSON(t, diffOf("name", "a")), int64(2), now).
			AddRow(int64(12), "goal", "goal-1", "delete", "{}", int64(3), now))

	entries, watermark, err := repo.EntriesSince(context.Background(), 42, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(12), watermark)
	assert.Equal(t, models.OperationDelete, entries[1].Operation)
	assert.Equal(t, "a", entries[0].Diff["name"].Value)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCoordinatorRepository_EntriesSince_Empty(t *testing.T) {
	repo, mock := newCoordinatorMock(t)

	mock.ExpectQuery(`SELECT seq, entity_type, entity_id, operation, diff, version, created_at FROM server_change_log`).
		WithArgs(int64(42), int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{
			"seq", "entity_type", "entity_id", "operation", "diff", "version", "created_at",
		}))

	entries, watermark, err := repo.EntriesSince(context.Background(), 42, 99)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, int64(99), watermark)

	require.NoError(t, mock.ExpectationsWereMet())
}
