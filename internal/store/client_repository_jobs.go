// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-habit-sync/internal/logger"
	"github.com/MKhiriev/go-habit-sync/models"
)

// jobRepository is the SQLite-backed implementation of [JobStorage].
// Durations are persisted as integer milliseconds.
type jobRepository struct {
	*DB
	logger *logger.Logger
}

// NewJobRepository constructs a [JobStorage] backed by the provided
// database connection and logger.
func NewJobRepository(db *DB, log *logger.Logger) JobStorage {
	return &jobRepository{DB: db, logger: log}
}

// SaveJob implements [JobStorage].
func (r *jobRepository) SaveJob(ctx context.Context, job models.BackgroundJob) error {
	paramsJSON, err := json.Marshal(job.Params)
	if err != nil {
		return fmt.Errorf("encode job params: %w", err)
	}
	constraintsJSON, err := json.Marshal(job.Constraints)
	if err != nil {
		return fmt.Errorf("encode job constraints: %w", err)
	}

	_, err = r.ExecContext(ctx, upsertJob,
		job.ID,
		job.Type,
		string(paramsJSON),
		string(constraintsJSON),
		job.Priority,
		job.MaxRetries,
		job.RetryCount,
		job.RetryBackoff.Milliseconds(),
		job.ScheduledFor,
		job.RepeatInterval.Milliseconds(),
		job.State,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteJob implements [JobStorage].
func (r *jobRepository) DeleteJob(ctx context.Context, id string) error {
	if _, err := r.ExecContext(ctx, deleteJob, id); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// LoadJobs implements [JobStorage]. Jobs found in running state were
// interrupted by a crash; they are returned as scheduled so the caller
// re-enqueues them.
func (r *jobRepository) LoadJobs(ctx context.Context) ([]models.BackgroundJob, error) {
	rows, err := r.QueryContext(ctx, getActiveJobs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var jobs []models.BackgroundJob
	for rows.Next() {
		var (
			job             models.BackgroundJob
			paramsJSON      string
			constraintsJSON string
			backoffMS       int64
			repeatMS        int64
		)
		err = rows.Scan(
			&job.ID,
			&job.Type,
			&paramsJSON,
			&constraintsJSON,
			&job.Priority,
			&job.MaxRetries,
			&job.RetryCount,
			&backoffMS,
			&job.ScheduledFor,
			&repeatMS,
			&job.State,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		if err = json.Unmarshal([]byte(paramsJSON), &job.Params); err != nil {
			return nil, fmt.Errorf("decode job params: %w", err)
		}
		if err = json.Unmarshal([]byte(constraintsJSON), &job.Constraints); err != nil {
			return nil, fmt.Errorf("decode job constraints: %w", err)
		}
		job.RetryBackoff = time.Duration(backoffMS) * time.Millisecond
		job.RepeatInterval = time.Duration(repeatMS) * time.Millisecond

		if job.State == models.JobStateRunning {
			job.State = models.JobStateScheduled
		}

		jobs = append(jobs, job)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return jobs, nil
}
