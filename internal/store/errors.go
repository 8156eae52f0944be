// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known
// failure conditions. Callers should use [errors.Is] to match against
// these values.
var (
	// ErrEntityNotFound is returned when a query or mutation targets an
	// entity (identified by type and id) that does not exist locally.
	ErrEntityNotFound = errors.New("entity was not found")

	// ErrSyncItemNotFound is returned when a SyncItem id does not match
	// any persisted item.
	ErrSyncItemNotFound = errors.New("sync item was not found")

	// ErrConflictNotFound is returned when a conflict record id does not
	// match any persisted record.
	ErrConflictNotFound = errors.New("conflict record was not found")

	// ErrJobNotFound is returned when a background job id does not match
	// any persisted job.
	ErrJobNotFound = errors.New("background job was not found")

	// ErrStorageCorruption is returned when a read produces a record whose
	// version has decreased versus its last known value, or whose stored
	// checksum does not match the recomputed one. This is fatal for the
	// affected entity: the caller must discard the local copy and re-pull
	// it from the server rather than attempt repair.
	ErrStorageCorruption = errors.New("storage corruption detected")

	// ErrVersionConflict is returned by the coordinator repository when an
	// optimistic-locking check fails: the base version supplied by the
	// client does not match the current authoritative version.
	ErrVersionConflict = errors.New("entity version conflict occurred")

	// ErrDuplicatePush is returned when a pushed SyncItem id has already
	// been processed; the recorded outcome should be replayed instead.
	ErrDuplicatePush = errors.New("push already processed")
)

// Low-level database operation errors, returned (or wrapped) when a
// SQL-level operation fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised
	// SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a read-only query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
