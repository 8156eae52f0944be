// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import "errors"

var (
	// ErrOffline is returned when a sync pass is requested without
	// connectivity. Queued work is unaffected.
	ErrOffline = errors.New("device is offline")

	// ErrSyncInProgress is returned when a full sync pass is requested
	// while another one is still running.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrEntitySyncing is returned by SyncEntity when the entity is
	// already being synced by another pass.
	ErrEntitySyncing = errors.New("entity sync already in progress")

	// ErrConflictResolved is returned when resolving a conflict that has
	// already been resolved.
	ErrConflictResolved = errors.New("conflict already resolved")

	// ErrNothingPending is returned by ForcePush for an item that is not
	// in a re-triggerable state.
	ErrNothingPending = errors.New("sync item is not retriable")
)
