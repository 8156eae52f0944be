// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-habit-sync/internal/logger"
	"github.com/MKhiriev/go-habit-sync/internal/store"
	"github.com/MKhiriev/go-habit-sync/models"
)

// syncService classifies pushed mutations against the authoritative
// entity state held in CoordinatorStorage.
//
// Classification is driven purely by version counters and the per-entity
// change log; client wall clocks are never consulted:
//
//   - base == current version: the client saw the latest state, the
//     mutation is accepted and the version is incremented.
//   - base < current, changed fields disjoint from the pushed diff: the
//     server merges the diff on top of its state and reports superseded;
//     the client pulls to catch up. Not a conflict.
//   - base < current, overlapping fields: conflicting; the authoritative
//     snapshot is returned for client-side resolution and no state
//     changes.
//
// Every verdict is recorded in the processed-push ledger keyed by the
// item id, so a replayed push (lost acknowledgment, retry) returns the
// original verdict without mutating state twice.
type syncService struct {
	coordinator store.CoordinatorStorage

	logger *logger.Logger
}

// NewSyncService constructs a SyncService over the given coordinator
// storage.
func NewSyncService(coordinator store.CoordinatorStorage, logger *logger.Logger) SyncService {
	return &syncService{coordinator: coordinator, logger: logger}
}

// Push implements [SyncService].
func (s *syncService) Push(ctx context.Context, userID int64, req models.PushRequest) (models.PushResponse, error) {
	log := logger.FromContext(ctx)

	if userID <= 0 {
		return models.PushResponse{}, ErrInvalidDataProvided
	}

	results := make([]models.PushResult, 0, len(req.Items))
	for _, item := range req.Items {
		result, err := s.processItem(ctx, userID, item)
		if err != nil {
			log.Err(err).
				Str("func", "syncService.Push").
				Int64("user_id", userID).
				Str("item_id", item.ID).
				Str("entity_id", item.EntityID).
				Msg("failed to process pushed item")
			return models.PushResponse{}, fmt.Errorf("process item %s: %w", item.ID, err)
		}
		results = append(results, result)
	}

	return models.PushResponse{Results: results, Length: len(results)}, nil
}

// Pull implements [SyncService].
func (s *syncService) Pull(ctx context.Context, userID int64, req models.PullRequest) (models.PullResponse, error) {
	if userID <= 0 {
		return models.PullResponse{}, ErrInvalidDataProvided
	}

	entries, watermark, err := s.coordinator.EntriesSince(ctx, userID, req.SinceSeq)
	if err != nil {
		return models.PullResponse{}, fmt.Errorf("read change log: %w", err)
	}

	return models.PullResponse{
		Entries:   entries,
		Watermark: watermark,
		Length:    len(entries),
	}, nil
}

// Batch implements [SyncService]. The pull half runs after the push half
// so the response watermark covers the entries the push just appended.
func (s *syncService) Batch(ctx context.Context, userID int64, req models.BatchRequest) (models.BatchResponse, error) {
	pushResp, err := s.Push(ctx, userID, req.Push)
	if err != nil {
		return models.BatchResponse{}, err
	}

	pullResp, err := s.Pull(ctx, userID, req.Pull)
	if err != nil {
		return models.BatchResponse{}, err
	}

	return models.BatchResponse{Push: pushResp, Pull: pullResp}, nil
}

// Resolve implements [SyncService]. The resolved snapshot becomes the new
// authoritative state unconditionally; the resolver already folded the
// server's changes in. The ledger key is derived from the conflict id so
// a replayed resolution is acknowledged without a second version bump.
func (s *syncService) Resolve(ctx context.Context, userID int64, req models.ResolveRequest) (models.ResolveResponse, error) {
	if userID <= 0 || req.ConflictID == "" {
		return models.ResolveResponse{}, ErrInvalidDataProvided
	}

	ledgerID := "resolve:" + req.ConflictID

	if recorded, found, err := s.coordinator.LookupProcessed(ctx, userID, ledgerID); err != nil {
		return models.ResolveResponse{}, fmt.Errorf("lookup processed resolution: %w", err)
	} else if found {
		return models.ResolveResponse{ConflictID: req.ConflictID, ServerVersion: recorded.ServerVersion}, nil
	}

	current, _, err := s.coordinator.CurrentEntity(ctx, userID, req.ResolvedSnapshot.Type, req.ResolvedSnapshot.ID)
	if err != nil {
		return models.ResolveResponse{}, fmt.Errorf("read current entity: %w", err)
	}

	op := models.OperationUpdate
	if req.ResolvedSnapshot.Deleted {
		op = models.OperationDelete
	}

	next := req.ResolvedSnapshot.Clone()
	next.Version = current.Version + 1
	next.ServerVersion = next.Version
	next.UpdatedAt = time.Now().UTC()
	next.Checksum = next.ComputeChecksum()

	newVersion, _, err := s.coordinator.ApplyChange(ctx, userID, next, op, next.Fields, ledgerID, models.OutcomeAccepted)
	if err != nil {
		return models.ResolveResponse{}, fmt.Errorf("apply resolution: %w", err)
	}

	return models.ResolveResponse{ConflictID: req.ConflictID, ServerVersion: newVersion}, nil
}

// processItem classifies one pushed mutation and persists its effect.
func (s *syncService) processItem(ctx context.Context, userID int64, item models.PushItem) (models.PushResult, error) {
	switch item.Operation {
	case models.OperationCreate, models.OperationUpdate, models.OperationDelete:
	default:
		return models.PushResult{}, fmt.Errorf("%w: %q", ErrUnknownOperation, item.Operation)
	}

	recorded, found, err := s.coordinator.LookupProcessed(ctx, userID, item.ID)
	if err != nil {
		return models.PushResult{}, fmt.Errorf("lookup processed push: %w", err)
	}
	if found {
		return s.rehydrateRecorded(ctx, userID, item, recorded)
	}

	current, exists, err := s.coordinator.CurrentEntity(ctx, userID, item.EntityType, item.EntityID)
	if err != nil {
		return models.PushResult{}, fmt.Errorf("read current entity: %w", err)
	}

	if !exists {
		return s.acceptItem(ctx, userID, item, models.Entity{
			Type: item.EntityType,
			ID:   item.EntityID,
		})
	}

	if item.BaseVersion == current.Version {
		return s.acceptItem(ctx, userID, item, current)
	}

	// The client's base is stale: the server moved on since the mutation
	// was made. Overlap with the intervening changes decides the verdict.
	changed, err := s.coordinator.FieldsChangedSince(ctx, userID, item.EntityType, item.EntityID, item.BaseVersion)
	if err != nil {
		return models.PushResult{}, fmt.Errorf("scan changed fields: %w", err)
	}

	if s.overlaps(item, changed, current) {
		return s.rejectConflicting(ctx, userID, item, current)
	}

	return s.supersedeItem(ctx, userID, item, current)
}

// overlaps reports whether the pushed mutation touches anything the
// server changed after the client's base version. A deletion is never
// merged on top of a moved-on entity: silently turning it into an
// update would keep alive an entity the client believes gone, so any
// stale-base deletion conflicts. Likewise any intervening deletion
// contends with the pushed edit.
func (s *syncService) overlaps(item models.PushItem, changed []string, current models.Entity) bool {
	if item.Operation == models.OperationDelete {
		return true
	}
	if current.Deleted {
		return true
	}

	for _, name := range changed {
		if _, ok := item.Diff[name]; ok {
			return true
		}
	}
	return false
}

// acceptItem adopts the client mutation on top of base and increments the
// authoritative version.
func (s *syncService) acceptItem(ctx context.Context, userID int64, item models.PushItem, base models.Entity) (models.PushResult, error) {
	next := base.Clone()
	next.Apply(item.Diff)
	next.Deleted = item.Operation == models.OperationDelete
	next.Version = base.Version + 1
	next.ServerVersion = next.Version
	next.UpdatedAt = time.Now().UTC()
	next.Checksum = next.ComputeChecksum()

	newVersion, _, err := s.coordinator.ApplyChange(ctx, userID, next, item.Operation, item.Diff, item.ID, models.OutcomeAccepted)
	if err != nil {
		return models.PushResult{}, fmt.Errorf("apply accepted change: %w", err)
	}

	return models.PushResult{
		ID:              item.ID,
		Outcome:         models.OutcomeAccepted,
		ServerVersion:   newVersion,
		ServerTimestamp: next.UpdatedAt,
	}, nil
}

// supersedeItem merges a stale but non-overlapping diff on top of the
// current authoritative state. The client learns the fields it missed
// from its next pull.
func (s *syncService) supersedeItem(ctx context.Context, userID int64, item models.PushItem, current models.Entity) (models.PushResult, error) {
	next := current.Clone()
	next.Apply(item.Diff)
	next.Version = current.Version + 1
	next.ServerVersion = next.Version
	next.UpdatedAt = time.Now().UTC()
	next.Checksum = next.ComputeChecksum()

	newVersion, _, err := s.coordinator.ApplyChange(ctx, userID, next, models.OperationUpdate, item.Diff, item.ID, models.OutcomeSuperseded)
	if err != nil {
		return models.PushResult{}, fmt.Errorf("apply superseded change: %w", err)
	}

	return models.PushResult{
		ID:              item.ID,
		Outcome:         models.OutcomeSuperseded,
		ServerVersion:   newVersion,
		ServerTimestamp: next.UpdatedAt,
	}, nil
}

// rejectConflicting records a conflicting verdict without touching entity
// state and hands the authoritative snapshot back for resolution.
func (s *syncService) rejectConflicting(ctx context.Context, userID int64, item models.PushItem, current models.Entity) (models.PushResult, error) {
	snapshot := current.Clone()
	result := models.PushResult{
		ID:              item.ID,
		Outcome:         models.OutcomeConflicting,
		ServerVersion:   current.Version,
		ServerSnapshot:  &snapshot,
		ServerTimestamp: time.Now().UTC(),
	}

	if err := s.coordinator.RecordProcessed(ctx, userID, item.ID, result); err != nil {
		return models.PushResult{}, fmt.Errorf("record conflicting verdict: %w", err)
	}

	return result, nil
}

// rehydrateRecorded rebuilds the original verdict of a replayed push.
// The ledger keeps only the outcome and version; a conflicting replay
// needs the current snapshot reattached so the client can still resolve.
func (s *syncService) rehydrateRecorded(ctx context.Context, userID int64, item models.PushItem, recorded models.PushResult) (models.PushResult, error) {
	if recorded.Outcome != models.OutcomeConflicting {
		return recorded, nil
	}

	current, exists, err := s.coordinator.CurrentEntity(ctx, userID, item.EntityType, item.EntityID)
	if err != nil {
		return models.PushResult{}, fmt.Errorf("read current entity: %w", err)
	}
	if exists {
		snapshot := current.Clone()
		recorded.ServerSnapshot = &snapshot
		recorded.ServerVersion = current.Version
	}

	return recorded, nil
}
