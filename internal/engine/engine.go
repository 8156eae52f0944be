// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package engine implements the client-side sync engine: it drains the
// pending sync queue to the coordinator in batches, pulls and applies
// remote deltas past the local watermark, detects and resolves version
// conflicts, and emits non-blocking status events for UI collaborators.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-habit-sync/internal/resolver"
	"github.com/MKhiriev/go-habit-sync/internal/store"
	"github.com/MKhiriev/go-habit-sync/models"
)

// Config bounds one sync pass.
type Config struct {
	// BatchSize caps the number of items in one push round trip.
	BatchSize int
	// MaxAttempts caps transport retries for a single round trip.
	MaxAttempts int
	// BackoffBase and BackoffCap shape the retry delay curve.
	BackoffBase time.Duration
	BackoffCap  time.Duration
}

func (c *Config) applyDefaults() {
	if c.BatchSize <= 0 {
		c.BatchSize = 50
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = time.Second
	}
	if c.BackoffCap <= 0 {
		c.BackoffCap = 5 * time.Minute
	}
}

// Engine drives synchronization between the local store and the
// coordinator. All its blocking operations honour ctx cancellation; a
// cancelled pass leaves items in their persisted state and is safe to
// re-run.
type Engine struct {
	cfg      Config
	entities store.EntityStorage
	items    store.SyncItemStorage
	conflict store.ConflictStorage
	gateway  ServerGateway
	registry *resolver.Registry
	network  ConnectivityChecker
	log      zerolog.Logger
	bo       backoff
	events   broadcaster

	// mu guards the full-pass flag and the per-entity locks. An entity
	// with an in-flight item is never pushed concurrently; mutations made
	// meanwhile queue behind it in the store.
	mu       sync.Mutex
	fullPass bool
	locked   map[models.EntityKey]struct{}

	status atomic.Value // models.SyncStatusIndicator
}

// NewEngine constructs an Engine over the client storages and the server
// gateway.
func NewEngine(
	cfg Config,
	storages *store.ClientStorages,
	gateway ServerGateway,
	registry *resolver.Registry,
	network ConnectivityChecker,
	log zerolog.Logger,
) *Engine {
	cfg.applyDefaults()
	e := &Engine{
		cfg:      cfg,
		entities: storages.Entities,
		items:    storages.SyncItems,
		conflict: storages.Conflicts,
		gateway:  gateway,
		registry: registry,
		network:  network,
		log:      log,
		bo:       backoff{base: cfg.BackoffBase, cap: cfg.BackoffCap},
		locked:   make(map[models.EntityKey]struct{}),
	}
	e.status.Store(models.SyncStatusIdle)
	return e
}

// Status returns the coarse indicator for UI collaborators.
func (e *Engine) Status() models.SyncStatusIndicator {
	return e.status.Load().(models.SyncStatusIndicator)
}

// Subscribe returns a channel of sync events. Delivery is best-effort;
// the engine never blocks on a subscriber.
func (e *Engine) Subscribe() <-chan models.SyncEvent {
	return e.events.subscribe()
}

// PendingItems returns queued sync work, highest priority first.
func (e *Engine) PendingItems(ctx context.Context) ([]models.SyncItem, error) {
	return e.items.PendingItems(ctx)
}

// FailedItems returns items whose retries are exhausted.
func (e *Engine) FailedItems(ctx context.Context) ([]models.SyncItem, error) {
	return e.items.FailedItems(ctx)
}

// OpenConflicts returns unresolved conflict records.
func (e *Engine) OpenConflicts(ctx context.Context) ([]models.ConflictRecord, error) {
	return e.conflict.OpenConflicts(ctx)
}

// PendingConflictCount returns the number of unresolved conflicts.
func (e *Engine) PendingConflictCount(ctx context.Context) (int, error) {
	open, err := e.conflict.OpenConflicts(ctx)
	if err != nil {
		return 0, err
	}
	return len(open), nil
}

// ForcePush re-queues a failed item for another attempt, resetting its
// retry budget. Failed items are only ever retried through here.
func (e *Engine) ForcePush(ctx context.Context, itemID string) error {
	item, err := e.items.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.Status != models.StatusFailed {
		return fmt.Errorf("%w: item %s is %s", ErrNothingPending, itemID, item.Status)
	}
	return e.items.UpdateRetry(ctx, itemID, 0, models.StatusPending)
}

// SyncAll runs one full pass: push all pending items in batches, then
// pull and apply remote deltas past the watermark. Only one full pass
// runs at a time.
func (e *Engine) SyncAll(ctx context.Context) (models.SyncSummary, error) {
	if !e.network.Online() {
		return models.SyncSummary{}, ErrOffline
	}

	e.mu.Lock()
	if e.fullPass {
		e.mu.Unlock()
		return models.SyncSummary{}, ErrSyncInProgress
	}
	e.fullPass = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.fullPass = false
		e.mu.Unlock()
	}()

	e.status.Store(models.SyncStatusSyncing)
	e.events.publish(models.SyncEvent{Type: models.SyncEventStarted})

	var summary models.SyncSummary
	pushErr := e.pushPending(ctx, &summary)
	pullErr := e.pullRemote(ctx, &summary)

	err := errors.Join(pushErr, pullErr)
	e.settleStatus(ctx, err)

	if err != nil {
		e.events.publish(models.SyncEvent{Type: models.SyncEventFailed, Err: err.Error()})
		return summary, err
	}

	e.events.publish(models.SyncEvent{Type: models.SyncEventCompleted})
	e.log.Info().
		Str("func", "SyncAll").
		Int("pushed", summary.Pushed).
		Int("pulled", summary.Pulled).
		Int("conflicts", summary.Conflicts).
		Int("failed", summary.Failed).
		Msg("sync pass finished")

	return summary, nil
}

// SyncEntity pushes the entity's pending item (if any) and then pulls
// remote deltas. Returns ErrEntitySyncing when the entity is already
// locked by another pass.
func (e *Engine) SyncEntity(ctx context.Context, entityType models.EntityType, entityID string) error {
	if !e.network.Online() {
		return ErrOffline
	}

	pending, err := e.items.PendingItems(ctx)
	if err != nil {
		return err
	}

	key := models.EntityKey{Type: entityType, ID: entityID}
	var summary models.SyncSummary
	for _, item := range pending {
		if item.EntityType != entityType || item.EntityID != entityID {
			continue
		}
		if !e.lockEntity(key) {
			return ErrEntitySyncing
		}
		err = e.pushBatch(ctx, []models.SyncItem{item}, &summary)
		e.unlockEntity(key)
		if err != nil {
			return err
		}
		break
	}

	return e.pullRemote(ctx, &summary)
}

// pushPending drains the pending queue in priority order, batch by batch.
// The final batch rides a combined push-pull round trip: the server
// answers its pull half after applying the push, so the pass picks up
// the verdict fallout one request sooner.
func (e *Engine) pushPending(ctx context.Context, summary *models.SyncSummary) error {
	pending, err := e.items.PendingItems(ctx)
	if err != nil {
		return fmt.Errorf("load pending items: %w", err)
	}

	var (
		batches [][]models.SyncItem
		batch   []models.SyncItem
	)
	for _, item := range pending {
		if !e.lockEntity(models.EntityKey{Type: item.EntityType, ID: item.EntityID}) {
			continue // entity already in flight, the item stays queued
		}
		batch = append(batch, item)
		if len(batch) >= e.cfg.BatchSize {
			batches = append(batches, batch)
			batch = nil
		}
	}
	if len(batch) > 0 {
		batches = append(batches, batch)
	}

	for i, b := range batches {
		if i == len(batches)-1 {
			err = e.batchRoundTrip(ctx, b, summary)
		} else {
			err = e.pushBatch(ctx, b, summary)
		}
		for _, item := range b {
			e.unlockEntity(models.EntityKey{Type: item.EntityType, ID: item.EntityID})
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// markSyncing flips every item in the batch to syncing and builds the
// wire request for it.
func (e *Engine) markSyncing(ctx context.Context, batch []models.SyncItem) (models.PushRequest, error) {
	req := models.PushRequest{Items: make([]models.PushItem, 0, len(batch)), Length: len(batch)}
	for _, item := range batch {
		if err := e.items.MarkStatus(ctx, item.ID, models.StatusSyncing); err != nil {
			return models.PushRequest{}, fmt.Errorf("mark item %s syncing: %w", item.ID, err)
		}
		req.Items = append(req.Items, models.PushItem{
			ID:            item.ID,
			EntityType:    item.EntityType,
			EntityID:      item.EntityID,
			Operation:     item.Operation,
			Diff:          item.Diff,
			BaseVersion:   item.BaseVersion,
			ClientVersion: item.LocalData.Version,
			LocalSnapshot: item.LocalData,
		})
	}

	return req, nil
}

// settleVerdicts applies the server's per-item verdicts onto the batch.
func (e *Engine) settleVerdicts(ctx context.Context, batch []models.SyncItem, resp models.PushResponse, summary *models.SyncSummary) error {
	results := make(map[string]models.PushResult, len(resp.Results))
	for _, res := range resp.Results {
		results[res.ID] = res
	}

	for _, item := range batch {
		res, ok := results[item.ID]
		if !ok {
			// The server did not answer for this item; treat as a failed
			// attempt so it is retried next pass.
			e.failItem(ctx, item, summary, errors.New("no verdict for item"))
			continue
		}
		if err := e.applyVerdict(ctx, item, res, summary); err != nil {
			return err
		}
	}

	return nil
}

// pushBatch sends one batch and applies the per-item verdicts. A
// transport failure counts one attempt against every item in the batch.
func (e *Engine) pushBatch(ctx context.Context, batch []models.SyncItem, summary *models.SyncSummary) error {
	req, err := e.markSyncing(ctx, batch)
	if err != nil {
		return err
	}

	resp, err := withRetry(ctx, e, func(ctx context.Context) (models.PushResponse, error) {
		return e.gateway.Push(ctx, req)
	})
	if err != nil {
		e.failBatch(ctx, batch, summary, err)
		return fmt.Errorf("push batch: %w", err)
	}

	return e.settleVerdicts(ctx, batch, resp, summary)
}

// batchRoundTrip pushes one batch and pulls the next change-log page in
// a single combined request. The pulled page already reflects this
// batch's accepted changes; pullRemote pages through the rest.
func (e *Engine) batchRoundTrip(ctx context.Context, batch []models.SyncItem, summary *models.SyncSummary) error {
	req, err := e.markSyncing(ctx, batch)
	if err != nil {
		return err
	}

	watermark, err := e.entities.Watermark(ctx)
	if err != nil {
		return fmt.Errorf("read watermark: %w", err)
	}

	resp, err := withRetry(ctx, e, func(ctx context.Context) (models.BatchResponse, error) {
		return e.gateway.Batch(ctx, models.BatchRequest{
			Push: req,
			Pull: models.PullRequest{SinceSeq: watermark},
		})
	})
	if err != nil {
		e.failBatch(ctx, batch, summary, err)
		return fmt.Errorf("batch round trip: %w", err)
	}

	if err = e.settleVerdicts(ctx, batch, resp.Push, summary); err != nil {
		return err
	}

	return e.applyPulled(ctx, resp.Pull, summary)
}

// applyVerdict settles one pushed item according to the server's verdict.
func (e *Engine) applyVerdict(ctx context.Context, item models.SyncItem, res models.PushResult, summary *models.SyncSummary) error {
	switch res.Outcome {
	case models.OutcomeAccepted:
		if item.Operation == models.OperationDelete {
			if err := e.entities.Purge(ctx, item.EntityType, item.EntityID); err != nil {
				return fmt.Errorf("purge %s/%s: %w", item.EntityType, item.EntityID, err)
			}
		} else if err := e.entities.AckServerVersion(ctx, item.EntityType, item.EntityID, res.ServerVersion); err != nil && !errors.Is(err, store.ErrEntityNotFound) {
			return fmt.Errorf("ack server version: %w", err)
		}
		if err := e.items.MarkStatus(ctx, item.ID, models.StatusCompleted); err != nil {
			return fmt.Errorf("mark item %s completed: %w", item.ID, err)
		}
		summary.Pushed++
		return nil

	case models.OutcomeSuperseded:
		// The server folded the change into a newer state this client has
		// not seen yet. Local state stays untouched, acknowledgment
		// included: the pull phase must still apply every entry between
		// this client's base and the merged version, and recording the
		// merged version here would make the skip check in ApplyRemote
		// drop those intervening entries.
		if err := e.items.MarkStatus(ctx, item.ID, models.StatusCompleted); err != nil {
			return fmt.Errorf("mark item %s completed: %w", item.ID, err)
		}
		summary.Pushed++
		return nil

	case models.OutcomeConflicting:
		return e.recordConflict(ctx, item, res, summary)

	default:
		e.failItem(ctx, item, summary, fmt.Errorf("unknown outcome %q", res.Outcome))
		return nil
	}
}

// recordConflict persists a conflict record for the item and immediately
// resolves it unless the entity type is configured for manual resolution.
func (e *Engine) recordConflict(ctx context.Context, item models.SyncItem, res models.PushResult, summary *models.SyncSummary) error {
	if res.ServerSnapshot == nil {
		e.failItem(ctx, item, summary, errors.New("conflicting verdict without server snapshot"))
		return nil
	}

	rec := models.ConflictRecord{
		ID:         uuid.NewString(),
		SyncItemID: item.ID,
		EntityType: item.EntityType,
		EntityID:   item.EntityID,
		Local:      item.LocalData,
		Remote:     *res.ServerSnapshot,
		Strategy:   e.registry.StrategyFor(item.EntityType),
		DetectedAt: time.Now(),
	}
	if err := e.conflict.SaveConflict(ctx, rec); err != nil {
		return fmt.Errorf("save conflict: %w", err)
	}
	if err := e.items.MarkStatus(ctx, item.ID, models.StatusConflict); err != nil {
		return fmt.Errorf("mark item %s conflict: %w", item.ID, err)
	}

	summary.Conflicts++
	e.events.publish(models.SyncEvent{
		Type:       models.SyncEventConflict,
		EntityType: item.EntityType,
		EntityID:   item.EntityID,
		SyncItemID: item.ID,
	})

	e.log.Warn().
		Str("func", "recordConflict").
		Str("entity_type", string(item.EntityType)).
		Str("entity_id", item.EntityID).
		Str("strategy", string(rec.Strategy)).
		Msg("conflict detected")

	if rec.Strategy == models.StrategyManual {
		return nil
	}
	if err := e.resolveRecord(ctx, rec, rec.Strategy); err != nil {
		// Auto-resolution failing is not fatal to the pass; the record
		// stays open for a later attempt.
		e.log.Error().Err(err).
			Str("func", "recordConflict").
			Str("conflict_id", rec.ID).
			Msg("automatic resolution failed")
	}
	return nil
}

// ResolveConflict applies the given strategy to an open conflict: the
// resolution is pushed to the coordinator, applied locally as an
// authoritative change, and the record is closed.
func (e *Engine) ResolveConflict(ctx context.Context, conflictID string, strategy models.Strategy) error {
	if !e.network.Online() {
		return ErrOffline
	}

	rec, err := e.conflict.GetConflict(ctx, conflictID)
	if err != nil {
		return err
	}
	if rec.Resolved {
		return fmt.Errorf("%w: %s", ErrConflictResolved, conflictID)
	}
	if strategy == "" {
		strategy = rec.Strategy
	}

	return e.resolveRecord(ctx, rec, strategy)
}

func (e *Engine) resolveRecord(ctx context.Context, rec models.ConflictRecord, strategy models.Strategy) error {
	resolved, err := e.registry.Resolve(strategy, rec.Local, rec.Remote)
	if err != nil {
		return err
	}

	resp, err := withRetry(ctx, e, func(ctx context.Context) (models.ResolveResponse, error) {
		return e.gateway.Resolve(ctx, models.ResolveRequest{
			ConflictID:       rec.ID,
			Strategy:         strategy,
			ResolvedSnapshot: resolved,
		})
	})
	if err != nil {
		return fmt.Errorf("push resolution: %w", err)
	}

	// Apply the resolution as an authoritative remote change so no new
	// sync item is queued for it.
	op := models.OperationUpdate
	if resolved.Deleted {
		op = models.OperationDelete
	}
	if _, err = e.entities.ApplyRemote(ctx, models.ChangeLogEntry{
		EntityType: rec.EntityType,
		EntityID:   rec.EntityID,
		Operation:  op,
		Diff:       resolved.Fields,
		Version:    resp.ServerVersion,
		At:         time.Now(),
	}); err != nil {
		return fmt.Errorf("apply resolution: %w", err)
	}

	if err = e.conflict.MarkResolved(ctx, rec.ID, resolved, strategy, time.Now()); err != nil {
		return fmt.Errorf("mark conflict resolved: %w", err)
	}
	if err = e.items.MarkStatus(ctx, rec.SyncItemID, models.StatusCompleted); err != nil && !errors.Is(err, store.ErrSyncItemNotFound) {
		return fmt.Errorf("complete conflicted item: %w", err)
	}

	e.log.Info().
		Str("func", "resolveRecord").
		Str("conflict_id", rec.ID).
		Str("strategy", string(strategy)).
		Int64("server_version", resp.ServerVersion).
		Msg("conflict resolved")

	return nil
}

// pullRemote applies server change-log entries past the watermark until
// the server has nothing newer.
func (e *Engine) pullRemote(ctx context.Context, summary *models.SyncSummary) error {
	for {
		watermark, err := e.entities.Watermark(ctx)
		if err != nil {
			return fmt.Errorf("read watermark: %w", err)
		}

		resp, err := withRetry(ctx, e, func(ctx context.Context) (models.PullResponse, error) {
			return e.gateway.Pull(ctx, models.PullRequest{SinceSeq: watermark})
		})
		if err != nil {
			return fmt.Errorf("pull: %w", err)
		}
		if len(resp.Entries) == 0 {
			return nil
		}

		if err = e.applyPulled(ctx, resp, summary); err != nil {
			return err
		}

		if resp.Watermark <= watermark {
			// The server reported no progress; stop rather than spin.
			return nil
		}
	}
}

// applyPulled applies one pulled change-log page and advances the
// watermark past it.
func (e *Engine) applyPulled(ctx context.Context, resp models.PullResponse, summary *models.SyncSummary) error {
	if len(resp.Entries) == 0 {
		return nil
	}

	for _, entry := range resp.Entries {
		if _, err := e.entities.ApplyRemote(ctx, entry); err != nil {
			return fmt.Errorf("apply entry seq %d: %w", entry.Seq, err)
		}
	}
	if err := e.entities.SetWatermark(ctx, resp.Watermark); err != nil {
		return fmt.Errorf("advance watermark: %w", err)
	}
	summary.Pulled += len(resp.Entries)

	return nil
}

// GetEntity reads an entity through the corruption recovery path: a
// checksum or version-regression failure discards the local copy and
// replays the server change log before retrying the read.
func (e *Engine) GetEntity(ctx context.Context, entityType models.EntityType, entityID string) (models.Entity, error) {
	entity, err := e.entities.Get(ctx, entityType, entityID)
	if !errors.Is(err, store.ErrStorageCorruption) {
		return entity, err
	}

	e.log.Warn().
		Str("func", "GetEntity").
		Str("entity_type", string(entityType)).
		Str("entity_id", entityID).
		Msg("local copy corrupted, discarding and re-pulling")

	if err = e.entities.Discard(ctx, entityType, entityID); err != nil {
		return models.Entity{}, fmt.Errorf("discard corrupted entity: %w", err)
	}
	if !e.network.Online() {
		return models.Entity{}, ErrOffline
	}

	// Replay the full server log; entries for healthy entities are
	// skipped by the version check in ApplyRemote.
	resp, err := withRetry(ctx, e, func(ctx context.Context) (models.PullResponse, error) {
		return e.gateway.Pull(ctx, models.PullRequest{SinceSeq: 0})
	})
	if err != nil {
		return models.Entity{}, fmt.Errorf("re-pull after corruption: %w", err)
	}
	for _, entry := range resp.Entries {
		if _, err = e.entities.ApplyRemote(ctx, entry); err != nil {
			return models.Entity{}, fmt.Errorf("apply entry seq %d: %w", entry.Seq, err)
		}
	}

	return e.entities.Get(ctx, entityType, entityID)
}

// CompactAckedChanges removes local change-log entries below the oldest
// outstanding sync item. With nothing outstanding the whole log is
// acknowledged and dropped.
func (e *Engine) CompactAckedChanges(ctx context.Context) error {
	pending, err := e.items.PendingItems(ctx)
	if err != nil {
		return err
	}
	failed, err := e.items.FailedItems(ctx)
	if err != nil {
		return err
	}

	minSeq := int64(math.MaxInt64)
	for _, item := range append(pending, failed...) {
		if item.Seq < minSeq {
			minSeq = item.Seq
		}
	}

	if minSeq == math.MaxInt64 {
		return e.entities.CompactChangeLog(ctx, math.MaxInt64)
	}
	return e.entities.CompactChangeLog(ctx, minSeq-1)
}

// PruneCompletedItems removes completed sync items older than the cutoff.
func (e *Engine) PruneCompletedItems(ctx context.Context, olderThan time.Time) error {
	return e.items.PruneCompleted(ctx, olderThan)
}

// failBatch counts a failed attempt against every item in the batch.
func (e *Engine) failBatch(ctx context.Context, batch []models.SyncItem, summary *models.SyncSummary, cause error) {
	for _, item := range batch {
		e.failItem(ctx, item, summary, cause)
	}
}

// failItem increments the item's retry count, marking it failed once the
// budget is spent. Failed items stay visible; they are never dropped.
func (e *Engine) failItem(ctx context.Context, item models.SyncItem, summary *models.SyncSummary, cause error) {
	item.RetryCount++
	status := models.StatusPending
	if item.RetriesExhausted() {
		status = models.StatusFailed
		summary.Failed++
		e.events.publish(models.SyncEvent{
			Type:       models.SyncEventFailed,
			EntityType: item.EntityType,
			EntityID:   item.EntityID,
			SyncItemID: item.ID,
			Err:        cause.Error(),
		})
	}

	if err := e.items.UpdateRetry(ctx, item.ID, item.RetryCount, status); err != nil {
		e.log.Error().Err(err).
			Str("func", "failItem").
			Str("item_id", item.ID).
			Msg("failed to persist retry state")
	}

	e.log.Warn().Err(cause).
		Str("func", "failItem").
		Str("item_id", item.ID).
		Int("retry", item.RetryCount).
		Str("status", string(status)).
		Msg("sync item attempt failed")
}

// settleStatus recomputes the indicator after a pass.
func (e *Engine) settleStatus(ctx context.Context, passErr error) {
	if passErr != nil {
		e.status.Store(models.SyncStatusError)
		return
	}
	open, err := e.conflict.OpenConflicts(ctx)
	if err == nil && len(open) > 0 {
		e.status.Store(models.SyncStatusConflictPending)
		return
	}
	e.status.Store(models.SyncStatusIdle)
}

// lockEntity takes the per-entity exclusive sync lock.
func (e *Engine) lockEntity(key models.EntityKey) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, taken := e.locked[key]; taken {
		return false
	}
	e.locked[key] = struct{}{}
	return true
}

func (e *Engine) unlockEntity(key models.EntityKey) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.locked, key)
}

// withRetry runs one server round trip with capped exponential backoff.
func withRetry[T any](ctx context.Context, e *Engine, call func(context.Context) (T, error)) (T, error) {
	var (
		resp T
		err  error
	)
	for attempt := 0; attempt < e.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			if waitErr := e.bo.wait(ctx, attempt-1); waitErr != nil {
				return resp, waitErr
			}
		}
		resp, err = call(ctx)
		if err == nil {
			return resp, nil
		}
		if ctx.Err() != nil {
			return resp, err
		}
	}
	return resp, err
}
