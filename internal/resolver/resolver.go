// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package resolver implements conflict resolution strategies for divergent
// entity versions. Every strategy is a pure function of the two candidate
// snapshots: no storage, clock, or network access, which is what makes
// resolution deterministic and therefore convergent across replicas.
package resolver

import (
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-habit-sync/models"
)

// ErrManualResolution is returned by Resolve when the selected strategy is
// manual: the conflict record stays open until an external decision
// arrives.
var ErrManualResolution = errors.New("conflict requires manual resolution")

// ErrUnknownStrategy is returned for a strategy the registry cannot map.
var ErrUnknownStrategy = errors.New("unknown resolution strategy")

// InvariantHook post-processes a merged entity so that entity types with
// application-level invariants (e.g. a count that must not go negative)
// can adjust the mechanical merge result. The hook must itself be pure
// and deterministic. The default hook is the identity.
type InvariantHook func(merged models.Entity) models.Entity

// Registry maps entity types to their resolution strategy and optional
// invariant hook. A zero Registry resolves everything with the merge
// strategy.
type Registry struct {
	mu         sync.RWMutex
	strategies map[models.EntityType]models.Strategy
	hooks      map[models.EntityType]InvariantHook
	fallback   models.Strategy
}

// NewRegistry constructs a Registry with the given global default
// strategy. An empty fallback defaults to merge.
func NewRegistry(fallback models.Strategy) *Registry {
	if fallback == "" {
		fallback = models.StrategyMerge
	}
	return &Registry{
		strategies: make(map[models.EntityType]models.Strategy),
		hooks:      make(map[models.EntityType]InvariantHook),
		fallback:   fallback,
	}
}

// SetStrategy overrides the strategy for one entity type.
func (r *Registry) SetStrategy(entityType models.EntityType, strategy models.Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[entityType] = strategy
}

// SetInvariantHook registers a post-merge hook for one entity type.
func (r *Registry) SetInvariantHook(entityType models.EntityType, hook InvariantHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[entityType] = hook
}

// StrategyFor returns the effective strategy for the entity type.
func (r *Registry) StrategyFor(entityType models.EntityType) models.Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if s, ok := r.strategies[entityType]; ok {
		return s
	}
	return r.fallback
}

// Resolve applies the given strategy to the local and remote snapshots and
// returns the resolved entity. The result carries no version or checksum;
// the caller persists it through the local store, which bumps the version
// and appends the change-log entry that replicates the resolution.
//
// Returns ErrManualResolution for the manual strategy and
// ErrUnknownStrategy for anything unrecognised.
func (r *Registry) Resolve(strategy models.Strategy, local, remote models.Entity) (models.Entity, error) {
	var resolved models.Entity

	switch strategy {
	case models.StrategyServerWins:
		resolved = remote.Clone()
	case models.StrategyClientWins:
		resolved = local.Clone()
	case models.StrategyMerge:
		resolved = Merge(local, remote)
	case models.StrategyManual:
		return models.Entity{}, ErrManualResolution
	default:
		return models.Entity{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	r.mu.RLock()
	hook := r.hooks[local.Type]
	r.mu.RUnlock()
	if hook != nil {
		resolved = hook(resolved)
	}

	return resolved, nil
}
