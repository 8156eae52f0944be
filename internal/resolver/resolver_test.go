// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-habit-sync/models"
)

func TestRegistry_StrategyFor(t *testing.T) {
	registry := NewRegistry(models.StrategyServerWins)
	registry.SetStrategy(models.EntityTypeGoal, models.StrategyClientWins)

	assert.Equal(t, models.StrategyClientWins, registry.StrategyFor(models.EntityTypeGoal))
	assert.Equal(t, models.StrategyServerWins, registry.StrategyFor(models.EntityTypeHabit))
}

func TestRegistry_DefaultFallbackIsMerge(t *testing.T) {
	registry := NewRegistry("")

	assert.Equal(t, models.StrategyMerge, registry.StrategyFor(models.EntityTypeHabit))
}

func TestRegistry_Resolve(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	local := habitEntity(models.FieldDiff{"name": fv("local name", t1.Add(time.Minute))})
	remote := habitEntity(models.FieldDiff{"name": fv("remote name", t1)})

	registry := NewRegistry(models.StrategyMerge)

	tests := []struct {
		name     string
		strategy models.Strategy
		wantName string
		wantErr  error
	}{
		{name: "ServerWins", strategy: models.StrategyServerWins, wantName: "remote name"},
		{name: "ClientWins", strategy: models.StrategyClientWins, wantName: "local name"},
		{name: "Merge", strategy: models.StrategyMerge, wantName: "local name"},
		{name: "Manual", strategy: models.StrategyManual, wantErr: ErrManualResolution},
		{name: "Unknown", strategy: models.Strategy("coin-flip"), wantErr: ErrUnknownStrategy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, err := registry.Resolve(tt.strategy, local, remote)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, resolved.Fields["name"].Value)
		})
	}
}

func TestRegistry_Resolve_DoesNotMutateInputs(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	local := habitEntity(models.FieldDiff{"name": fv("original", t1)})
	remote := habitEntity(models.FieldDiff{"name": fv("remote", t1.Add(time.Minute))})

	registry := NewRegistry(models.StrategyClientWins)
	resolved, err := registry.Resolve(models.StrategyClientWins, local, remote)
	require.NoError(t, err)

	resolved.Fields["name"] = fv("changed after resolve", t1)
	assert.Equal(t, "original", local.Fields["name"].Value)
}

func TestRegistry_InvariantHook(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	local := habitEntity(models.FieldDiff{"streak": fv("-3", t1.Add(time.Minute))})
	remote := habitEntity(models.FieldDiff{"streak": fv("5", t1)})

	registry := NewRegistry(models.StrategyMerge)
	registry.SetInvariantHook(models.EntityTypeHabit, func(merged models.Entity) models.Entity {
		if v, ok := merged.Fields["streak"]; ok && len(v.Value) > 0 && v.Value[0] == '-' {
			v.Value = "0"
			merged.Fields["streak"] = v
		}
		return merged
	})

	resolved, err := registry.Resolve(models.StrategyMerge, local, remote)
	require.NoError(t, err)
	assert.Equal(t, "0", resolved.Fields["streak"].Value)
}
