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

// fv is a shorthand constructor for FieldValue used only in tests.
func fv(value string, at time.Time) models.FieldValue {
	return models.FieldValue{Value: value, UpdatedAt: at}
}

func habitEntity(fields models.FieldDiff) models.Entity {
	return models.Entity{Type: models.EntityTypeHabit, ID: "habit-1", Fields: fields}
}

func TestMerge_DecisionMatrix(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	tests := []struct {
		name       string
		local      models.FieldDiff
		remote     models.FieldDiff
		wantFields models.FieldDiff
	}{
		{
			name:       "DisjointFields → BothKept",
			local:      models.FieldDiff{"name": fv("Morning run", t1)},
			remote:     models.FieldDiff{"streak": fv("7", t2)},
			wantFields: models.FieldDiff{"name": fv("Morning run", t1), "streak": fv("7", t2)},
		},
		{
			name:       "EqualValues → Kept",
			local:      models.FieldDiff{"name": fv("Morning run", t1)},
			remote:     models.FieldDiff{"name": fv("Morning run", t2)},
			wantFields: models.FieldDiff{"name": fv("Morning run", t2)},
		},
		{
			name:       "BothChanged/LocalLater → LocalWins",
			local:      models.FieldDiff{"name": fv("Evening run", t2)},
			remote:     models.FieldDiff{"name": fv("Morning walk", t1)},
			wantFields: models.FieldDiff{"name": fv("Evening run", t2)},
		},
		{
			name:       "BothChanged/RemoteLater → RemoteWins",
			local:      models.FieldDiff{"name": fv("Evening run", t1)},
			remote:     models.FieldDiff{"name": fv("Morning walk", t2)},
			wantFields: models.FieldDiff{"name": fv("Morning walk", t2)},
		},
		{
			name:       "TimestampTie → LexicographicTieBreak",
			local:      models.FieldDiff{"name": fv("Alpha", t1)},
			remote:     models.FieldDiff{"name": fv("Beta", t1)},
			wantFields: models.FieldDiff{"name": fv("Beta", t1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(habitEntity(tt.local), habitEntity(tt.remote))
			assert.Equal(t, tt.wantFields, got.Fields)
		})
	}
}

// Merging the same two snapshots in either order must produce the same
// field set; both replicas rely on this to converge without another
// round trip.
func TestMerge_Commutative(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	local := habitEntity(models.FieldDiff{
		"name":   fv("Morning run", t2),
		"streak": fv("3", t1),
		"note":   fv("before breakfast", t1),
	})
	remote := habitEntity(models.FieldDiff{
		"name":   fv("Morning jog", t1),
		"streak": fv("5", t2),
		"target": fv("daily", t2),
	})

	ab := Merge(local, remote)
	ba := Merge(remote, local)

	assert.Equal(t, ab.Fields, ba.Fields)
	assert.Equal(t, ab.Deleted, ba.Deleted)
}

func TestMerge_Deterministic(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	local := habitEntity(models.FieldDiff{"name": fv("A", t1), "streak": fv("1", t1)})
	remote := habitEntity(models.FieldDiff{"name": fv("B", t1), "streak": fv("2", t1)})

	first := Merge(local, remote)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first.Fields, Merge(local, remote).Fields)
	}
}

// Two clients editing different fields of the same entity offline must
// both see their change in the merged result.
func TestMerge_NoLostUpdates(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	local := habitEntity(models.FieldDiff{"name": fv("Morning run", t1), "note": fv("local edit", t1.Add(time.Minute))})
	remote := habitEntity(models.FieldDiff{"name": fv("Morning run", t1), "streak": fv("9", t1.Add(time.Second))})

	merged := Merge(local, remote)

	require.Contains(t, merged.Fields, "note")
	require.Contains(t, merged.Fields, "streak")
	assert.Equal(t, "local edit", merged.Fields["note"].Value)
	assert.Equal(t, "9", merged.Fields["streak"].Value)
}

func TestMerge_Tombstones(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	t.Run("BothDeleted → Deleted", func(t *testing.T) {
		local := habitEntity(nil)
		local.Deleted = true
		local.UpdatedAt = t1
		remote := habitEntity(nil)
		remote.Deleted = true
		remote.UpdatedAt = t2

		assert.True(t, Merge(local, remote).Deleted)
	})

	t.Run("StaleDelete/NewerRemoteEdit → Alive", func(t *testing.T) {
		local := habitEntity(nil)
		local.Deleted = true
		local.UpdatedAt = t1
		remote := habitEntity(models.FieldDiff{"name": fv("Back again", t2)})

		assert.False(t, Merge(local, remote).Deleted)
	})

	t.Run("FreshDelete/OlderRemoteEdit → Deleted", func(t *testing.T) {
		local := habitEntity(nil)
		local.Deleted = true
		local.UpdatedAt = t2
		remote := habitEntity(models.FieldDiff{"name": fv("Old edit", t1)})

		assert.True(t, Merge(local, remote).Deleted)
	})
}
