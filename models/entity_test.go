// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fieldsAt(at time.Time, pairs ...string) FieldDiff {
	diff := make(FieldDiff, len(pairs)/2)
	for i := 0; i < len(pairs)-1; i += 2 {
		diff[pairs[i]] = FieldValue{Value: pairs[i+1], UpdatedAt: at}
	}
	return diff
}

func TestEntity_CloneIsIndependent(t *testing.T) {
	now := time.Now().UTC()
	original := Entity{
		Type:    EntityTypeHabit,
		ID:      "habit-1",
		Fields:  fieldsAt(now, "name", "Meditate"),
		Version: 3,
	}

	clone := original.Clone()
	clone.Fields["name"] = FieldValue{Value: "changed", UpdatedAt: now}
	clone.Fields["extra"] = FieldValue{Value: "new", UpdatedAt: now}

	assert.Equal(t, "Meditate", original.Fields["name"].Value)
	assert.NotContains(t, original.Fields, "extra")
}

func TestEntity_ApplyOverlaysFields(t *testing.T) {
	now := time.Now().UTC()
	entity := Entity{Fields: fieldsAt(now, "name", "Meditate", "streak", "3")}

	entity.Apply(fieldsAt(now, "streak", "4", "note", "morning"))

	assert.Equal(t, "Meditate", entity.Fields["name"].Value)
	assert.Equal(t, "4", entity.Fields["streak"].Value)
	assert.Equal(t, "morning", entity.Fields["note"].Value)
}

func TestEntity_ApplyOnNilFields(t *testing.T) {
	var entity Entity
	entity.Apply(fieldsAt(time.Now().UTC(), "name", "Meditate"))

	assert.Equal(t, "Meditate", entity.Fields["name"].Value)
}

func TestEntity_DiffAgainst(t *testing.T) {
	now := time.Now().UTC()
	entity := Entity{Fields: fieldsAt(now, "name", "Meditate", "streak", "4", "note", "morning")}
	base := fieldsAt(now, "name", "Meditate", "streak", "3")

	diff := entity.DiffAgainst(base)

	assert.NotContains(t, diff, "name")
	assert.Equal(t, "4", diff["streak"].Value)
	assert.Equal(t, "morning", diff["note"].Value)
}

func TestEntity_ComputeChecksum(t *testing.T) {
	now := time.Now().UTC()

	a := Entity{Fields: fieldsAt(now, "name", "Meditate", "streak", "3")}
	b := Entity{Fields: fieldsAt(now, "streak", "3", "name", "Meditate")}

	// Field insertion order must not matter.
	assert.Equal(t, a.ComputeChecksum(), b.ComputeChecksum())

	changed := Entity{Fields: fieldsAt(now, "name", "Meditate", "streak", "4")}
	assert.NotEqual(t, a.ComputeChecksum(), changed.ComputeChecksum())

	// A tombstone hashes differently from a live entity with the same
	// fields.
	tombstone := a
	tombstone.Deleted = true
	assert.NotEqual(t, a.ComputeChecksum(), tombstone.ComputeChecksum())

	// Version counters are not part of the material state.
	versioned := a
	versioned.Version = 99
	assert.Equal(t, a.ComputeChecksum(), versioned.ComputeChecksum())
}

func TestSyncItem_RetriesExhausted(t *testing.T) {
	assert.False(t, SyncItem{RetryCount: 2, MaxRetries: 3}.RetriesExhausted())
	assert.True(t, SyncItem{RetryCount: 3, MaxRetries: 3}.RetriesExhausted())
}

func TestBackgroundJob_DueAndPeriodic(t *testing.T) {
	now := time.Now()

	assert.True(t, BackgroundJob{ScheduledFor: now.Add(-time.Second)}.Due(now))
	assert.True(t, BackgroundJob{ScheduledFor: now}.Due(now))
	assert.False(t, BackgroundJob{ScheduledFor: now.Add(time.Second)}.Due(now))

	assert.True(t, BackgroundJob{RepeatInterval: time.Minute}.Periodic())
	assert.False(t, BackgroundJob{}.Periodic())
}

func TestPriority_String(t *testing.T) {
	assert.Equal(t, "low", PriorityLow.String())
	assert.Equal(t, "normal", PriorityNormal.String())
	assert.Equal(t, "high", PriorityHigh.String())
	assert.Equal(t, "critical", PriorityCritical.String())
}
