// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-habit-sync/models"
)

func queuedBackgroundJob(id string, priority models.Priority) models.BackgroundJob {
	return models.BackgroundJob{ID: id, Type: "sync", Priority: priority}
}

func TestJobQueue_PriorityThenFIFO(t *testing.T) {
	q := newJobQueue()
	q.Push(queuedBackgroundJob("low-1", models.PriorityLow))
	q.Push(queuedBackgroundJob("normal-1", models.PriorityNormal))
	q.Push(queuedBackgroundJob("high-1", models.PriorityHigh))
	q.Push(queuedBackgroundJob("high-2", models.PriorityHigh))
	q.Push(queuedBackgroundJob("normal-2", models.PriorityNormal))

	var got []string
	for {
		job, ok := q.Pop()
		if !ok {
			break
		}
		got = append(got, job.ID)
	}

	assert.Equal(t, []string{"high-1", "high-2", "normal-1", "normal-2", "low-1"}, got)
}

func TestJobQueue_PushReplacesSameID(t *testing.T) {
	q := newJobQueue()
	q.Push(queuedBackgroundJob("a", models.PriorityNormal))
	q.Push(queuedBackgroundJob("b", models.PriorityNormal))

	// Same priority keeps the original queue position.
	updated := queuedBackgroundJob("a", models.PriorityNormal)
	updated.RetryCount = 1
	q.Push(updated)

	require.Equal(t, 2, q.Len())
	first, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, "a", first.ID)
	assert.Equal(t, 1, first.RetryCount)
}

func TestJobQueue_PriorityBumpMovesJob(t *testing.T) {
	q := newJobQueue()
	q.Push(queuedBackgroundJob("a", models.PriorityLow))
	q.Push(queuedBackgroundJob("b", models.PriorityNormal))

	q.Push(queuedBackgroundJob("a", models.PriorityHigh))

	first, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, "a", first.ID)
	assert.Equal(t, models.PriorityHigh, first.Priority)
}

func TestJobQueue_Remove(t *testing.T) {
	q := newJobQueue()
	q.Push(queuedBackgroundJob("a", models.PriorityNormal))
	q.Push(queuedBackgroundJob("b", models.PriorityHigh))

	assert.True(t, q.Remove("b"))
	assert.False(t, q.Remove("b"))

	job, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, "a", job.ID)
	assert.Equal(t, 0, q.Len())
}

func TestJobQueue_PopRunnableSkipsKeepOrder(t *testing.T) {
	q := newJobQueue()
	q.Push(queuedBackgroundJob("high-blocked", models.PriorityHigh))
	q.Push(queuedBackgroundJob("normal-1", models.PriorityNormal))
	q.Push(queuedBackgroundJob("normal-2", models.PriorityNormal))

	job, ok := q.PopRunnable(func(j models.BackgroundJob) bool {
		return j.ID != "high-blocked"
	})
	require.True(t, ok)
	assert.Equal(t, "normal-1", job.ID)

	// The skipped job is still queued and still first.
	require.Equal(t, 2, q.Len())
	next, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, "high-blocked", next.ID)
}

func TestJobQueue_PopRunnableNoneRunnable(t *testing.T) {
	q := newJobQueue()
	q.Push(queuedBackgroundJob("a", models.PriorityNormal))

	_, ok := q.PopRunnable(func(models.BackgroundJob) bool { return false })
	assert.False(t, ok)
	assert.Equal(t, 1, q.Len())
}
