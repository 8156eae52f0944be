// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package scheduler

import (
	"container/heap"

	"github.com/MKhiriev/go-habit-sync/models"
)

// jobQueue orders jobs by priority tier, first-in-first-out within a
// tier. Insertion order is tracked by a monotonically increasing
// sequence number so that two jobs of the same priority never starve
// each other.
type jobQueue struct {
	items heap.Interface
	index map[string]*queuedJob
	seq   uint64
}

type queuedJob struct {
	job models.BackgroundJob
	seq uint64
	pos int
}

func newJobQueue() *jobQueue {
	q := &jobQueue{
		items: &jobHeap{},
		index: make(map[string]*queuedJob),
	}
	heap.Init(q.items)
	return q
}

// Push enqueues the job, replacing any queued job with the same ID. The
// replacement keeps the original insertion order only when the priority
// did not change; a priority bump re-enters the queue at the new tier's
// tail.
func (q *jobQueue) Push(job models.BackgroundJob) {
	if existing, ok := q.index[job.ID]; ok {
		if existing.job.Priority == job.Priority {
			existing.job = job
			return
		}
		q.Remove(job.ID)
	}

	q.seq++
	item := &queuedJob{job: job, seq: q.seq}
	q.index[job.ID] = item
	heap.Push(q.items, item)
}

// Pop removes and returns the highest-priority job.
func (q *jobQueue) Pop() (models.BackgroundJob, bool) {
	if q.items.Len() == 0 {
		return models.BackgroundJob{}, false
	}
	item := heap.Pop(q.items).(*queuedJob)
	delete(q.index, item.job.ID)
	return item.job, true
}

// PopRunnable removes and returns the highest-priority job for which
// runnable returns true. Jobs inspected but skipped keep their original
// sequence numbers, so their relative order is unchanged.
func (q *jobQueue) PopRunnable(runnable func(models.BackgroundJob) bool) (models.BackgroundJob, bool) {
	var skipped []*queuedJob
	defer func() {
		for _, item := range skipped {
			q.index[item.job.ID] = item
			heap.Push(q.items, item)
		}
	}()

	for q.items.Len() > 0 {
		item := heap.Pop(q.items).(*queuedJob)
		delete(q.index, item.job.ID)
		if runnable(item.job) {
			return item.job, true
		}
		skipped = append(skipped, item)
	}
	return models.BackgroundJob{}, false
}

// Remove deletes the job with the given ID from the queue.
func (q *jobQueue) Remove(id string) bool {
	item, ok := q.index[id]
	if !ok {
		return false
	}
	heap.Remove(q.items, item.pos)
	delete(q.index, id)
	return true
}

// Get returns the queued job with the given ID without removing it.
func (q *jobQueue) Get(id string) (models.BackgroundJob, bool) {
	item, ok := q.index[id]
	if !ok {
		return models.BackgroundJob{}, false
	}
	return item.job, true
}

// Len returns the number of queued jobs.
func (q *jobQueue) Len() int {
	return q.items.Len()
}

// Jobs returns a snapshot of all queued jobs in no particular order.
func (q *jobQueue) Jobs() []models.BackgroundJob {
	jobs := make([]models.BackgroundJob, 0, len(q.index))
	for _, item := range q.index {
		jobs = append(jobs, item.job)
	}
	return jobs
}

// jobHeap implements heap.Interface; higher priority first, then lower
// sequence number (earlier insertion) first.
type jobHeap []*queuedJob

func (h jobHeap) Len() int { return len(h) }

func (h jobHeap) Less(i, j int) bool {
	if h[i].job.Priority != h[j].job.Priority {
		return h[i].job.Priority > h[j].job.Priority
	}
	return h[i].seq < h[j].seq
}

func (h jobHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].pos = i
	h[j].pos = j
}

func (h *jobHeap) Push(x any) {
	item := x.(*queuedJob)
	item.pos = len(*h)
	*h = append(*h, item)
}

func (h *jobHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
