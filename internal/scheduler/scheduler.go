// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package scheduler runs background jobs under device and network
// constraints. Jobs are ordered by priority (FIFO within a tier),
// executed by a bounded worker pool, persisted so they survive process
// restarts, and deferred rather than failed while their constraints are
// unmet.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-habit-sync/internal/store"
	"github.com/MKhiriev/go-habit-sync/models"
)

// Runner executes one job attempt. A nil return completes the job; an
// error return triggers the retry policy.
type Runner func(ctx context.Context, job models.BackgroundJob) error

// StateProvider supplies the current network and device conditions that
// job constraints are checked against. *netmon.Monitor satisfies it.
type StateProvider interface {
	State() models.NetworkState
	Device() models.DeviceState
}

// Config bounds the scheduler's execution behaviour.
type Config struct {
	// Concurrency caps simultaneously running jobs.
	Concurrency int
	// JobTimeout cancels a single job attempt that runs too long.
	JobTimeout time.Duration
	// TickInterval is how often queued jobs are re-evaluated.
	TickInterval time.Duration
}

func (c *Config) applyDefaults() {
	if c.Concurrency <= 0 {
		c.Concurrency = 3
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = 30 * time.Second
	}
	if c.TickInterval <= 0 {
		c.TickInterval = time.Second
	}
}

// Scheduler owns the job queue and worker pool.
type Scheduler struct {
	cfg     Config
	jobs    store.JobStorage
	device  StateProvider
	runners map[string]Runner
	log     zerolog.Logger

	mu      sync.Mutex
	queue   *jobQueue
	running map[string]context.CancelFunc
	stopped bool

	slots chan struct{}
	wg    sync.WaitGroup
}

// NewScheduler constructs a Scheduler. Runners are registered before Run
// is started; jobs persisted by a previous process are reloaded with
// Restore.
func NewScheduler(cfg Config, jobs store.JobStorage, device StateProvider, log zerolog.Logger) *Scheduler {
	cfg.applyDefaults()
	return &Scheduler{
		cfg:     cfg,
		jobs:    jobs,
		device:  device,
		runners: make(map[string]Runner),
		log:     log,
		queue:   newJobQueue(),
		running: make(map[string]context.CancelFunc),
		slots:   make(chan struct{}, cfg.Concurrency),
	}
}

// RegisterRunner binds a job type to its runner. Re-registering a type
// replaces the previous runner.
func (s *Scheduler) RegisterRunner(jobType string, runner Runner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runners[jobType] = runner
}

// Schedule persists and enqueues a job. A job with no ID gets one; a job
// with no scheduled time is due immediately. Returns the stored job.
func (s *Scheduler) Schedule(ctx context.Context, job models.BackgroundJob) (models.BackgroundJob, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.ScheduledFor.IsZero() {
		job.ScheduledFor = time.Now()
	}
	if job.RetryBackoff <= 0 {
		job.RetryBackoff = time.Second
	}
	job.State = models.JobStateScheduled

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return models.BackgroundJob{}, ErrSchedulerStopped
	}
	if _, ok := s.runners[job.Type]; !ok {
		s.mu.Unlock()
		return models.BackgroundJob{}, fmt.Errorf("%w: %q", ErrUnknownJobType, job.Type)
	}
	s.mu.Unlock()

	if err := s.jobs.SaveJob(ctx, job); err != nil {
		return models.BackgroundJob{}, fmt.Errorf("save job %s: %w", job.ID, err)
	}

	s.mu.Lock()
	s.queue.Push(job)
	s.mu.Unlock()

	s.log.Debug().
		Str("func", "Schedule").
		Str("job_id", job.ID).
		Str("job_type", job.Type).
		Str("priority", job.Priority.String()).
		Msg("job scheduled")

	return job, nil
}

// Cancel removes a queued job or cancels a running one, and deletes it
// from storage. Returns store.ErrJobNotFound for an unknown ID.
func (s *Scheduler) Cancel(ctx context.Context, jobID string) error {
	s.mu.Lock()
	removed := s.queue.Remove(jobID)
	cancel, isRunning := s.running[jobID]
	if isRunning {
		delete(s.running, jobID)
	}
	s.mu.Unlock()

	if !removed && !isRunning {
		return store.ErrJobNotFound
	}
	if isRunning {
		cancel()
	}
	if err := s.jobs.DeleteJob(ctx, jobID); err != nil {
		return fmt.Errorf("delete job %s: %w", jobID, err)
	}

	s.log.Debug().Str("func", "Cancel").Str("job_id", jobID).Msg("job cancelled")
	return nil
}

// Execute makes a queued job due immediately. The job still waits for a
// free worker slot and for its constraints; only the scheduled time is
// overridden. Returns store.ErrJobNotFound for an unknown or running ID.
func (s *Scheduler) Execute(ctx context.Context, jobID string) error {
	s.mu.Lock()
	job, ok := s.queue.Get(jobID)
	if ok {
		s.queue.Remove(jobID)
		job.ScheduledFor = time.Now()
		s.queue.Push(job)
	}
	s.mu.Unlock()

	if !ok {
		return store.ErrJobNotFound
	}

	if err := s.jobs.SaveJob(ctx, job); err != nil {
		return fmt.Errorf("save job %s: %w", jobID, err)
	}

	s.log.Debug().Str("func", "Execute").Str("job_id", jobID).Msg("job forced due")
	return nil
}

// Pending returns a snapshot of queued jobs.
func (s *Scheduler) Pending() []models.BackgroundJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Jobs()
}

// Restore reloads jobs persisted by a previous process into the queue.
// Jobs that were running when the process died come back as scheduled.
func (s *Scheduler) Restore(ctx context.Context) error {
	jobs, err := s.jobs.LoadJobs(ctx)
	if err != nil {
		return fmt.Errorf("load jobs: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, job := range jobs {
		if _, ok := s.runners[job.Type]; !ok {
			s.log.Warn().
				Str("func", "Restore").
				Str("job_id", job.ID).
				Str("job_type", job.Type).
				Msg("persisted job has no registered runner, leaving it stored")
			continue
		}
		s.queue.Push(job)
	}

	s.log.Info().Str("func", "Restore").Int("count", len(jobs)).Msg("restored persisted jobs")
	return nil
}

// Run dispatches jobs until ctx is cancelled, then waits for in-flight
// jobs to finish.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.stopped = true
			s.mu.Unlock()
			s.wg.Wait()
			return
		case <-ticker.C:
			s.dispatch(ctx)
		}
	}
}

// dispatch starts as many due, runnable jobs as there are free worker
// slots. A job whose constraints are unmet stays queued and is simply
// re-evaluated on the next tick: deferral, not failure.
func (s *Scheduler) dispatch(ctx context.Context) {
	now := time.Now()
	for {
		select {
		case s.slots <- struct{}{}:
		default:
			return // pool saturated
		}

		var jobCtx context.Context
		s.mu.Lock()
		job, ok := s.queue.PopRunnable(func(j models.BackgroundJob) bool {
			if !j.Due(now) {
				return false
			}
			met, reason := ConstraintsMet(j.Constraints, s.device.State(), s.device.Device())
			if !met {
				s.log.Debug().
					Str("func", "dispatch").
					Str("job_id", j.ID).
					Str("reason", reason).
					Msg("job deferred, constraints unmet")
			}
			return met
		})
		if ok {
			// Cancel stored under the job id is what lets Cancel interrupt
			// a running job; the runner must observe this exact context.
			var cancel context.CancelFunc
			jobCtx, cancel = context.WithCancel(ctx)
			s.running[job.ID] = cancel
		}
		s.mu.Unlock()

		if !ok {
			<-s.slots
			return
		}

		s.wg.Add(1)
		go s.execute(ctx, jobCtx, job)
	}
}

// execute runs one job attempt under the job timeout and applies the
// retry and rescheduling policy afterwards. The runner observes jobCtx
// (cancelled by Cancel); bookkeeping writes stay on the dispatch ctx so
// a cancelled job can still be persisted.
func (s *Scheduler) execute(ctx, jobCtx context.Context, job models.BackgroundJob) {
	defer s.wg.Done()
	defer func() { <-s.slots }()

	s.mu.Lock()
	jobCancel, tracked := s.running[job.ID]
	s.mu.Unlock()
	if !tracked {
		return
	}

	job.State = models.JobStateRunning
	if err := s.jobs.SaveJob(ctx, job); err != nil {
		s.log.Error().Err(err).Str("func", "execute").Str("job_id", job.ID).Msg("failed to persist running state")
	}

	s.mu.Lock()
	runner := s.runners[job.Type]
	s.mu.Unlock()

	runCtx, cancelTimeout := context.WithTimeout(jobCtx, s.cfg.JobTimeout)
	runErr := runner(runCtx, job)
	cancelTimeout()

	s.mu.Lock()
	_, stillTracked := s.running[job.ID]
	delete(s.running, job.ID)
	s.mu.Unlock()
	jobCancel()

	if !stillTracked {
		// Cancelled while running: storage row is already gone.
		return
	}

	switch {
	case runErr == nil:
		s.onSuccess(ctx, job)
	case errors.Is(runErr, ErrRunDegraded):
		s.onDegraded(ctx, job, runErr)
	default:
		s.onFailure(ctx, job, runErr)
	}
}

func (s *Scheduler) onSuccess(ctx context.Context, job models.BackgroundJob) {
	if !job.Periodic() {
		job.State = models.JobStateCompleted
		if err := s.jobs.DeleteJob(ctx, job.ID); err != nil {
			s.log.Error().Err(err).Str("func", "onSuccess").Str("job_id", job.ID).Msg("failed to delete completed job")
		}
		s.log.Debug().Str("func", "onSuccess").Str("job_id", job.ID).Msg("job completed")
		return
	}

	// A clean periodic run restores the full interval and clears the
	// failure streak.
	job.RetryCount = 0
	s.requeue(ctx, job, job.RepeatInterval)
}

// onDegraded reschedules a periodic job sooner than its regular interval.
// The run itself did not fail, so the retry budget is untouched.
func (s *Scheduler) onDegraded(ctx context.Context, job models.BackgroundJob, runErr error) {
	if !job.Periodic() {
		s.onSuccess(ctx, job)
		return
	}

	delay := job.RetryBackoff
	if delay <= 0 || delay > job.RepeatInterval {
		delay = job.RepeatInterval
	}

	s.log.Info().
		Str("func", "onDegraded").
		Str("job_id", job.ID).
		Dur("delay", delay).
		AnErr("reason", runErr).
		Msg("periodic job rescheduled sooner after degraded run")

	job.RetryCount = 0
	s.requeue(ctx, job, delay)
}

func (s *Scheduler) onFailure(ctx context.Context, job models.BackgroundJob, runErr error) {
	job.RetryCount++

	if job.RetryCount <= job.MaxRetries {
		// Exponential backoff: the delay doubles on each consecutive
		// failure. A failed periodic run therefore retries sooner than
		// its regular interval.
		delay := job.RetryBackoff << (job.RetryCount - 1)
		if job.Periodic() && job.RepeatInterval > 0 && delay > job.RepeatInterval {
			delay = job.RepeatInterval
		}
		s.log.Warn().Err(runErr).
			Str("func", "onFailure").
			Str("job_id", job.ID).
			Int("retry", job.RetryCount).
			Dur("delay", delay).
			Msg("job failed, retrying")
		s.requeue(ctx, job, delay)
		return
	}

	if job.Periodic() {
		// Periodic jobs outlive an exhausted retry streak: surface the
		// failure and wait out the full interval before trying again.
		s.log.Error().Err(runErr).
			Str("func", "onFailure").
			Str("job_id", job.ID).
			Msg("periodic job exhausted retries, backing off to full interval")
		job.RetryCount = 0
		s.requeue(ctx, job, job.RepeatInterval)
		return
	}

	job.State = models.JobStateTerminalFailed
	if err := s.jobs.SaveJob(ctx, job); err != nil {
		s.log.Error().Err(err).Str("func", "onFailure").Str("job_id", job.ID).Msg("failed to persist terminal state")
	}
	s.log.Error().Err(runErr).
		Str("func", "onFailure").
		Str("job_id", job.ID).
		Str("job_type", job.Type).
		Msg("job failed permanently")
}

func (s *Scheduler) requeue(ctx context.Context, job models.BackgroundJob, delay time.Duration) {
	job.State = models.JobStateScheduled
	job.ScheduledFor = time.Now().Add(delay)

	if err := s.jobs.SaveJob(ctx, job); err != nil {
		s.log.Error().Err(err).Str("func", "requeue").Str("job_id", job.ID).Msg("failed to persist rescheduled job")
	}

	s.mu.Lock()
	if !s.stopped {
		s.queue.Push(job)
	}
	s.mu.Unlock()
}

// ConstraintsMet checks the job constraints against current conditions
// and names the first unmet one. Charging satisfies a minimum battery
// requirement regardless of the current level.
func ConstraintsMet(c models.JobConstraints, net models.NetworkState, dev models.DeviceState) (bool, string) {
	switch {
	case c.RequiresNetwork && !net.Connected:
		return false, "network unavailable"
	case c.RequiresWiFi && (!net.Connected || net.Type != models.NetworkWiFi):
		return false, "wifi unavailable"
	case c.RequiresCharging && !dev.Charging:
		return false, "not charging"
	case c.MinBatteryLevel > 0 && dev.BatteryLevel < c.MinBatteryLevel && !dev.Charging:
		return false, "battery below threshold"
	case c.RequiresIdle && !dev.Idle:
		return false, "device not idle"
	default:
		return true, ""
	}
}
