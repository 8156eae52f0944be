// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-habit-sync/internal/adapter"
	"github.com/MKhiriev/go-habit-sync/internal/config"
	"github.com/MKhiriev/go-habit-sync/internal/engine"
	"github.com/MKhiriev/go-habit-sync/internal/logger"
	"github.com/MKhiriev/go-habit-sync/internal/netmon"
	"github.com/MKhiriev/go-habit-sync/internal/resolver"
	"github.com/MKhiriev/go-habit-sync/internal/scheduler"
	"github.com/MKhiriev/go-habit-sync/internal/store"
	"github.com/MKhiriev/go-habit-sync/internal/workers"
	"github.com/MKhiriev/go-habit-sync/models"
)

// Background job types registered with the scheduler.
const (
	JobTypeSyncAll = "sync:all"
	JobTypeCompact = "changelog:compact"
)

// completedItemRetention is how long acknowledged sync items are kept
// before the compaction job prunes them.
const completedItemRetention = 24 * time.Hour

// compactInterval is the repeat interval of the maintenance job that
// trims the acknowledged prefix of the change log.
const compactInterval = 6 * time.Hour

type App struct {
	cfg      *config.ClientConfig
	storages *store.ClientStorages
	adapter  adapter.ServerAdapter

	monitor   *netmon.Monitor
	engine    *engine.Engine
	scheduler *scheduler.Scheduler
	workers   *workers.Workers

	logger *logger.Logger
}

func NewApp() (*App, error) {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load client config: %w", err)
	}

	log := logger.NewLogger("client")

	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create client storages: %w", err)
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	registry := resolver.NewRegistry(models.StrategyMerge)

	monitor := netmon.NewMonitor(log.Logger,
		netmon.WithNetworkProbe(coordinatorProbe(serverAdapter, cfg.Adapter.RequestTimeout)))

	syncEngine := engine.NewEngine(engine.Config{
		BatchSize:   cfg.Sync.BatchSize,
		MaxAttempts: cfg.Sync.MaxRetries,
		BackoffBase: cfg.Sync.BackoffBase,
		BackoffCap:  cfg.Sync.BackoffCap,
	}, storages, serverAdapter, registry, monitor, log.Logger)

	jobScheduler := scheduler.NewScheduler(scheduler.Config{
		Concurrency: cfg.Workers.Concurrency,
		JobTimeout:  cfg.Workers.JobTimeout,
	}, storages.Jobs, monitor, log.Logger)

	app := &App{
		cfg:       cfg,
		storages:  storages,
		adapter:   serverAdapter,
		monitor:   monitor,
		engine:    syncEngine,
		scheduler: jobScheduler,
		logger:    log,
	}

	app.registerRunners()

	app.workers = workers.New(
		workers.WorkerFunc(monitor.Run),
		workers.WorkerFunc(jobScheduler.Run),
		workers.WorkerFunc(app.syncOnReconnect),
	)

	return app, nil
}

// Run starts the background workers and blocks until a stop signal
// arrives.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := a.scheduler.Restore(ctx); err != nil {
		return fmt.Errorf("restore persisted jobs: %w", err)
	}
	if err := a.ensureRecurringJobs(ctx); err != nil {
		return fmt.Errorf("schedule recurring jobs: %w", err)
	}

	a.logger.Info().
		Str("server_url", a.cfg.Adapter.ServerURL).
		Str("db_path", a.cfg.Storage.Path).
		Msg("sync client started")

	a.workers.Run(ctx)
	a.workers.Wait()

	a.logger.Info().Msg("sync client stopped")

	return nil
}

// Engine exposes the sync engine to embedding applications (UI layers,
// command handlers).
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// Scheduler exposes the job scheduler to embedding applications.
func (a *App) Scheduler() *scheduler.Scheduler {
	return a.scheduler
}

func (a *App) registerRunners() {
	a.scheduler.RegisterRunner(JobTypeSyncAll, func(ctx context.Context, job models.BackgroundJob) error {
		summary, err := a.engine.SyncAll(ctx)
		if errors.Is(err, engine.ErrSyncInProgress) {
			// Another trigger (reconnect, manual) beat the periodic run.
			return nil
		}
		if err != nil {
			return err
		}
		if summary.Conflicts > 0 || summary.Failed > 0 {
			// The pass itself succeeded but left items behind; ask the
			// scheduler for a sooner follow-up instead of the full interval.
			return fmt.Errorf("%w: %d conflicts, %d failed", scheduler.ErrRunDegraded, summary.Conflicts, summary.Failed)
		}
		return nil
	})

	a.scheduler.RegisterRunner(JobTypeCompact, func(ctx context.Context, job models.BackgroundJob) error {
		if err := a.engine.CompactAckedChanges(ctx); err != nil {
			return err
		}
		return a.engine.PruneCompletedItems(ctx, time.Now().Add(-completedItemRetention))
	})
}

// ensureRecurringJobs schedules the periodic sync and maintenance jobs
// unless a previous process already persisted them.
func (a *App) ensureRecurringJobs(ctx context.Context) error {
	pending := make(map[string]struct{})
	for _, job := range a.scheduler.Pending() {
		pending[job.Type] = struct{}{}
	}

	if _, ok := pending[JobTypeSyncAll]; !ok {
		_, err := a.scheduler.Schedule(ctx, models.BackgroundJob{
			Type:           JobTypeSyncAll,
			Priority:       models.PriorityHigh,
			Constraints:    models.JobConstraints{RequiresNetwork: true},
			MaxRetries:     a.cfg.Sync.MaxRetries,
			RetryBackoff:   a.cfg.Sync.BackoffBase,
			RepeatInterval: a.cfg.Workers.SyncInterval,
		})
		if err != nil {
			return err
		}
	}

	if _, ok := pending[JobTypeCompact]; !ok {
		_, err := a.scheduler.Schedule(ctx, models.BackgroundJob{
			Type:     JobTypeCompact,
			Priority: models.PriorityLow,
			// Maintenance can wait for a quiet, charging device.
			Constraints:    models.JobConstraints{RequiresCharging: true, RequiresIdle: true},
			MaxRetries:     1,
			RepeatInterval: compactInterval,
			ScheduledFor:   time.Now().Add(compactInterval),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// syncOnReconnect triggers a full sync pass every time connectivity
// returns after an offline period.
func (a *App) syncOnReconnect(ctx context.Context) {
	reconnect := a.monitor.Subscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case state := <-reconnect:
			a.logger.Info().
				Str("network_type", string(state.Type)).
				Msg("connectivity restored, starting sync pass")

			if _, err := a.engine.SyncAll(ctx); err != nil && !errors.Is(err, engine.ErrSyncInProgress) {
				a.logger.Err(err).Msg("reconnect sync pass failed")
			}
		}
	}
}

// coordinatorProbe reports connectivity by probing the coordinator's
// version endpoint. Transport type and quality are not observable from a
// plain HTTP round trip, so a reachable coordinator is reported as an
// unmetered connection.
func coordinatorProbe(serverAdapter adapter.ServerAdapter, timeout time.Duration) netmon.NetworkProbe {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return func(ctx context.Context) models.NetworkState {
		probeCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if _, err := serverAdapter.ServerVersion(probeCtx); err != nil {
			return models.NetworkState{Connected: false, Type: models.NetworkNone}
		}
		return models.NetworkState{Connected: true, Type: models.NetworkWiFi, Quality: 1.0}
	}
}
