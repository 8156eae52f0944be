// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// JobState is the scheduler lifecycle state of a BackgroundJob.
//
//	scheduled -> (constraints met) -> running -> completed
//	                                         -> failed -> (retries remain) -> scheduled
//	                                         -> failed -> (no retries)     -> terminal-failed
//
// Terminal-failed jobs are surfaced and never retried automatically.
type JobState string

const (
	JobStateScheduled      JobState = "scheduled"
	JobStateRunning        JobState = "running"
	JobStateCompleted      JobState = "completed"
	JobStateTerminalFailed JobState = "terminal-failed"
	JobStateCancelled      JobState = "cancelled"
)

// JobConstraints gate job execution on device and network conditions.
// An unmet constraint defers the job (reschedules it); it is never
// treated as a failure.
type JobConstraints struct {
	RequiresNetwork  bool `json:"requires_network"`
	RequiresWiFi     bool `json:"requires_wifi"`
	RequiresCharging bool `json:"requires_charging"`
	RequiresIdle     bool `json:"requires_idle"`

	// MinBatteryLevel is a percentage in [0,100]; zero means no minimum.
	MinBatteryLevel int `json:"min_battery_level"`
}

// BackgroundJob is one unit of deferred work held by the scheduler.
// Jobs survive process restarts: they are persisted by the local store
// and re-evaluated against current device state on startup.
type BackgroundJob struct {
	ID   string `json:"id"`
	Type string `json:"type"`

	// Params are opaque runner arguments (e.g. the entity to sync).
	Params map[string]string `json:"params,omitempty"`

	Constraints JobConstraints `json:"constraints"`
	Priority    Priority       `json:"priority"`

	MaxRetries int `json:"max_retries"`
	RetryCount int `json:"retry_count"`

	// RetryBackoff is the delay applied before the next attempt after a
	// failure; doubled on each consecutive failure.
	RetryBackoff time.Duration `json:"retry_backoff"`

	ScheduledFor time.Time `json:"scheduled_for"`

	// RepeatInterval makes the job periodic when positive: after each run
	// it reschedules itself, shortening the interval after a failed or
	// conflicted run and restoring it after a clean one.
	RepeatInterval time.Duration `json:"repeat_interval"`

	State JobState `json:"state"`
}

// Due reports whether the job's scheduled time has arrived.
func (j BackgroundJob) Due(now time.Time) bool {
	return !j.ScheduledFor.After(now)
}

// Periodic reports whether the job reschedules itself after each run.
func (j BackgroundJob) Periodic() bool {
	return j.RepeatInterval > 0
}
