// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package scheduler

import "errors"

var (
	// ErrUnknownJobType is returned by Schedule for a job type with no
	// registered runner.
	ErrUnknownJobType = errors.New("unknown job type")
	// ErrSchedulerStopped is returned by Schedule after Run has exited.
	ErrSchedulerStopped = errors.New("scheduler stopped")
	// ErrRunDegraded is returned (or wrapped) by a runner whose pass
	// completed but left work behind, such as unresolved conflicts. A
	// periodic job returning it is rescheduled at its retry delay instead
	// of the full repeat interval; the retry budget is not consumed.
	ErrRunDegraded = errors.New("job run degraded")
)
