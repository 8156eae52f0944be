// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import (
	"context"
	"math/rand"
	"time"
)

// backoff computes capped exponential delays with jitter for retrying
// failed server round trips.
type backoff struct {
	base time.Duration
	cap  time.Duration
}

// delay returns the wait before the given attempt (0-based). The raw
// delay is base doubled per attempt and capped; full jitter spreads it
// over [delay/2, delay] so retrying clients do not thundering-herd the
// coordinator.
func (b backoff) delay(attempt int) time.Duration {
	d := b.base
	for i := 0; i < attempt && d < b.cap; i++ {
		d *= 2
	}
	if d > b.cap {
		d = b.cap
	}
	half := d / 2
	return half + time.Duration(rand.Int63n(int64(half)+1))
}

// wait sleeps for the attempt's delay or until ctx is cancelled.
func (b backoff) wait(ctx context.Context, attempt int) error {
	timer := time.NewTimer(b.delay(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
