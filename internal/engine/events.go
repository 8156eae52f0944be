// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-habit-sync/models"
)

// broadcaster fans sync events out to subscribers without ever blocking
// the engine: a subscriber that falls behind loses events, not the sync
// pass.
type broadcaster struct {
	mu   sync.Mutex
	subs []chan models.SyncEvent
}

// subscribe returns a buffered event channel. Channels are never closed;
// subscribers stop reading when they lose interest.
func (b *broadcaster) subscribe() <-chan models.SyncEvent {
	ch := make(chan models.SyncEvent, 16)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	return ch
}

func (b *broadcaster) publish(event models.SyncEvent) {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	b.mu.Lock()
	subs := b.subs
	b.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}
