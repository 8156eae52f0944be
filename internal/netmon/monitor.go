// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package netmon tracks network connectivity and device conditions for the
// sync engine and the background job scheduler. State can be fed manually
// by platform callbacks or sampled by optional probe functions.
package netmon

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-habit-sync/models"
)

// NetworkProbe samples the current network state. A probe must be cheap
// enough to call on every poll tick.
type NetworkProbe func(ctx context.Context) models.NetworkState

// DeviceProbe samples the current device conditions (battery, charging,
// idle).
type DeviceProbe func(ctx context.Context) models.DeviceState

// Monitor is the single source of truth for connectivity and device state.
// Reads are lock-protected snapshots; transitions from offline to online
// are broadcast to subscribers so the engine can trigger a sync attempt
// the moment connectivity returns.
type Monitor struct {
	mu      sync.RWMutex
	network models.NetworkState
	device  models.DeviceState

	networkProbe NetworkProbe
	deviceProbe  DeviceProbe
	pollInterval time.Duration

	subscribers []chan models.NetworkState
	log         zerolog.Logger
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithNetworkProbe installs a probe polled by Run.
func WithNetworkProbe(probe NetworkProbe) Option {
	return func(m *Monitor) { m.networkProbe = probe }
}

// WithDeviceProbe installs a probe polled by Run.
func WithDeviceProbe(probe DeviceProbe) Option {
	return func(m *Monitor) { m.deviceProbe = probe }
}

// WithPollInterval overrides the probe polling interval.
func WithPollInterval(interval time.Duration) Option {
	return func(m *Monitor) {
		if interval > 0 {
			m.pollInterval = interval
		}
	}
}

// NewMonitor constructs a Monitor that starts offline with unknown device
// state. Callers feed state via SetNetworkState/SetDeviceState or install
// probes and call Run.
func NewMonitor(log zerolog.Logger, opts ...Option) *Monitor {
	m := &Monitor{
		network:      models.NetworkState{Connected: false, Type: models.NetworkNone},
		device:       models.DeviceState{BatteryLevel: 100},
		pollInterval: 30 * time.Second,
		log:          log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the last observed network state.
func (m *Monitor) State() models.NetworkState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.network
}

// Device returns the last observed device conditions.
func (m *Monitor) Device() models.DeviceState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.device
}

// Online reports whether the device currently has connectivity.
func (m *Monitor) Online() bool {
	return m.State().Connected
}

// SetNetworkState records a new network state, broadcasting to subscribers
// when connectivity is regained after being offline.
func (m *Monitor) SetNetworkState(state models.NetworkState) {
	m.mu.Lock()
	wasConnected := m.network.Connected
	m.network = state
	subscribers := m.subscribers
	m.mu.Unlock()

	if state.Connected == wasConnected {
		return
	}

	m.log.Info().
		Str("func", "SetNetworkState").
		Bool("connected", state.Connected).
		Str("type", string(state.Type)).
		Msg("network state changed")

	if !state.Connected {
		return
	}
	for _, ch := range subscribers {
		select {
		case ch <- state:
		default: // slow subscriber, it will see the state on its next read
		}
	}
}

// SetDeviceState records new device conditions.
func (m *Monitor) SetDeviceState(state models.DeviceState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.device = state
}

// Subscribe returns a channel that receives the new network state every
// time connectivity transitions from offline to online. The channel has a
// one-element buffer; a missed notification is not an error because the
// subscriber can always consult State directly.
func (m *Monitor) Subscribe() <-chan models.NetworkState {
	ch := make(chan models.NetworkState, 1)
	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()
	return ch
}

// Run polls the installed probes until ctx is cancelled. It is a no-op
// when no probes are installed.
func (m *Monitor) Run(ctx context.Context) {
	if m.networkProbe == nil && m.deviceProbe == nil {
		return
	}

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	m.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.poll(ctx)
		}
	}
}

func (m *Monitor) poll(ctx context.Context) {
	if m.networkProbe != nil {
		m.SetNetworkState(m.networkProbe(ctx))
	}
	if m.deviceProbe != nil {
		m.SetDeviceState(m.deviceProbe(ctx))
	}
}
