// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package netmon

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-habit-sync/internal/logger"
	"github.com/MKhiriev/go-habit-sync/models"
)

func TestMonitor_StartsOffline(t *testing.T) {
	m := NewMonitor(logger.Nop().Logger)

	assert.False(t, m.Online())
	assert.Equal(t, models.NetworkNone, m.State().Type)
}

func TestMonitor_SetNetworkState(t *testing.T) {
	m := NewMonitor(logger.Nop().Logger)

	m.SetNetworkState(models.NetworkState{Connected: true, Type: models.NetworkWiFi, Quality: 0.9})

	state := m.State()
	assert.True(t, state.Connected)
	assert.Equal(t, models.NetworkWiFi, state.Type)
}

func TestMonitor_SetDeviceState(t *testing.T) {
	m := NewMonitor(logger.Nop().Logger)

	m.SetDeviceState(models.DeviceState{BatteryLevel: 42, Charging: true})

	device := m.Device()
	assert.Equal(t, 42, device.BatteryLevel)
	assert.True(t, device.Charging)
}

func TestMonitor_SubscribeNotifiedOnReconnect(t *testing.T) {
	m := NewMonitor(logger.Nop().Logger)
	ch := m.Subscribe()

	m.SetNetworkState(models.NetworkState{Connected: true, Type: models.NetworkCellular})

	select {
	case state := <-ch:
		assert.Equal(t, models.NetworkCellular, state.Type)
	case <-time.After(time.Second):
		t.Fatal("expected reconnect notification")
	}
}

func TestMonitor_SubscribeNotNotifiedWithoutTransition(t *testing.T) {
	m := NewMonitor(logger.Nop().Logger)
	m.SetNetworkState(models.NetworkState{Connected: true, Type: models.NetworkWiFi})

	ch := m.Subscribe()

	// Already online: another online reading is not a transition.
	m.SetNetworkState(models.NetworkState{Connected: true, Type: models.NetworkCellular})
	// Going offline never notifies.
	m.SetNetworkState(models.NetworkState{Connected: false, Type: models.NetworkNone})

	select {
	case <-ch:
		t.Fatal("unexpected notification")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMonitor_RunPollsProbes(t *testing.T) {
	networkStates := make(chan models.NetworkState, 1)
	networkStates <- models.NetworkState{Connected: true, Type: models.NetworkWiFi}

	probe := func(ctx context.Context) models.NetworkState {
		select {
		case s := <-networkStates:
			return s
		default:
			return models.NetworkState{Connected: true, Type: models.NetworkWiFi}
		}
	}

	m := NewMonitor(logger.Nop().Logger,
		WithNetworkProbe(probe),
		WithDeviceProbe(func(ctx context.Context) models.DeviceState {
			return models.DeviceState{BatteryLevel: 77}
		}),
		WithPollInterval(10*time.Millisecond),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		return m.Online() && m.Device().BatteryLevel == 77
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on context cancellation")
	}
}
