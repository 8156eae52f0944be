// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// NetworkType classifies the active connectivity transport.
type NetworkType string

const (
	NetworkNone     NetworkType = "none"
	NetworkWiFi     NetworkType = "wifi"
	NetworkCellular NetworkType = "cellular"
)

// NetworkState is a point-in-time connectivity reading. Quality is a
// coarse estimate in [0.0, 1.0]; consumers treat it as advisory only.
type NetworkState struct {
	Connected bool        `json:"connected"`
	Type      NetworkType `json:"type"`
	Quality   float64     `json:"quality"`
}

// DeviceState is a point-in-time reading of the battery and activity
// conditions that job constraints are checked against.
type DeviceState struct {
	// BatteryLevel is a percentage in [0,100].
	BatteryLevel int  `json:"battery_level"`
	Charging     bool `json:"charging"`
	Idle         bool `json:"idle"`
}
