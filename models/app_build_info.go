// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AppBuildInfo carries build-time metadata injected by linker flags and
// exposed via the /api/version/ endpoint for release traceability.
type AppBuildInfo struct {
	BuildVersion string `json:"build_version"`
	BuildDate    string `json:"build_date"`
	BuildCommit  string `json:"build_commit"`
}

// NewAppBuildInfo normalizes empty build metadata to "N/A".
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	if version == "" {
		version = "N/A"
	}
	if date == "" {
		date = "N/A"
	}
	if commit == "" {
		commit = "N/A"
	}
	return AppBuildInfo{BuildVersion: version, BuildDate: date, BuildCommit: commit}
}
