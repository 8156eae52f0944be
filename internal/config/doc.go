// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads, merges, and validates application configuration
// from environment variables, command-line flags, and an optional JSON
// file. Environment variables take precedence over flags, which take
// precedence over the JSON file; defaults fill whatever remains unset.
package config
