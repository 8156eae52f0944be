// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync client application runtime.
//
// It wires local storage, the server adapter, the sync engine, the
// network monitor, and the background job scheduler into a single
// process lifecycle.
package client
