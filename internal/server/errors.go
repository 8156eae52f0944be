// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated is returned by NewServer when the configuration
// yields no transport to run the coordinator on.
var (
	errNoServersAreCreated = errors.New("no servers are created")
)
