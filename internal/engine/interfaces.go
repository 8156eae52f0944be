// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import (
	"context"

	"github.com/MKhiriev/go-habit-sync/models"
)

// ServerGateway is the engine's view of the sync coordinator. The HTTP
// adapter implements it; tests substitute a mock.
type ServerGateway interface {
	Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error)
	Pull(ctx context.Context, req models.PullRequest) (models.PullResponse, error)
	Batch(ctx context.Context, req models.BatchRequest) (models.BatchResponse, error)
	Resolve(ctx context.Context, req models.ResolveRequest) (models.ResolveResponse, error)
}

// ConnectivityChecker reports whether the device currently has network
// connectivity. *netmon.Monitor satisfies it.
type ConnectivityChecker interface {
	Online() bool
}
