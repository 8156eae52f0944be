// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the sync engine
// and the coordinator.
//
// The primary abstraction is [ServerAdapter], which decouples the engine
// from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]); error values defined in
// errors.go are mapped from HTTP status codes by mapHTTPError so callers
// can use [errors.Is] for transport-agnostic handling.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-habit-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mock_adapter.go -package=mock

// ServerAdapter is transport-agnostic communication with the sync
// coordinator. Implementations handle serialisation, the Authorization
// header, and mapping transport errors to this package's sentinels.
// It is a superset of the engine's ServerGateway.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to all subsequent
	// requests. Token returns the currently stored token.
	SetToken(token string)
	Token() string

	// Push submits a batch of local mutations and returns the per-item
	// verdicts.
	Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error)

	// Pull fetches change-log entries past the given sequence number.
	Pull(ctx context.Context, req models.PullRequest) (models.PullResponse, error)

	// Batch combines push and pull in one round trip.
	Batch(ctx context.Context, req models.BatchRequest) (models.BatchResponse, error)

	// Resolve submits a conflict resolution and returns the new
	// authoritative version.
	Resolve(ctx context.Context, req models.ResolveRequest) (models.ResolveResponse, error)

	// ServerVersion fetches the coordinator's build information.
	ServerVersion(ctx context.Context) (models.AppBuildInfo, error)
}
