// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the coordinator's business logic: verdict
// classification for pushed mutations, delta reads from the change log,
// conflict resolution application, and bearer-token validation. Handlers
// stay thin; everything the HTTP layer does is delegated here.
package service

import (
	"context"

	"github.com/MKhiriev/go-habit-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mock_service.go -package=mock

// SyncService classifies pushed mutations against authoritative state and
// serves delta reads. All methods are scoped to a single authenticated
// user.
type SyncService interface {
	// Push processes a batch of client mutations and returns one verdict
	// per item. Replayed item ids return the previously recorded verdict
	// without touching entity state.
	Push(ctx context.Context, userID int64, req models.PushRequest) (models.PushResponse, error)

	// Pull returns change-log entries past the client's watermark.
	Pull(ctx context.Context, userID int64, req models.PullRequest) (models.PullResponse, error)

	// Batch is Push followed by Pull in one call, so the puller observes
	// its own accepted pushes.
	Batch(ctx context.Context, userID int64, req models.BatchRequest) (models.BatchResponse, error)

	// Resolve applies a client-side conflict resolution as the new
	// authoritative state and returns the resulting version.
	Resolve(ctx context.Context, userID int64, req models.ResolveRequest) (models.ResolveResponse, error)
}

// AuthService validates bearer tokens presented by sync clients.
type AuthService interface {
	// ParseToken verifies the signature and issuer of a raw JWT and
	// returns the decoded token. Any validation failure is normalised to
	// ErrTokenIsExpiredOrInvalid.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService reports the running coordinator's version.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
