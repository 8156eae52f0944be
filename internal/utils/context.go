// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides small helpers shared across the client and
// server: type-safe context keys, JWT parsing and validation, JSON
// response writing, and the HTTP client wrapper.
package utils

import (
	"context"
)

// contextKey is a private type for context keys; a dedicated type
// prevents collisions with string keys set by other packages.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey stores the authenticated user's id in the request context.
// Set by the auth middleware, read with GetUserIDFromContext.
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext retrieves the user id placed in the context by the
// auth middleware. ok is false when the value is missing or has an
// unexpected type.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
