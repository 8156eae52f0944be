// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Token is a parsed bearer credential. Tokens are issued by an external
// authentication service; this application only parses and validates them
// to scope sync operations to their owning user.
type Token struct {
	// SignedString is the raw JWT as received in the Authorization header.
	SignedString string `json:"signed_string"`

	// UserID is the authenticated subject extracted from the token claims.
	UserID int64 `json:"user_id"`
}
