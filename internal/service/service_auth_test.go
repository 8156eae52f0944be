// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-habit-sync/internal/config"
	"github.com/MKhiriev/go-habit-sync/internal/logger"
	"github.com/MKhiriev/go-habit-sync/internal/utils"
)

func TestAuthService_ParseToken(t *testing.T) {
	cfg := config.ServerApp{TokenSignKey: "secret", TokenIssuer: "habit-sync"}
	svc := NewAuthService(cfg, logger.Nop())

	issued, err := utils.GenerateJWTToken("habit-sync", 42, time.Hour, "secret")
	require.NoError(t, err)

	token, err := svc.ParseToken(context.Background(), issued.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), token.UserID)
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	cfg := config.ServerApp{TokenSignKey: "secret", TokenIssuer: "habit-sync"}
	svc := NewAuthService(cfg, logger.Nop())

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name:  "Malformed",
			token: func(t *testing.T) string { return "not-a-jwt" },
		},
		{
			name: "WrongKey",
			token: func(t *testing.T) string {
				issued, err := utils.GenerateJWTToken("habit-sync", 42, time.Hour, "other-secret")
				require.NoError(t, err)
				return issued.SignedString
			},
		},
		{
			name: "WrongIssuer",
			token: func(t *testing.T) string {
				issued, err := utils.GenerateJWTToken("somebody-else", 42, time.Hour, "secret")
				require.NoError(t, err)
				return issued.SignedString
			},
		},
		{
			name: "Expired",
			token: func(t *testing.T) string {
				issued, err := utils.GenerateJWTToken("habit-sync", 42, -time.Minute, "secret")
				require.NoError(t, err)
				return issued.SignedString
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParseToken(context.Background(), tt.token(t))
			assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
		})
	}
}

func TestNewAppInfoService(t *testing.T) {
	svc, err := NewAppInfoService(config.ServerApp{Version: "v1.2.3"}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", svc.GetAppVersion(context.Background()))

	_, err = NewAppInfoService(config.ServerApp{}, logger.Nop())
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}
