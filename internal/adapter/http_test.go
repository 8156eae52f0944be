// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-habit-sync/internal/config"
	"github.com/MKhiriev/go-habit-sync/internal/logger"
	"github.com/MKhiriev/go-habit-sync/models"
)

func newTestAdapter(t *testing.T, handler http.Handler) ServerAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a, err := NewHTTPServerAdapter(config.ClientAdapter{
		ServerURL:      srv.URL,
		RequestTimeout: 2 * time.Second,
	}, logger.NewLogger("test"))
	require.NoError(t, err)
	return a
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "SchemeKept", in: "https://sync.example.com/", want: "https://sync.example.com"},
		{name: "SchemeAdded", in: "localhost:8080", want: "http://localhost:8080"},
		{name: "Empty", in: "  ", wantErr: true},
		{name: "NoHost", in: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPServerAdapter_Push(t *testing.T) {
	var gotAuth string
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/sync/push", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		var req models.PushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Items, 1)
		assert.Equal(t, 1, req.Length)

		resp := models.PushResponse{
			Results: []models.PushResult{{ID: req.Items[0].ID, Outcome: models.OutcomeAccepted, ServerVersion: 3}},
			Length:  1,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	a.SetToken("  test-token  ")

	resp, err := a.Push(context.Background(), models.PushRequest{
		Items: []models.PushItem{{ID: "item-1", EntityType: models.EntityTypeHabit, EntityID: "habit-1"}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, models.OutcomeAccepted, resp.Results[0].Outcome)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestHTTPServerAdapter_Pull(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/sync/pull", r.URL.Path)

		var req models.PullRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(42), req.SinceSeq)

		_ = json.NewEncoder(w).Encode(models.PullResponse{
			Entries:   []models.ChangeLogEntry{{Seq: 43, EntityType: models.EntityTypeGoal, EntityID: "goal-1"}},
			Watermark: 43,
			Length:    1,
		})
	}))
	a.SetToken("tok")

	resp, err := a.Pull(context.Background(), models.PullRequest{SinceSeq: 42})
	require.NoError(t, err)
	assert.Equal(t, int64(43), resp.Watermark)
	require.Len(t, resp.Entries, 1)
}

func TestHTTPServerAdapter_Resolve(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/sync/resolve", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.ResolveResponse{ConflictID: "c-1", ServerVersion: 7})
	}))
	a.SetToken("tok")

	resp, err := a.Resolve(context.Background(), models.ResolveRequest{ConflictID: "c-1", Strategy: models.StrategyMerge})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ServerVersion)
}

func TestHTTPServerAdapter_ServerVersion(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/version/", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.NewAppBuildInfo("v1.2.3", "", ""))
	}))

	info, err := a.ServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", info.BuildVersion)
	assert.Equal(t, "N/A", info.BuildDate)
}

func TestHTTPServerAdapter_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "Unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "Conflict", status: http.StatusConflict, wantErr: ErrConflict},
		{name: "NotFound", status: http.StatusNotFound, wantErr: ErrNotFound},
		{name: "Internal", status: http.StatusInternalServerError, wantErr: ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, tt.name, tt.status)
			}))
			a.SetToken("tok")

			_, err := a.Pull(context.Background(), models.PullRequest{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
