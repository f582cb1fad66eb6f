package anilist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchUserStatsSuccess(t *testing.T) {
	var gotVars map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotVars = req.Variables
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"User":{"statistics":{"anime":{"count":10}}}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	data, err := client.FetchUserStats(context.Background(), 123)
	require.NoError(t, err)
	assert.Equal(t, float64(123), gotVars["userId"])
	assert.Contains(t, data, "User")
}

func TestFetchUserStatsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.FetchUserStats(context.Background(), 123)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFetchUserStatsTransientErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"data":`))
			},
		},
		{
			name: "missing data",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"errors":[{"message":"boom"}]}`))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewClient(srv.URL, time.Second)
			_, err := client.FetchUserStats(context.Background(), 123)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrUserNotFound)
		})
	}
}

func TestFetchUserStatsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.FetchUserStats(context.Background(), 123)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}
