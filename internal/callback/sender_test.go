package callback

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSender_Deliver(t *testing.T) {
	var gotMethod, gotAuth, gotDelivery, gotType string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		gotDelivery = r.Header.Get("X-Delivery-ID")
		gotType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewSender(srv.Client(), "node-token", slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := s.Deliver(context.Background(), srv.URL+"/v2/resume/abc", map[string]any{
		"jobRunID": "7",
		"pending":  false,
		"data":     map[string]any{"USD": 1.5},
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "Bearer node-token", gotAuth)
	assert.Equal(t, "application/json", gotType)
	_, parseErr := uuid.Parse(gotDelivery)
	assert.NoError(t, parseErr)
	assert.Equal(t, "7", gotBody["jobRunID"])
	assert.Equal(t, false, gotBody["pending"])
}

func TestSender_DeliverWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := NewSender(nil, "", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, s.Deliver(context.Background(), srv.URL, map[string]any{}))
	assert.Empty(t, gotAuth)
}

func TestSender_DeliverNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("bad token\n"))
	}))
	defer srv.Close()

	s := NewSender(srv.Client(), "", slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := s.Deliver(context.Background(), srv.URL, map[string]any{"error": true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "bad token")
}

func TestSender_DeliverUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	s := NewSender(nil, "", slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := s.Deliver(context.Background(), url, map[string]any{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "callback request failed")
}
