// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/chainballot/auth"
	"github.com/danielhkuo/chainballot/cliparse"
	"github.com/danielhkuo/chainballot/coordinator"
	"github.com/danielhkuo/chainballot/credentials"
	"github.com/danielhkuo/chainballot/ledger"
	"github.com/danielhkuo/chainballot/registry"
	"github.com/danielhkuo/chainballot/session"
)

// GoodPassword satisfies every password policy rule.
const GoodPassword = "Str0ng!pass"

// NewTestCoordinator builds a coordinator over an in-memory ledger store.
// The store is returned so tests can inject failures and inspect entries.
func NewTestCoordinator(t *testing.T) (*coordinator.Coordinator, *ledger.MemStore) {
	t.Helper()

	store := ledger.NewMemStore()
	adapter := ledger.NewAdapter(store, "test-signer")
	if err := adapter.Init(context.Background()); err != nil {
		t.Fatalf("Failed to init ledger adapter: %v", err)
	}

	coord := coordinator.New(credentials.NewStore(), registry.New(), session.New(), adapter)
	coord.RetryBase = time.Millisecond
	return coord, store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3419,
		DatabaseURL:  "file::memory:",
		DatabaseType: "sqlite",
		ElectionID:   "test-election",
		AdminKeySalt: "test-admin-salt",
		JWTSecret:    "test-jwt-secret",
		Signer:       "test-signer",
	}
}

// TestAdminKey derives the admin key matching GetTestConfig.
func TestAdminKey(cfg cliparse.Config) string {
	return auth.GenerateAdminKey(cfg.ElectionID, cfg.AdminKeySalt)
}

// RegisterTestVoter creates a voter through the coordinator and returns a
// bearer token for it.
func RegisterTestVoter(t *testing.T, coord *coordinator.Coordinator, cfg cliparse.Config, username string) string {
	t.Helper()

	if _, err := coord.Register(context.Background(), username, GoodPassword); err != nil {
		t.Fatalf("Failed to register test voter: %v", err)
	}

	token, err := auth.GenerateVoterToken(username, []byte(cfg.JWTSecret), time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate test voter token: %v", err)
	}
	return token
}

// AddTestCandidate registers a candidate and returns its id.
func AddTestCandidate(t *testing.T, coord *coordinator.Coordinator, name string) uint64 {
	t.Helper()

	candidate, _, err := coord.AddCandidate(context.Background(), name)
	if err != nil {
		t.Fatalf("Failed to add test candidate: %v", err)
	}
	return candidate.ID
}

// OpenTestVoting transitions the session to open.
func OpenTestVoting(t *testing.T, coord *coordinator.Coordinator) {
	t.Helper()

	if _, err := coord.Open(context.Background()); err != nil {
		t.Fatalf("Failed to open voting: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
