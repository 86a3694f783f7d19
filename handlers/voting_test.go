// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/chainballot/auth"
	"github.com/danielhkuo/chainballot/models"
	"github.com/danielhkuo/chainballot/testutil"
)

func TestRegister(t *testing.T) {
	coord, _ := testutil.NewTestCoordinator(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(coord, cfg)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name: "valid registration",
			requestBody: models.RegisterRequest{
				Username: "alice",
				Password: testutil.GoodPassword,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate username",
			requestBody: models.RegisterRequest{
				Username: "alice",
				Password: testutil.GoodPassword,
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "blank username",
			requestBody: models.RegisterRequest{
				Username: "",
				Password: testutil.GoodPassword,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "password too short",
			requestBody: models.RegisterRequest{
				Username: "bob",
				Password: "Ab1!",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "password missing symbol",
			requestBody: models.RegisterRequest{
				Username: "bob",
				Password: "Str0ngpass",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/register", tc.requestBody, nil)
			w := httptest.NewRecorder()

			handler.Register(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
		})
	}

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/register", strings.NewReader("{not json"))
		w := httptest.NewRecorder()

		handler.Register(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("successful registration returns seq", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/register", models.RegisterRequest{
			Username: "carol",
			Password: testutil.GoodPassword,
		}, nil)
		w := httptest.NewRecorder()

		handler.Register(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.RegisterResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Username != "carol" {
			t.Errorf("Expected username 'carol', got '%s'", resp.Username)
		}
		if resp.Seq == 0 {
			t.Error("Expected a ledger sequence number")
		}
	})
}

func TestLogin(t *testing.T) {
	coord, _ := testutil.NewTestCoordinator(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(coord, cfg)

	testutil.RegisterTestVoter(t, coord, cfg, "alice")

	t.Run("valid credentials", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/login", models.LoginRequest{
			Username: "alice",
			Password: testutil.GoodPassword,
		}, nil)
		w := httptest.NewRecorder()

		handler.Login(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.LoginResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Token == "" {
			t.Fatal("Expected a token")
		}

		username, err := auth.VoterFromToken(resp.Token, []byte(cfg.JWTSecret))
		if err != nil {
			t.Fatalf("Expected token to verify: %v", err)
		}
		if username != "alice" {
			t.Errorf("Expected token subject 'alice', got '%s'", username)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/login", models.LoginRequest{
			Username: "alice",
			Password: "Wr0ng!pass",
		}, nil)
		w := httptest.NewRecorder()

		handler.Login(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("unknown user gets the same rejection", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/login", models.LoginRequest{
			Username: "mallory",
			Password: testutil.GoodPassword,
		}, nil)
		w := httptest.NewRecorder()

		handler.Login(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)

		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Message != "Invalid username or password" {
			t.Errorf("Expected uniform rejection message, got '%s'", resp.Message)
		}
	})
}

func TestCastVote(t *testing.T) {
	coord, _ := testutil.NewTestCoordinator(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(coord, cfg)

	token := testutil.RegisterTestVoter(t, coord, cfg, "alice")
	candID := testutil.AddTestCandidate(t, coord, "Bob")

	authHeader := map[string]string{"Authorization": "Bearer " + token}

	t.Run("voting not open", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/votes", models.CastVoteRequest{CandidateID: candID}, authHeader)
		w := httptest.NewRecorder()

		handler.CastVote(w, req)

		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	testutil.OpenTestVoting(t, coord)

	t.Run("missing token", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/votes", models.CastVoteRequest{CandidateID: candID}, nil)
		w := httptest.NewRecorder()

		handler.CastVote(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/votes", models.CastVoteRequest{CandidateID: candID},
			map[string]string{"Authorization": "Bearer not-a-token"})
		w := httptest.NewRecorder()

		handler.CastVote(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("missing candidate id", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/votes", models.CastVoteRequest{}, authHeader)
		w := httptest.NewRecorder()

		handler.CastVote(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unknown candidate", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/votes", models.CastVoteRequest{CandidateID: 99}, authHeader)
		w := httptest.NewRecorder()

		handler.CastVote(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("valid vote", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/votes", models.CastVoteRequest{CandidateID: candID}, authHeader)
		w := httptest.NewRecorder()

		handler.CastVote(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.CastVoteResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.CandidateID != candID {
			t.Errorf("Expected candidate_id %d, got %d", candID, resp.CandidateID)
		}
		if resp.Seq == 0 {
			t.Error("Expected a ledger sequence number")
		}
	})

	t.Run("second vote rejected", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/votes", models.CastVoteRequest{CandidateID: candID}, authHeader)
		w := httptest.NewRecorder()

		handler.CastVote(w, req)

		testutil.AssertStatus(t, w, http.StatusConflict)
	})
}
