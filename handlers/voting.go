// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/chainballot/auth"
	"github.com/danielhkuo/chainballot/cliparse"
	"github.com/danielhkuo/chainballot/coordinator"
	"github.com/danielhkuo/chainballot/middleware"
	"github.com/danielhkuo/chainballot/models"
)

// voterTokenValidity bounds how long a login token stays usable.
const voterTokenValidity = 24 * time.Hour

type VotingHandler struct {
	coord *coordinator.Coordinator
	cfg   cliparse.Config
}

func NewVotingHandler(coord *coordinator.Coordinator, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{coord: coord, cfg: cfg}
}

// Register handles POST /register
func (h *VotingHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	entry, err := h.coord.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	slog.Info("voter registered", "username", req.Username, "seq", entry.Seq)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		Username: req.Username,
		Seq:      entry.Seq,
	})
}

// Login handles POST /login
func (h *VotingHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Uniform rejection: unknown user and wrong password look identical
	if !h.coord.Authenticate(req.Username, req.Password) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := auth.GenerateVoterToken(req.Username, []byte(h.cfg.JWTSecret), voterTokenValidity)
	if err != nil {
		slog.Error("failed to generate voter token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("voter logged in", "username", req.Username)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{Token: token})
}

// CastVote handles POST /votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	username, err := h.voterFromRequest(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid or missing voter token")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CandidateID == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	entry, err := h.coord.CastVote(r.Context(), username, req.CandidateID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	slog.Info("vote cast", "username", username, "candidate_id", req.CandidateID, "seq", entry.Seq)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		CandidateID: req.CandidateID,
		Seq:         entry.Seq,
		Message:     "Vote recorded",
	})
}

// voterFromRequest resolves the voter username from the Authorization
// bearer token.
func (h *VotingHandler) voterFromRequest(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenString == "" {
		return "", auth.ErrInvalidToken
	}
	return auth.VoterFromToken(tokenString, []byte(h.cfg.JWTSecret))
}
