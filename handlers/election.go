// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/chainballot/auth"
	"github.com/danielhkuo/chainballot/cliparse"
	"github.com/danielhkuo/chainballot/coordinator"
	"github.com/danielhkuo/chainballot/middleware"
	"github.com/danielhkuo/chainballot/models"
)

// ElectionHandler covers the admin surface: candidate management and
// session transitions. Every operation requires the X-Admin-Key header.
type ElectionHandler struct {
	coord *coordinator.Coordinator
	cfg   cliparse.Config
}

func NewElectionHandler(coord *coordinator.Coordinator, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{coord: coord, cfg: cfg}
}

func (h *ElectionHandler) authorized(w http.ResponseWriter, r *http.Request) bool {
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(h.cfg.ElectionID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// AddCandidate handles POST /admin/candidates
func (h *ElectionHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	candidate, entry, err := h.coord.AddCandidate(r.Context(), req.Name)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	slog.Info("candidate added", "candidate_id", candidate.ID, "name", candidate.Name, "seq", entry.Seq)

	middleware.JSONResponse(w, http.StatusCreated, models.AddCandidateResponse{
		CandidateID: candidate.ID,
		Name:        candidate.Name,
		Seq:         entry.Seq,
	})
}

// RemoveCandidate handles DELETE /admin/candidates/{name}
func (h *ElectionHandler) RemoveCandidate(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	name := r.PathValue("name")
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	entry, err := h.coord.RemoveCandidate(r.Context(), name)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	slog.Info("candidate removed", "name", name, "seq", entry.Seq)

	middleware.JSONResponse(w, http.StatusOK, models.RemoveCandidateResponse{
		Name: name,
		Seq:  entry.Seq,
	})
}

// OpenVoting handles POST /admin/open
func (h *ElectionHandler) OpenVoting(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	entry, err := h.coord.Open(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	slog.Info("voting opened", "seq", entry.Seq)

	middleware.JSONResponse(w, http.StatusOK, models.TransitionResponse{
		State: models.StateOpen,
		Seq:   entry.Seq,
	})
}

// CloseVoting handles POST /admin/close
func (h *ElectionHandler) CloseVoting(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	entry, err := h.coord.Close(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	slog.Info("voting closed", "seq", entry.Seq)

	middleware.JSONResponse(w, http.StatusOK, models.TransitionResponse{
		State: models.StateClosed,
		Seq:   entry.Seq,
	})
}
