// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/chainballot/cliparse"
	"github.com/danielhkuo/chainballot/coordinator"
	"github.com/danielhkuo/chainballot/ledger"
	"github.com/danielhkuo/chainballot/middleware"
	"github.com/danielhkuo/chainballot/models"
)

// ResultsHandler covers the public read surface: candidates, tally,
// session state and the audit feed. No authentication required.
type ResultsHandler struct {
	coord *coordinator.Coordinator
	cfg   cliparse.Config
}

func NewResultsHandler(coord *coordinator.Coordinator, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{coord: coord, cfg: cfg}
}

// LedgerEventsResponse is the audit feed payload. Entries carry their own
// hashes so an external verifier can recheck the chain.
type LedgerEventsResponse struct {
	Count   int            `json:"count"`
	Entries []ledger.Entry `json:"entries"`
}

// Candidates handles GET /candidates
// The session state rides along so clients know whether the list is final.
func (h *ResultsHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	candidates, state := h.coord.Candidates()
	if candidates == nil {
		candidates = []models.Candidate{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.CandidateListResponse{
		State:      state,
		Candidates: candidates,
	})
}

// Tally handles GET /tally
func (h *ResultsHandler) Tally(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.coord.Tally())
}

// SessionState handles GET /session
func (h *ResultsHandler) SessionState(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{State: h.coord.State()})
}

// LedgerEvents handles GET /ledger/events?from=N&to=M
// from defaults to 1 and to defaults to the latest entry; both inclusive.
func (h *ResultsHandler) LedgerEvents(w http.ResponseWriter, r *http.Request) {
	from, ok := parseSeqParam(r, "from", 1)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "from must be a non-negative integer")
		return
	}
	to, ok := parseSeqParam(r, "to", 0)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "to must be a non-negative integer")
		return
	}
	if to != 0 && to < from {
		middleware.ErrorResponse(w, http.StatusBadRequest, "to must not be before from")
		return
	}

	entries, err := h.coord.Events(r.Context(), from, to)
	if err != nil {
		slog.Error("failed to fetch ledger events", "error", err)
		respondDomainError(w, err)
		return
	}
	if entries == nil {
		entries = []ledger.Entry{}
	}

	middleware.JSONResponse(w, http.StatusOK, LedgerEventsResponse{
		Count:   len(entries),
		Entries: entries,
	})
}

func parseSeqParam(r *http.Request, name string, def uint64) (uint64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
