// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/chainballot/cliparse"
	"github.com/danielhkuo/chainballot/coordinator"
	"github.com/danielhkuo/chainballot/handlers"
	"github.com/danielhkuo/chainballot/middleware"
)

func NewRouter(coord *coordinator.Coordinator, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	votingHandler := handlers.NewVotingHandler(coord, cfg)
	electionHandler := handlers.NewElectionHandler(coord, cfg)
	resultsHandler := handlers.NewResultsHandler(coord, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voter operations (public)
	mux.HandleFunc("POST /register", middleware.WithLogging(votingHandler.Register))
	mux.HandleFunc("POST /login", middleware.WithLogging(votingHandler.Login))
	mux.HandleFunc("POST /votes", middleware.WithLogging(votingHandler.CastVote))

	// Election management (admin, requires X-Admin-Key)
	mux.HandleFunc("POST /admin/candidates", middleware.WithLogging(electionHandler.AddCandidate))
	mux.HandleFunc("DELETE /admin/candidates/{name}", middleware.WithLogging(electionHandler.RemoveCandidate))
	mux.HandleFunc("POST /admin/open", middleware.WithLogging(electionHandler.OpenVoting))
	mux.HandleFunc("POST /admin/close", middleware.WithLogging(electionHandler.CloseVoting))

	// Results and audit (public)
	mux.HandleFunc("GET /candidates", middleware.WithLogging(resultsHandler.Candidates))
	mux.HandleFunc("GET /tally", middleware.WithLogging(resultsHandler.Tally))
	mux.HandleFunc("GET /session", middleware.WithLogging(resultsHandler.SessionState))
	mux.HandleFunc("GET /ledger/events", middleware.WithLogging(resultsHandler.LedgerEvents))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("chainballot API v1"))
	})

	return mux
}
