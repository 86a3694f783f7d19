// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/chainballot/coordinator"
	"github.com/danielhkuo/chainballot/credentials"
	"github.com/danielhkuo/chainballot/ledger"
	"github.com/danielhkuo/chainballot/middleware"
	"github.com/danielhkuo/chainballot/registry"
	"github.com/danielhkuo/chainballot/session"
)

// respondDomainError maps a coordinator error onto the HTTP status space.
// Validation problems are 400, state conflicts 409, unknown resources 404,
// ledger rejections 502 and ledger outages 503 so clients can tell "your
// request is wrong" apart from "try again later".
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, coordinator.ErrBlankUsername),
		errors.Is(err, registry.ErrBlankName),
		errors.Is(err, credentials.ErrPasswordTooShort),
		errors.Is(err, credentials.ErrPasswordNoUpper),
		errors.Is(err, credentials.ErrPasswordNoLower),
		errors.Is(err, credentials.ErrPasswordNoDigit),
		errors.Is(err, credentials.ErrPasswordNoSymbol):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, coordinator.ErrUnknownVoter):
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, registry.ErrNotFound),
		errors.Is(err, registry.ErrUnknownCandidate):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())

	case errors.Is(err, credentials.ErrAlreadyRegistered),
		errors.Is(err, registry.ErrDuplicateName),
		errors.Is(err, coordinator.ErrAlreadyVoted),
		errors.Is(err, coordinator.ErrSessionNotOpen),
		errors.Is(err, coordinator.ErrSessionNotInRegistration),
		errors.Is(err, session.ErrAlreadyOpenOrClosed),
		errors.Is(err, session.ErrNotOpen):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())

	case errors.Is(err, ledger.ErrRejected):
		middleware.ErrorResponse(w, http.StatusBadGateway, "Ledger rejected the action")

	case errors.Is(err, ledger.ErrUnavailable):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Ledger unavailable, try again later")

	default:
		slog.Error("unhandled domain error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
