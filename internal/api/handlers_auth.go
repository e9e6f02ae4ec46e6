// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

package api

import (
	"net/http"

	"github.com/softhalostudio/studio/internal/logging"
	"github.com/softhalostudio/studio/internal/metrics"
	"github.com/softhalostudio/studio/internal/models"
)

// Login authenticates the admin and issues a session token.
//
// All credential failures collapse into one INVALID_CREDENTIALS response;
// the client cannot tell a wrong username from a wrong password. Neither
// the password nor the stored hash ever appears in responses or logs.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSONBody(w, r, &req) {
		metrics.LoginAttempts.WithLabelValues("invalid_request").Inc()
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		metrics.LoginAttempts.WithLabelValues("invalid_request").Inc()
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	if !h.credentials.Check(req.Username, req.Password) {
		metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
		logging.Ctx(r.Context()).Warn().
			Str("username", sanitizeLogValue(req.Username)).
			Msg("failed login attempt")
		respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
		return
	}

	token, expiresAt, err := h.tokens.Issue(req.Username)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("invalid_request").Inc()
		respondError(w, http.StatusInternalServerError, "TOKEN_GENERATION_FAILED", "Failed to generate authentication token", err)
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logging.Ctx(r.Context()).Info().
		Str("username", sanitizeLogValue(req.Username)).
		Msg("admin login")

	respondOK(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}
