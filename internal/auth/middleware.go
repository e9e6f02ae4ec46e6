// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

// Package auth provides password hashing, JWT session tokens, the admin
// credential check, and the HTTP authentication middleware guarding the
// admin surface.
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/softhalostudio/studio/internal/logging"
	"github.com/softhalostudio/studio/internal/metrics"
	"github.com/softhalostudio/studio/internal/models"
)

type contextKey string

// claimsContextKey is the context key under which verified claims are
// attached to a request.
const claimsContextKey contextKey = "claims"

// bearerPrefix is the required Authorization scheme prefix, matched
// case-sensitively with its single trailing space.
const bearerPrefix = "Bearer "

// Middleware enforces bearer-token authentication on protected routes.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware creates authentication middleware backed by the given
// token manager.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Authenticate wraps a handler so it only runs for requests carrying a
// valid bearer token. The verified claims are attached to the request
// context; handlers retrieve them with ClaimsFromContext and perform no
// further authentication checks.
//
// Requests without an Authorization header, or with any scheme other than
// exactly "Bearer ", are rejected before verification is attempted.
// Requests whose token fails verification for any reason (malformed,
// tampered, expired) are rejected identically with 401; clients see the
// same status either way and cannot probe which check failed. A rejected
// request is always answered and terminated here, and the wrapped handler
// never runs. Failures are terminal for the request: the gate never
// retries.
func (m *Middleware) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			writeUnauthorized(w, "NO_TOKEN", "Unauthorized: no token provided")
			return
		}

		token := authHeader[len(bearerPrefix):]
		claims, err := m.tokens.Verify(token)
		if err != nil {
			metrics.TokenVerifications.WithLabelValues("rejected").Inc()
			logging.Ctx(r.Context()).Debug().Err(err).Msg("token verification failed")
			writeUnauthorized(w, "INVALID_TOKEN", "Unauthorized: invalid token")
			return
		}
		metrics.TokenVerifications.WithLabelValues("accepted").Inc()

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// Handler adapts Authenticate to chi's func(http.Handler) http.Handler
// middleware shape.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return m.Authenticate(next.ServeHTTP)
}

// ClaimsFromContext retrieves the verified claims attached by
// Authenticate. The boolean is false when the request did not pass
// through the middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok
}

// writeUnauthorized writes a 401 response in the standard API envelope.
func writeUnauthorized(w http.ResponseWriter, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	resp := &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("failed to encode unauthorized response")
	}
}
