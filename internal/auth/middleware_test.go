// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

package auth

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/softhalostudio/studio/internal/models"
)

func newTestMiddleware(t *testing.T) (*Middleware, *TokenManager) {
	t.Helper()
	m, err := NewTokenManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}
	return NewMiddleware(m), m
}

func TestAuthenticate(t *testing.T) {
	mw, tokens := newTestMiddleware(t)

	valid, _, err := tokens.Issue("admin")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantCode: "NO_TOKEN"},
		{name: "basic scheme", header: "Basic xyz", wantStatus: http.StatusUnauthorized, wantCode: "NO_TOKEN"},
		{name: "lowercase bearer", header: "bearer " + valid, wantStatus: http.StatusUnauthorized, wantCode: "NO_TOKEN"},
		{name: "bearer without space", header: "Bearer" + valid, wantStatus: http.StatusUnauthorized, wantCode: "NO_TOKEN"},
		{name: "bearer with empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantCode: "INVALID_TOKEN"},
		{name: "garbage token", header: "Bearer not.a.jwt", wantStatus: http.StatusUnauthorized, wantCode: "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			handler := mw.Authenticate(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/messages", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if !handlerCalled {
					t.Error("wrapped handler was not called for an authorized request")
				}
				return
			}
			if handlerCalled {
				t.Error("wrapped handler was called for a rejected request")
			}

			var resp models.APIResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if resp.Status != "error" {
				t.Errorf("response status = %q, want %q", resp.Status, "error")
			}
			if resp.Error == nil {
				t.Fatal("response error payload is nil")
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", resp.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	m, err := NewTokenManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}
	clock := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	token, _, err := m.Issue("admin")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	clock = clock.Add(8 * 24 * time.Hour)

	mw := NewMiddleware(m)
	handler := mw.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler ran with an expired token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/messages", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateAttachesClaims(t *testing.T) {
	mw, tokens := newTestMiddleware(t)
	token, _, err := tokens.Issue("halo")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	handler := mw.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			t.Fatal("ClaimsFromContext() ok = false inside authenticated handler")
		}
		if claims.Username != "halo" {
			t.Errorf("claims.Username = %q, want %q", claims.Username, "halo")
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/messages", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestClaimsFromContextWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := ClaimsFromContext(req.Context()); ok {
		t.Error("ClaimsFromContext() ok = true on a bare context")
	}
}

func TestAuthenticateConcurrent(t *testing.T) {
	mw, tokens := newTestMiddleware(t)
	token, _, err := tokens.Issue("admin")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	handler := mw.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/messages", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler(rec, req)
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}
		}()
	}
	wg.Wait()
}
