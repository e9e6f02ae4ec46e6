// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/softhalostudio/studio/internal/models"
)

func seedMessage(t *testing.T, env *testEnv, name string) *models.ContactMessage {
	t.Helper()
	msg := &models.ContactMessage{
		Name:    name,
		Email:   "client@example.com",
		Message: "Looking for an engagement shoot in October.",
	}
	if err := env.messages.Create(context.Background(), msg); err != nil {
		t.Fatalf("seeding message: %v", err)
	}
	return msg
}

func TestSubmitContact(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "valid submission",
			body:       `{"name":"Ada","email":"ada@example.com","message":"Do you shoot weddings?"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "valid with optional fields",
			body:       `{"name":"Ada","email":"ada@example.com","phone":"+1 555 0100","service":"wedding","message":"June availability?"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing message",
			body:       `{"name":"Ada","email":"ada@example.com"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "bad email",
			body:       `{"name":"Ada","email":"not-an-email","message":"hi"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "malformed body",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			env.handler.SubmitContact(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d\nbody: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}

			resp := decodeResponse(t, rec)
			if tt.wantCode != "" {
				if resp.Error == nil || resp.Error.Code != tt.wantCode {
					t.Errorf("error = %+v, want code %q", resp.Error, tt.wantCode)
				}
				if len(env.messages.messages) != 0 {
					t.Error("invalid submission was persisted")
				}
				return
			}
			if len(env.messages.messages) != 1 {
				t.Errorf("stored messages = %d, want 1", len(env.messages.messages))
			}
		})
	}
}

func TestSubmitContactDatabaseFailure(t *testing.T) {
	env := newTestEnv(t)
	env.messages.err = context.DeadlineExceeded

	body := `{"name":"Ada","email":"ada@example.com","message":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.handler.SubmitContact(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Error == nil || resp.Error.Code != "DATABASE_ERROR" {
		t.Errorf("error = %s", rec.Body.String())
	}
}

func TestListMessages(t *testing.T) {
	env := newTestEnv(t)
	seedMessage(t, env, "Ada")
	seedMessage(t, env, "Grace")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/messages", nil)
	rec := httptest.NewRecorder()
	env.handler.ListMessages(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	messages, ok := resp.Data.([]interface{})
	if !ok {
		t.Fatalf("data has type %T", resp.Data)
	}
	if len(messages) != 2 {
		t.Errorf("len = %d, want 2", len(messages))
	}
}

func TestMarkMessageRead(t *testing.T) {
	env := newTestEnv(t)
	msg := seedMessage(t, env, "Ada")

	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/v1/admin/messages/"+msg.ID+"/read", nil), "id", msg.ID)
	rec := httptest.NewRecorder()
	env.handler.MarkMessageRead(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d\nbody: %s", rec.Code, rec.Body.String())
	}
	if !env.messages.messages[msg.ID].Read {
		t.Error("message not marked read")
	}

	req = withURLParam(httptest.NewRequest(http.MethodPatch, "/api/v1/admin/messages/nope/read", nil), "id", "nope")
	rec = httptest.NewRecorder()
	env.handler.MarkMessageRead(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteMessage(t *testing.T) {
	env := newTestEnv(t)
	msg := seedMessage(t, env, "Ada")

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/v1/admin/messages/"+msg.ID, nil), "id", msg.ID)
	rec := httptest.NewRecorder()
	env.handler.DeleteMessage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(env.messages.messages) != 0 {
		t.Error("message still present after delete")
	}

	req = withURLParam(httptest.NewRequest(http.MethodDelete, "/api/v1/admin/messages/"+msg.ID, nil), "id", msg.ID)
	rec = httptest.NewRecorder()
	env.handler.DeleteMessage(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSiteStats(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/analytics", nil)
	rec := httptest.NewRecorder()
	env.handler.SiteStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	if data["pageViews30d"] != float64(100) {
		t.Errorf("pageViews30d = %v", data["pageViews30d"])
	}
}

func TestSiteStatsUnconfigured(t *testing.T) {
	env := newTestEnv(t)
	env.handler.stats = nil

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/analytics", nil)
	rec := httptest.NewRecorder()
	env.handler.SiteStats(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Error == nil || resp.Error.Code != "ANALYTICS_ERROR" {
		t.Errorf("error = %s", rec.Body.String())
	}
}
