// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

package api

import (
	"context"
	"net/http"
	"time"
)

// healthResponse is the health endpoint payload.
type healthResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Database      string  `json:"database"`
}

// Health reports service liveness and database reachability. A failing
// database check degrades the status without failing the request, so
// load balancers can distinguish "up but unhealthy" from "down".
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:        "ok",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Database:      "ok",
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	respondOK(w, status, resp)
}

// HealthLive reports process liveness only. Always 200 while the process
// can serve requests at all.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondOK(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HealthReady reports readiness to serve traffic, gated on the database.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		respondError(w, http.StatusServiceUnavailable, "DATABASE_ERROR", "Database unreachable", err)
		return
	}
	respondOK(w, http.StatusOK, map[string]string{"status": "ready"})
}
