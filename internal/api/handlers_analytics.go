// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

package api

import (
	"net/http"
	"time"

	"github.com/softhalostudio/studio/internal/models"
)

// SiteStats returns the analytics summary for the admin dashboard.
// Without an analytics backend configured the endpoint reports
// unavailability rather than fabricating zeros.
func (h *Handler) SiteStats(w http.ResponseWriter, r *http.Request) {
	if h.stats == nil {
		respondError(w, http.StatusServiceUnavailable, "ANALYTICS_ERROR", "Analytics is not configured", nil)
		return
	}

	start := time.Now()
	stats, cached, err := h.stats.Stats(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "ANALYTICS_ERROR", "Failed to fetch analytics", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   stats,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: float64(time.Since(start).Microseconds()) / 1000,
			Cached:      cached,
		},
	})
}
