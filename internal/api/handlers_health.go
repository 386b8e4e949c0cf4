// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Cinematch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package api

import (
	"net/http"
	"time"

	"github.com/cinematch/cinematch/internal/models"
	"github.com/cinematch/cinematch/internal/recommend"
)

// Health handles GET /api/v1/health.
// Reports overall service health plus catalog lifecycle detail. The endpoint
// never triggers a catalog build; a service still waiting on its first query
// reports "starting".
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	state := h.provider.State()

	status := "starting"
	httpStatus := http.StatusOK
	switch state {
	case recommend.StateReady:
		status = "healthy"
	case recommend.StateLoadFailed:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	items := 0
	if catalog := h.provider.Catalog(); catalog != nil {
		items = catalog.Len()
	}

	respondJSON(w, httpStatus, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status:       status,
			Version:      Version,
			CatalogState: state.String(),
			CatalogItems: items,
			Uptime:       time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthLive handles GET /api/v1/health/live.
// Liveness only asserts the process serves HTTP; catalog state is irrelevant.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "alive"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady handles GET /api/v1/health/ready.
// Readiness requires a built catalog: load balancers keep traffic away until
// the first build finishes, and permanently after a failed build.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	state := h.provider.State()

	if state != recommend.StateReady {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY",
			"Recommendation catalog is not ready (state: "+state.String()+")", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "ready"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
