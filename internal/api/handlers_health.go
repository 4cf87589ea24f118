// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/playnext/internal/models"
)

// HealthLive handles GET /api/v1/health/live.
// The process is alive whenever it can answer.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: models.HealthStatus{
			Alive:         true,
			Ready:         h.engine.Ready(),
			CatalogLoaded: h.engine.Ready(),
			Uptime:        time.Since(h.startTime).Seconds(),
		},
		Metadata: newMetadata(r, 0),
	})
}

// HealthReady handles GET /api/v1/health/ready.
// Ready means a catalog snapshot is loaded; 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatus{
		Alive:  true,
		Uptime: time.Since(h.startTime).Seconds(),
	}

	statusCode := http.StatusOK
	responseStatus := models.StatusSuccess
	if c, err := h.engine.Catalog(); err == nil {
		status.Ready = true
		status.CatalogLoaded = true
		status.CatalogGames = c.Len()
		status.CatalogGeneration = c.Generation()
	} else {
		statusCode = http.StatusServiceUnavailable
		responseStatus = "not_ready"
	}

	respondJSON(w, r, statusCode, &models.APIResponse{
		Status:   responseStatus,
		Data:     status,
		Metadata: newMetadata(r, 0),
	})
}
