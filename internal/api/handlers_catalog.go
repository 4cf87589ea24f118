// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/playnext/internal/models"
	"github.com/tomtom215/playnext/internal/recommend"
)

// CatalogSummary handles GET /api/v1/catalog.
func (h *Handler) CatalogSummary(w http.ResponseWriter, r *http.Request) {
	c, err := h.engine.Catalog()
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, c.Summary(), 0)
}

// CatalogFacets handles GET /api/v1/catalog/facets.
func (h *Handler) CatalogFacets(w http.ResponseWriter, r *http.Request) {
	facets, err := h.engine.Facets()
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, facets, 0)
}

// Pool handles POST /api/v1/pool. The body is a filter; an empty body
// selects the whole deduplicated catalog.
func (h *Handler) Pool(w http.ResponseWriter, r *http.Request) {
	var params recommend.FilterParams
	if err := decodeBody(w, r, &params); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeInvalidBody, "Invalid request body", err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	start := time.Now()
	pool, err := h.engine.Filter(ctx, params)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, r, models.PoolResponse{
		PoolSize: pool.Len(),
		Names:    pool.Names(),
	}, time.Since(start))
}
