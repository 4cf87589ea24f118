// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/playnext/internal/recommend"
)

// DistributionRequest is the body of POST /api/v1/platforms/distribution.
type DistributionRequest struct {
	Filter recommend.FilterParams `json:"filter"`

	// TopN limits the platforms returned. nil uses recommend.DefaultTopPlatforms;
	// 0 returns all of them.
	TopN *int `json:"top_n,omitempty"`
}

// RecommendSimilar handles POST /api/v1/recommendations/similar.
func (h *Handler) RecommendSimilar(w http.ResponseWriter, r *http.Request) {
	var req recommend.SimilarRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeInvalidBody, "Invalid request body", err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	start := time.Now()
	resp, err := h.engine.RecommendSimilar(ctx, req)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, resp, time.Since(start))
}

// RecommendGems handles POST /api/v1/recommendations/gems.
func (h *Handler) RecommendGems(w http.ResponseWriter, r *http.Request) {
	var req recommend.GemsRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeInvalidBody, "Invalid request body", err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	start := time.Now()
	resp, err := h.engine.RecommendGems(ctx, req)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, resp, time.Since(start))
}

// PlatformDistribution handles POST /api/v1/platforms/distribution.
func (h *Handler) PlatformDistribution(w http.ResponseWriter, r *http.Request) {
	var req DistributionRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeInvalidBody, "Invalid request body", err)
		return
	}

	topN := recommend.DefaultTopPlatforms
	if req.TopN != nil {
		topN = *req.TopN
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	start := time.Now()
	dist, err := h.engine.PlatformDistribution(ctx, req.Filter, topN)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, dist, time.Since(start))
}
