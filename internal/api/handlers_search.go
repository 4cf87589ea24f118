// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/playnext/internal/models"
	"github.com/tomtom215/playnext/internal/recommend"
)

// SearchGames handles GET /api/v1/games/search.
//
// Query parameters:
//   - q: search text; empty lists the first names alphabetically
//   - limit: maximum results (default from configuration)
//   - genres, platforms, themes: repeated or pipe-separated filter labels
//   - mode, min_rating, min_count: remaining filter fields
func (h *Handler) SearchGames(w http.ResponseWriter, r *http.Request) {
	params, limit, err := parseSearchQuery(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeInvalidParameter, err.Error(), err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	query := r.URL.Query().Get("q")
	start := time.Now()
	names, err := h.engine.Search(ctx, params, query, limit)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, r, searchResponse(query, names), time.Since(start))
}

// parseSearchQuery reads the filter and limit of a search request.
func parseSearchQuery(r *http.Request) (recommend.FilterParams, int, error) {
	var params recommend.FilterParams

	limit, err := getIntParam(r, "limit", 0)
	if err != nil {
		return params, 0, err
	}
	if limit < 0 {
		return params, 0, fmt.Errorf("limit must be >= 0, got %d", limit)
	}

	params.Genres = parseMultiValue(r, "genres")
	params.Platforms = parseMultiValue(r, "platforms")
	params.Themes = parseMultiValue(r, "themes")

	if params.Mode, err = recommend.ParseModePreference(r.URL.Query().Get("mode")); err != nil {
		return params, 0, err
	}
	if params.MinRating, err = getFloatParam(r, "min_rating", 0); err != nil {
		return params, 0, err
	}
	if params.MinCount, err = getIntParam(r, "min_count", 0); err != nil {
		return params, 0, err
	}

	return params, limit, nil
}

func searchResponse(query string, names []string) models.SearchResponse {
	if names == nil {
		names = []string{}
	}
	return models.SearchResponse{
		Query:   query,
		Results: names,
		Count:   len(names),
	}
}
