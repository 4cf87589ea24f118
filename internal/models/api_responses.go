// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package models defines the HTTP API response structures for PlayNext.
//
// Domain types (games, recommendations, distributions) live with the code
// that produces them in the catalog and recommend packages; this package
// holds only the envelope and endpoint payloads that exist for the API.
package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"items": [...], "metadata": {...}},
//	  "metadata": {
//	    "timestamp": "2026-05-02T12:00:00Z",
//	    "request_id": "0f6d1c5e-...",
//	    "query_time_ms": 4
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "INVALID_PARAMETER",
//	    "message": "anchor not in pool",
//	    "details": {"anchor": "Nonexistent Game"}
//	  },
//	  "metadata": {"timestamp": "2026-05-02T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string    `json:"status"`
	Data     any       `json:"data"`
	Metadata Metadata  `json:"metadata"`
	Error    *APIError `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Error codes:
//   - INVALID_PARAMETER: Request parameters out of range or malformed
//   - VALIDATION_ERROR: Struct validation failed (field details attached)
//   - INVALID_BODY: Request body is not valid JSON for the endpoint
//   - CATALOG_UNAVAILABLE: No catalog loaded, or the dataset failed to load
//   - TIMEOUT: The request deadline expired mid-pipeline
//   - INTERNAL_ERROR: Anything else
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// PoolResponse is the payload of POST /api/v1/pool.
type PoolResponse struct {
	PoolSize int      `json:"pool_size"`
	Names    []string `json:"names"`
}

// SearchResponse is the payload of GET /api/v1/games/search.
type SearchResponse struct {
	Query   string   `json:"query"`
	Results []string `json:"results"`
	Count   int      `json:"count"`
}

// HealthStatus is the payload of the health endpoints.
type HealthStatus struct {
	Alive             bool    `json:"alive"`
	Ready             bool    `json:"ready"`
	CatalogLoaded     bool    `json:"catalog_loaded"`
	CatalogGames      int     `json:"catalog_games,omitempty"`
	CatalogGeneration uint64  `json:"catalog_generation,omitempty"`
	Uptime            float64 `json:"uptime"`
}
