// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package api provides the PlayNext HTTP API: Chi routing, middleware
// wiring, and handlers that translate JSON requests into recommendation
// engine calls.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/playnext/internal/recommend"
)

// DefaultRequestTimeout bounds a single engine call when none is configured.
const DefaultRequestTimeout = 30 * time.Second

// Handler serves the recommendation API on top of an engine.
type Handler struct {
	engine    *recommend.Engine
	timeout   time.Duration
	startTime time.Time
}

// NewHandler creates a handler. A non-positive timeout uses DefaultRequestTimeout.
func NewHandler(engine *recommend.Engine, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Handler{
		engine:    engine,
		timeout:   timeout,
		startTime: time.Now(),
	}
}

// requestContext derives the per-request deadline.
func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}
