// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

/*
Package middleware provides HTTP middleware for the PlayNext API.

Components:

  - RequestID: X-Request-ID propagation into the request and logging contexts
  - PrometheusMetrics: request count, latency, and in-flight instrumentation
  - AccessLog: one structured zerolog line per completed request

All middleware uses the http.HandlerFunc signature; the api package adapts it
for Chi's r.Use.

Middleware Stack:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.AccessLog))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

Metrics are labelled with the Chi route pattern rather than the raw path, so
/api/v1/games/search?q=zelda and ?q=mario share one series.
*/
package middleware
