// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/playnext/internal/logging"
)

// AccessLog logs one line per request with method, route, status, size,
// and duration. 5xx responses log at error level, 4xx at warn, the rest at debug.
func AccessLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next(ww, r)

		logger := logging.Ctx(r.Context())
		var event *zerolog.Event
		switch {
		case ww.statusCode >= http.StatusInternalServerError:
			event = logger.Error()
		case ww.statusCode >= http.StatusBadRequest:
			event = logger.Warn()
		default:
			event = logger.Debug()
		}

		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("route", routeLabel(r)).
			Str("remote_addr", r.RemoteAddr).
			Int("status", ww.statusCode).
			Int("bytes", ww.bytes).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	}
}
