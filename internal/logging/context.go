// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type requestIDKey struct{}

// ContextWithRequestID tags ctx with the ID of the HTTP request it serves.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request ID, or "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Ctx returns the logger attached with zerolog's WithContext, or the global
// logger, with request_id added when ctx carries one.
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("similar failed")
func Ctx(ctx context.Context) *zerolog.Logger {
	l := Logger()
	if attached := zerolog.Ctx(ctx); attached.GetLevel() != zerolog.Disabled {
		l = *attached
	}
	if id := RequestIDFromContext(ctx); id != "" {
		l = l.With().Str("request_id", id).Logger()
	}
	return &l
}
