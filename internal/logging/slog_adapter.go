// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package logging

import (
	"context"
	"log/slog"

	"github.com/rs/zerolog"
)

// slogBridge is an slog.Handler that emits through zerolog, so the
// supervisor's sutureslog events land in the same stream as everything else.
// Attributes added with WithAttrs are folded into the zerolog context once;
// group names become dotted key prefixes.
type slogBridge struct {
	zl     zerolog.Logger
	prefix string
}

// NewSlogLogger returns an *slog.Logger writing through the global logger
// as configured at the time of the call.
//
//	handler := &sutureslog.Handler{Logger: logging.NewSlogLogger()}
func NewSlogLogger() *slog.Logger {
	return slog.New(&slogBridge{zl: Logger()})
}

// newSlogLoggerTo bridges to an explicit zerolog logger.
//
//nolint:gocritic // zerolog.Logger is passed by value throughout zerolog
func newSlogLoggerTo(zl zerolog.Logger) *slog.Logger {
	return slog.New(&slogBridge{zl: zl})
}

func (b *slogBridge) Enabled(_ context.Context, level slog.Level) bool {
	zl := zerologLevel(level)
	return zl >= b.zl.GetLevel() && zl >= zerolog.GlobalLevel()
}

//nolint:gocritic // slog.Handler passes records by value
func (b *slogBridge) Handle(_ context.Context, r slog.Record) error {
	ev := b.zl.WithLevel(zerologLevel(r.Level))
	if ev == nil {
		return nil
	}
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(ev, b.prefix, a)
		return true
	})
	ev.Msg(r.Message)
	return nil
}

func (b *slogBridge) WithAttrs(attrs []slog.Attr) slog.Handler {
	ctx := b.zl.With()
	for _, a := range attrs {
		ctx = appendAttrCtx(ctx, b.prefix, a)
	}
	return &slogBridge{zl: ctx.Logger(), prefix: b.prefix}
}

func (b *slogBridge) WithGroup(name string) slog.Handler {
	if name == "" {
		return b
	}
	return &slogBridge{zl: b.zl, prefix: b.prefix + name + "."}
}

func appendAttr(ev *zerolog.Event, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	key := prefix + a.Key
	switch v.Kind() {
	case slog.KindGroup:
		for _, ga := range v.Group() {
			appendAttr(ev, key+".", ga)
		}
	case slog.KindString:
		ev.Str(key, v.String())
	case slog.KindInt64:
		ev.Int64(key, v.Int64())
	case slog.KindUint64:
		ev.Uint64(key, v.Uint64())
	case slog.KindFloat64:
		ev.Float64(key, v.Float64())
	case slog.KindBool:
		ev.Bool(key, v.Bool())
	case slog.KindDuration:
		ev.Dur(key, v.Duration())
	case slog.KindTime:
		ev.Time(key, v.Time())
	default:
		ev.Interface(key, v.Any())
	}
}

func appendAttrCtx(ctx zerolog.Context, prefix string, a slog.Attr) zerolog.Context {
	v := a.Value.Resolve()
	key := prefix + a.Key
	if v.Kind() == slog.KindGroup {
		for _, ga := range v.Group() {
			ctx = appendAttrCtx(ctx, key+".", ga)
		}
		return ctx
	}
	return ctx.Interface(key, v.Any())
}

func zerologLevel(l slog.Level) zerolog.Level {
	switch {
	case l >= slog.LevelError:
		return zerolog.ErrorLevel
	case l >= slog.LevelWarn:
		return zerolog.WarnLevel
	case l >= slog.LevelInfo:
		return zerolog.InfoLevel
	case l >= slog.LevelDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
