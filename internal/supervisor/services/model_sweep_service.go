// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ModelPruner drops expired memoized pool models.
// Satisfied by *recommend.Engine.
type ModelPruner interface {
	PruneModels() int
}

// ModelSweepService periodically evicts expired pool models so that a cache
// nobody reads no longer holds similarity matrices past their TTL.
type ModelSweepService struct {
	pruner   ModelPruner
	interval time.Duration
	logger   zerolog.Logger
}

// NewModelSweepService sweeps every interval. A non-positive interval
// disables sweeping; Serve then just waits for shutdown.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewModelSweepService(pruner ModelPruner, interval time.Duration, logger zerolog.Logger) *ModelSweepService {
	return &ModelSweepService{
		pruner:   pruner,
		interval: interval,
		logger:   logger.With().Str("service", "model-sweep").Logger(),
	}
}

// Serve implements suture.Service.
func (s *ModelSweepService) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := s.pruner.PruneModels(); n > 0 {
				s.logger.Debug().Int("removed", n).Msg("model sweep")
			}
		}
	}
}

// String returns the service name for logging.
func (s *ModelSweepService) String() string { return "model-sweep" }
