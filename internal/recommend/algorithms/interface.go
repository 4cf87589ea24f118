// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package algorithms implements the similarity and ranking stages of the
// recommendation pipeline.
//
// # Ranking Modes
//
//   - Content: nearest neighbours of an anchor game, weighted by quality and engagement
//   - Gems: quality against obscurity, independent of any anchor
//
// # Thread Safety
//
// Functions here are pure over their inputs. A SimilarityMatrix is read-only
// once built and may be shared between goroutines.
package algorithms

import (
	"context"
	"errors"
	"sort"

	"github.com/tomtom215/playnext/internal/catalog"
)

// ErrInvalidParameter is wrapped by every parameter validation failure.
var ErrInvalidParameter = errors.New("invalid parameter")

// ScoredGame is a ranked result.
type ScoredGame struct {
	// Index is the game's position in the pool it was ranked from.
	Index int           `json:"-"`
	Game  *catalog.Game `json:"game"`
	Score float64       `json:"score"`
}

// Weights blend normalized rating and rating count into a quality term.
type Weights struct {
	Rating float64 `json:"w_rating" validate:"gte=0,lte=1"`
	Count  float64 `json:"w_count" validate:"gte=0,lte=1"`
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// rankByScore orders pool indices by descending score. Ties keep pool order.
func rankByScore(order []int, scores []float64) {
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
}

// topK builds results from ranked indices, skipping exclude (use -1 for none).
func topK(pool *catalog.Pool, order []int, scores []float64, k, exclude int) []ScoredGame {
	if k <= 0 {
		return []ScoredGame{}
	}
	out := make([]ScoredGame, 0, min(k, len(order)))
	for _, idx := range order {
		if idx == exclude {
			continue
		}
		out = append(out, ScoredGame{Index: idx, Game: pool.Game(idx), Score: scores[idx]})
		if len(out) == k {
			break
		}
	}
	return out
}
