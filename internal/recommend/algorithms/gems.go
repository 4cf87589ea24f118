// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package algorithms

import (
	"fmt"

	"github.com/tomtom215/playnext/internal/catalog"
)

// RankGems ranks games that have at least minCount ratings by
//
//	score(j) = alpha * RatingNorm(j) + (1 - alpha) * (1 - RatingCountNorm(j))
//
// High alpha favours quality, low alpha favours obscurity. The similarity
// matrix is not involved. Ties keep pool order.
func RankGems(pool *catalog.Pool, alpha float64, minCount, k int) ([]ScoredGame, error) {
	if alpha < 0 || alpha > 1 {
		return nil, fmt.Errorf("%w: alpha must be in [0,1], got %v", ErrInvalidParameter, alpha)
	}
	if minCount < 0 {
		return nil, fmt.Errorf("%w: min_count must be >= 0, got %d", ErrInvalidParameter, minCount)
	}
	if k < 0 {
		return nil, fmt.Errorf("%w: top_k must be >= 0, got %d", ErrInvalidParameter, k)
	}

	n := pool.Len()
	scores := make([]float64, n)
	order := make([]int, 0, n)
	for j := 0; j < n; j++ {
		g := pool.Game(j)
		if g.RatingCount < minCount {
			continue
		}
		scores[j] = alpha*g.RatingNorm + (1-alpha)*(1-g.RatingCountNorm)
		order = append(order, j)
	}
	rankByScore(order, scores)

	return topK(pool, order, scores, k, -1), nil
}
