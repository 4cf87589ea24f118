// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package algorithms

import (
	"fmt"

	"github.com/tomtom215/playnext/internal/catalog"
)

// RankSimilar ranks the pool against the game at anchor:
//
//	score(j) = sim(anchor, j) * (w.Rating * RatingNorm(j) + w.Count * RatingCountNorm(j))
//
// Results are sorted by descending score with ties in pool order, the anchor
// itself is excluded, and at most k entries are returned.
func RankSimilar(pool *catalog.Pool, sims *SimilarityMatrix, anchor, k int, w Weights) ([]ScoredGame, error) {
	n := pool.Len()
	if n == 0 {
		return []ScoredGame{}, nil
	}
	if sims.Len() != n {
		return nil, fmt.Errorf("similarity matrix is %dx%d for a pool of %d", sims.Len(), sims.Len(), n)
	}
	if anchor < 0 || anchor >= n {
		return nil, fmt.Errorf("%w: anchor index %d outside pool of %d", ErrInvalidParameter, anchor, n)
	}
	if k < 0 {
		return nil, fmt.Errorf("%w: top_k must be >= 0, got %d", ErrInvalidParameter, k)
	}

	row := sims.Row(anchor)
	scores := make([]float64, n)
	order := make([]int, n)
	for j := 0; j < n; j++ {
		g := pool.Game(j)
		scores[j] = row[j] * (w.Rating*g.RatingNorm + w.Count*g.RatingCountNorm)
		order[j] = j
	}
	rankByScore(order, scores)

	return topK(pool, order, scores, k, anchor), nil
}
