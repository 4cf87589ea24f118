// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package reranking implements optional post-processing of ranked results.
package reranking

import (
	"context"

	"github.com/tomtom215/playnext/internal/recommend/algorithms"
)

// maxRerankSize limits slice allocations; k is also bounded by len(items).
const maxRerankSize = 10000

// PairSimilarity reports similarity between two pool indices.
// *algorithms.SimilarityMatrix satisfies it.
type PairSimilarity interface {
	At(i, j int) float64
}

// MMR implements Maximal Marginal Relevance reranking.
// It iteratively selects games that are both relevant and dissimilar to the
// games already selected:
//
//	MMR = argmax[lambda * score(i) - (1-lambda) * max(sim(i, s)) for s in selected]
//
// lambda = 1 is pure relevance, lambda = 0 is pure diversity. Similarity is
// the pool's feature cosine, so "diverse" means different genres, themes,
// platforms, or modes.
//
// Reference:
// Carbonell, J., & Goldstein, J. (1998). "The Use of MMR, Diversity-Based
// Reranking for Reordering Documents and Producing Summaries." SIGIR 1998.
type MMR struct {
	lambda float64
}

// NewMMR creates a new MMR reranker. Lambda is clamped to [0,1].
func NewMMR(lambda float64) *MMR {
	return &MMR{lambda: min(max(lambda, 0), 1)}
}

// Name returns the reranker identifier.
func (m *MMR) Name() string {
	return "mmr"
}

// Lambda returns the relevance/diversity balance.
func (m *MMR) Lambda() float64 {
	return m.lambda
}

// Rerank selects k games from items. Items must carry pool indices valid for sims.
// On context cancellation the selection made so far is returned.
//
//nolint:gocritic // rangeValCopy: ScoredGame is small
func (m *MMR) Rerank(ctx context.Context, items []algorithms.ScoredGame, sims PairSimilarity, k int) []algorithms.ScoredGame {
	if len(items) == 0 || k <= 0 {
		return items
	}

	k = min(k, maxRerankSize, len(items))

	if m.lambda >= 1.0 {
		return items[:k]
	}

	selected := make([]algorithms.ScoredGame, 0, k)
	taken := make([]bool, len(items))

	for len(selected) < k {
		if algorithms.ContextCancelled(ctx) {
			break
		}

		bestIdx := -1
		bestMMR := 0.0

		for i, item := range items {
			if taken[i] {
				continue
			}

			maxSim := 0.0
			for _, s := range selected {
				if sim := sims.At(item.Index, s.Index); sim > maxSim {
					maxSim = sim
				}
			}

			score := m.lambda*item.Score - (1-m.lambda)*maxSim
			if bestIdx < 0 || score > bestMMR {
				bestMMR = score
				bestIdx = i
			}
		}

		if bestIdx < 0 {
			break
		}
		selected = append(selected, items[bestIdx])
		taken[bestIdx] = true
	}

	return selected
}
