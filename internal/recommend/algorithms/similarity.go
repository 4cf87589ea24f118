// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package algorithms

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/playnext/internal/recommend/features"
)

// ZeroNormEpsilon replaces a zero row norm so similarity against an all-zero
// vector is 0 instead of NaN.
const ZeroNormEpsilon = 1e-9

// SimilarityMatrix is a dense, symmetric n×n cosine similarity matrix.
type SimilarityMatrix struct {
	n    int
	data []float64
}

// Len returns the matrix dimension.
func (s *SimilarityMatrix) Len() int { return s.n }

// At returns sim(i, j).
func (s *SimilarityMatrix) At(i, j int) float64 { return s.data[i*s.n+j] }

// Row returns the similarities of row i. The slice aliases the matrix.
func (s *SimilarityMatrix) Row(i int) []float64 { return s.data[i*s.n : (i+1)*s.n] }

// CosineSimilarity computes the full pairwise cosine matrix of m's rows.
//
// Rows are distributed across workers (<= 0 means GOMAXPROCS). Each unordered
// pair is computed once, by the worker owning the lower row, and mirrored.
// The context is checked between rows.
func CosineSimilarity(ctx context.Context, m *features.Matrix, workers int) (*SimilarityMatrix, error) {
	n := m.Rows
	s := &SimilarityMatrix{n: n, data: make([]float64, n*n)}
	if n == 0 {
		return s, nil
	}

	norms := make([]float64, n)
	for i := range norms {
		norms[i] = m.RowNorm(i)
		if norms[i] == 0 {
			norms[i] = ZeroNormEpsilon
		}
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, n)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			dense := make([]float64, m.Cols)
			// Interleave rows so the longer upper-triangle rows spread evenly.
			for i := w; i < n; i += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				fillUpperRow(m, s, norms, dense, i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}

// fillUpperRow computes sim(i, j) for j >= i, writing both (i,j) and (j,i).
func fillUpperRow(m *features.Matrix, s *SimilarityMatrix, norms, dense []float64, i int) {
	idx, vals := m.Row(i)
	for k, c := range idx {
		dense[c] = vals[k]
	}

	for j := i; j < s.n; j++ {
		jIdx, jVals := m.Row(j)
		var dot float64
		for k, c := range jIdx {
			dot += dense[c] * jVals[k]
		}
		v := dot / (norms[i] * norms[j])
		s.data[i*s.n+j] = v
		s.data[j*s.n+i] = v
	}

	for _, c := range idx {
		dense[c] = 0
	}
}
