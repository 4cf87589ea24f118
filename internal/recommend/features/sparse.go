// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package features

import "math"

// Matrix is a compressed sparse row (CSR) matrix of float64 values.
//
// Row i occupies Indices[IndPtr[i]:IndPtr[i+1]] and the matching Data range.
// Column indices within a row are strictly increasing.
type Matrix struct {
	Rows    int
	Cols    int
	IndPtr  []int
	Indices []int
	Data    []float64
}

// Row returns the column indices and values of row i. The slices alias the
// matrix storage and must not be modified.
func (m *Matrix) Row(i int) ([]int, []float64) {
	lo, hi := m.IndPtr[i], m.IndPtr[i+1]
	return m.Indices[lo:hi], m.Data[lo:hi]
}

// NNZ returns the number of stored entries.
func (m *Matrix) NNZ() int { return len(m.Data) }

// At returns the value at (i, j).
func (m *Matrix) At(i, j int) float64 {
	idx, vals := m.Row(i)
	for k, c := range idx {
		if c == j {
			return vals[k]
		}
		if c > j {
			break
		}
	}
	return 0
}

// RowNorm returns the Euclidean norm of row i.
func (m *Matrix) RowNorm(i int) float64 {
	_, vals := m.Row(i)
	var sum float64
	for _, v := range vals {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of rows i and j.
func (m *Matrix) Dot(i, j int) float64 {
	ai, av := m.Row(i)
	bi, bv := m.Row(j)
	var sum float64
	for p, q := 0, 0; p < len(ai) && q < len(bi); {
		switch {
		case ai[p] == bi[q]:
			sum += av[p] * bv[q]
			p++
			q++
		case ai[p] < bi[q]:
			p++
		default:
			q++
		}
	}
	return sum
}
