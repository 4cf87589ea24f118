// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package features turns catalog records into per-pool TF-IDF vectors.
//
// Vocabularies are pool-dependent: a term's column index and IDF weight only
// mean something within the pool they were fitted on, so vectors from
// different pools are never compared.
package features

import (
	"math"
	"sort"
	"strings"

	"github.com/tomtom215/playnext/internal/catalog"
)

// DefaultMinDF is the minimum number of documents a term must occur in to
// enter the vocabulary. Terms unique to one game carry no similarity signal.
const DefaultMinDF = 2

// Vocabulary maps terms to matrix columns and IDF weights.
// Terms are sorted lexicographically; column index equals sort position.
type Vocabulary struct {
	terms []string
	index map[string]int
	idf   []float64
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int { return len(v.terms) }

// Terms returns the terms in column order.
func (v *Vocabulary) Terms() []string { return v.terms }

// Index returns the column for term.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// IDF returns the inverse document frequency weight of column i.
func (v *Vocabulary) IDF(i int) float64 { return v.idf[i] }

// Build tokenizes every game in the pool and fits a TF-IDF space over them
// with DefaultMinDF. Rows follow pool order.
func Build(pool *catalog.Pool) (*Matrix, *Vocabulary) {
	games := pool.Games()
	docs := make([][]string, len(games))
	for i := range games {
		docs[i] = strings.Fields(FeatureText(&games[i]))
	}
	return BuildDocuments(docs, DefaultMinDF)
}

// BuildDocuments fits a TF-IDF space over pre-tokenized documents.
//
// Weights are raw term count times smoothed IDF, ln((1+n)/(1+df)) + 1, and
// each row is L2-normalized. A document with no surviving terms is an
// all-zero row. Fewer than minDF documents always yields an empty vocabulary.
func BuildDocuments(docs [][]string, minDF int) (*Matrix, *Vocabulary) {
	if minDF < 1 {
		minDF = 1
	}
	n := len(docs)

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, term := range doc {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	terms := make([]string, 0, len(df))
	for term, count := range df {
		if count >= minDF {
			terms = append(terms, term)
		}
	}
	sort.Strings(terms)

	vocab := &Vocabulary{
		terms: terms,
		index: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	for i, term := range terms {
		vocab.index[term] = i
		vocab.idf[i] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}

	m := &Matrix{
		Rows:   n,
		Cols:   len(terms),
		IndPtr: make([]int, n+1),
	}

	tf := make(map[int]float64)
	for r, doc := range docs {
		clear(tf)
		for _, term := range doc {
			if col, ok := vocab.index[term]; ok {
				tf[col]++
			}
		}

		cols := make([]int, 0, len(tf))
		for col := range tf {
			cols = append(cols, col)
		}
		sort.Ints(cols)

		var norm float64
		start := len(m.Data)
		for _, col := range cols {
			w := tf[col] * vocab.idf[col]
			m.Indices = append(m.Indices, col)
			m.Data = append(m.Data, w)
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for k := start; k < len(m.Data); k++ {
				m.Data[k] /= norm
			}
		}
		m.IndPtr[r+1] = len(m.Data)
	}

	return m, vocab
}
