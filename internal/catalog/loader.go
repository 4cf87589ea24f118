// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package catalog

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/playnext/internal/logging"
	"github.com/tomtom215/playnext/internal/metrics"
)

// Dataset column names.
const (
	ColumnName         = "Name"
	ColumnGenres       = "Genres"
	ColumnDevelopers   = "Developers"
	ColumnPublishers   = "Publishers"
	ColumnRating       = "Rating"
	ColumnRatingCount  = "Rating Count"
	ColumnPlatforms    = "Platforms"
	ColumnReleaseYears = "Release Years"
	ColumnGameModes    = "Game Modes"
	ColumnThemes       = "Themes"
)

// RequiredColumns must be present in every dataset. Developers, Publishers
// and Release Years are optional and fall back to placeholders.
var RequiredColumns = []string{
	ColumnName,
	ColumnGenres,
	ColumnRating,
	ColumnRatingCount,
	ColumnPlatforms,
	ColumnGameModes,
	ColumnThemes,
}

// LoaderKind selects the dataset reader.
type LoaderKind string

const (
	// LoaderCSV parses the file with encoding/csv.
	LoaderCSV LoaderKind = "csv"

	// LoaderDuckDB reads the file through DuckDB's read_csv.
	LoaderDuckDB LoaderKind = "duckdb"
)

// table is the raw, all-string form produced by every loader.
type table struct {
	header []string
	rows   [][]string
	// lines maps row index to the source line, when the reader knows it.
	lines []int
}

// Load reads the dataset at path and builds a Catalog.
// Any structural problem is returned as a *DataError.
func Load(ctx context.Context, path string, kind LoaderKind) (*Catalog, error) {
	start := time.Now()
	logger := logging.WithComponent("catalog")

	var (
		t   *table
		err error
	)
	switch kind {
	case LoaderCSV, "":
		kind = LoaderCSV
		t, err = readCSV(ctx, path)
	case LoaderDuckDB:
		t, err = readDuckDB(ctx, path)
	default:
		return nil, fmt.Errorf("unknown catalog loader %q", kind)
	}
	if err != nil {
		metrics.RecordCatalogLoad(string(kind), time.Since(start), 0, err)
		return nil, err
	}

	games, err := t.games(path)
	if err != nil {
		metrics.RecordCatalogLoad(string(kind), time.Since(start), 0, err)
		return nil, err
	}

	c := New(games, path)
	metrics.RecordCatalogLoad(string(kind), time.Since(start), c.Len(), nil)

	logger.Info().
		Str("path", path).
		Str("loader", string(kind)).
		Int("games", c.Len()).
		Uint64("generation", c.Generation()).
		Dur("duration", time.Since(start)).
		Msg("Catalog loaded")

	return c, nil
}

// games converts raw rows into typed games, applying placeholder and numeric
// coercion rules.
func (t *table) games(path string) ([]Game, error) {
	cols := make(map[string]int, len(t.header))
	for i, h := range t.header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, required := range RequiredColumns {
		if _, ok := cols[required]; !ok {
			return nil, &DataError{Path: path, Column: required, Reason: "missing required column"}
		}
	}

	games := make([]Game, 0, len(t.rows))
	cells := make(map[string]string, len(cols))
	for i, row := range t.rows {
		if len(row) != len(t.header) {
			return nil, &DataError{
				Path:   path,
				Line:   t.line(i),
				Reason: fmt.Sprintf("expected %d fields, got %d", len(t.header), len(row)),
			}
		}

		clear(cells)
		for name, idx := range cols {
			cells[name] = row[idx]
		}

		name := strings.TrimSpace(cells[ColumnName])
		if name == "" {
			return nil, &DataError{Path: path, Line: t.line(i), Column: ColumnName, Reason: "empty game name"}
		}

		games = append(games, NewGame(
			name,
			parseRating(cells[ColumnRating]),
			parseRatingCount(cells[ColumnRatingCount]),
			cells,
		))
	}
	return games, nil
}

func (t *table) line(i int) int {
	if i < len(t.lines) {
		return t.lines[i]
	}
	// header occupies line 1
	return i + 2
}

// parseRating coerces a rating cell; invalid values become 0.
func parseRating(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parseRatingCount coerces a rating-count cell, truncating fractional input.
// Invalid or negative values become 0.
func parseRatingCount(s string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > math.MaxInt32 {
		return 0
	}
	return int(v)
}
