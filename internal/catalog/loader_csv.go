// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"
)

// readCSV parses the dataset with encoding/csv. Ragged rows are rejected.
func readCSV(ctx context.Context, path string) (*table, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, &DataError{Path: path, Reason: "cannot open dataset", Err: err}
	}
	defer func() { _ = f.Close() }()

	return parseCSV(ctx, path, f)
}

func parseCSV(ctx context.Context, path string, r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &DataError{Path: path, Reason: "dataset is empty"}
		}
		return nil, &DataError{Path: path, Line: 1, Reason: "cannot read header", Err: err}
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := &table{header: header}
	for {
		if len(t.rows)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			line := 0
			if errors.As(err, &perr) {
				line = perr.Line
			}
			return nil, &DataError{Path: path, Line: line, Reason: "malformed row", Err: err}
		}

		line, _ := reader.FieldPos(0)
		t.rows = append(t.rows, record)
		t.lines = append(t.lines, line)
	}
	return t, nil
}
