// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver registration
)

// readDuckDB reads the dataset through an in-memory DuckDB instance.
// Every column is read as VARCHAR so coercion follows the same rules as the
// CSV loader.
func readDuckDB(ctx context.Context, path string) (*table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &DataError{Path: path, Reason: "cannot open dataset", Err: err}
	}

	conn, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory duckdb: %w", err)
	}
	defer func() {
		conn.SetMaxIdleConns(0)
		_ = conn.Close()
	}()

	query := fmt.Sprintf(
		"SELECT * FROM read_csv(%s, header = true, all_varchar = true)",
		quoteLiteral(path),
	)
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, &DataError{Path: path, Reason: "duckdb read_csv failed", Err: err}
	}
	defer func() { _ = rows.Close() }()

	header, err := rows.Columns()
	if err != nil {
		return nil, &DataError{Path: path, Reason: "cannot read header", Err: err}
	}

	t := &table{header: header}
	values := make([]sql.NullString, len(header))
	dest := make([]any, len(header))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, &DataError{Path: path, Line: len(t.rows) + 2, Reason: "malformed row", Err: err}
		}
		record := make([]string, len(values))
		for i, v := range values {
			if v.Valid {
				record[i] = v.String
			}
		}
		t.rows = append(t.rows, record)
	}
	if err := rows.Err(); err != nil {
		return nil, &DataError{Path: path, Reason: "duckdb row iteration failed", Err: err}
	}
	return t, nil
}

// quoteLiteral renders s as a single-quoted SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
