// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Cinematch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/cinematch/cinematch/internal/logging"
)

// SourceLoadError indicates a catalog source could not be read at
// construction time: missing file, unreadable format, or a query failure.
// Unlike per-cell parse failures, it is fatal and propagates to the caller
// of catalog construction.
type SourceLoadError struct {
	Path string
	Err  error
}

func (e *SourceLoadError) Error() string {
	return fmt.Sprintf("load source %s: %v", e.Path, e.Err)
}

func (e *SourceLoadError) Unwrap() error {
	return e.Err
}

// Load reads a CSV source through DuckDB's read_csv into a Table. Every cell
// is read as text; header names become column names. NULL cells read as "".
func Load(ctx context.Context, path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &SourceLoadError{Path: path, Err: err}
	}

	conn, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, &SourceLoadError{Path: path, Err: fmt.Errorf("open duckdb: %w", err)}
	}
	defer closeQuietly(conn)

	// read_csv with all_varchar defers typing to the pipeline; header
	// inference keeps the expected-columns contract with the sources.
	query := fmt.Sprintf("SELECT * FROM read_csv(%s, header = true, all_varchar = true)", quoteLiteral(path))

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, &SourceLoadError{Path: path, Err: err}
	}
	defer closeQuietly(rows)

	columns, err := rows.Columns()
	if err != nil {
		return nil, &SourceLoadError{Path: path, Err: err}
	}

	table := &Table{Columns: normalizeColumns(columns)}

	values := make([]sql.NullString, len(columns))
	scanArgs := make([]interface{}, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, &SourceLoadError{Path: path, Err: err}
		}

		row := make(Row, len(columns))
		for i, col := range table.Columns {
			if values[i].Valid {
				row[col] = values[i].String
			} else {
				row[col] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, &SourceLoadError{Path: path, Err: err}
	}

	logging.Debug().
		Str("path", path).
		Int("rows", len(table.Rows)).
		Int("columns", len(table.Columns)).
		Msg("source loaded")

	return table, nil
}

// normalizeColumns trims surrounding whitespace from header names. Some CSV
// exports pad headers after the delimiter.
func normalizeColumns(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

// quoteLiteral renders a string as a single-quoted SQL literal.
// read_csv takes the path as a literal, not a bind parameter.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// closeQuietly closes a resource, logging rather than propagating errors.
func closeQuietly(c interface{ Close() error }) {
	if err := c.Close(); err != nil {
		logging.Warn().Err(err).Msg("close failed")
	}
}
