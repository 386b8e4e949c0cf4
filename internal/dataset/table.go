// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Cinematch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

// Package dataset loads the raw tabular catalog sources and merges them into
// one unified record set for the recommendation pipeline.
package dataset

// Row is one record of a tabular source. Absent cells read as "".
type Row map[string]string

// Table is an ordered tabular source: a column list plus rows.
// Cell values are uninterpreted strings; typing is the pipeline's concern.
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Get returns the cell value for the named column, or "" when absent.
func (r Row) Get(name string) string {
	return r[name]
}

// clone returns a shallow copy of the row.
func (r Row) clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// WorkingColumns are the columns the pipeline reads after merging. Any of
// these still missing after a merge are created empty so downstream parsing
// always receives a definable (possibly empty) input.
var WorkingColumns = []string{"title", "overview", "genres", "keywords", "cast", "crew"}

// Merge joins the item-metadata table with the cast/crew table into one
// unified table. Join strategies, in order:
//
//  1. Inner join on movies.id == credits.movie_id.
//  2. Inner join on a shared "title" column.
//  3. Column-union copy: movies rows plus any credits-only columns filled
//     positionally (best-effort degradation, not a relational join).
//
// Duplicate join keys have deterministic precedence: the first occurrence in
// each source wins. After merging, every working column exists and every row
// has a value (possibly "") for every column.
func Merge(movies, credits *Table) *Table {
	var merged *Table

	switch {
	case movies.HasColumn("id") && credits.HasColumn("movie_id"):
		merged = joinOn(movies, credits, "id", "movie_id")
	case movies.HasColumn("title") && credits.HasColumn("title"):
		merged = joinOn(movies, credits, "title", "title")
	default:
		merged = columnUnion(movies, credits)
	}

	ensureColumns(merged, WorkingColumns...)
	return merged
}

// joinOn inner-joins left and right on the given key columns. Left rows keep
// their values for shared columns; right contributes only columns the left
// table lacks. The first right-side row per key wins.
func joinOn(left, right *Table, leftKey, rightKey string) *Table {
	index := make(map[string]Row, len(right.Rows))
	for _, row := range right.Rows {
		key := row.Get(rightKey)
		if key == "" {
			continue
		}
		if _, seen := index[key]; !seen {
			index[key] = row
		}
	}

	extra := extraColumns(left, right)

	out := &Table{Columns: append(append([]string{}, left.Columns...), extra...)}
	for _, row := range left.Rows {
		match, ok := index[row.Get(leftKey)]
		if !ok {
			continue
		}
		joined := row.clone()
		for _, col := range extra {
			joined[col] = match.Get(col)
		}
		out.Rows = append(out.Rows, joined)
	}

	return out
}

// columnUnion copies the left table and appends right-only columns, filling
// them positionally from the right table where rows exist.
func columnUnion(left, right *Table) *Table {
	extra := extraColumns(left, right)

	out := &Table{Columns: append(append([]string{}, left.Columns...), extra...)}
	for i, row := range left.Rows {
		joined := row.clone()
		for _, col := range extra {
			if i < len(right.Rows) {
				joined[col] = right.Rows[i].Get(col)
			} else {
				joined[col] = ""
			}
		}
		out.Rows = append(out.Rows, joined)
	}

	return out
}

// extraColumns lists right's columns that left does not declare, in right's order.
func extraColumns(left, right *Table) []string {
	var extra []string
	for _, col := range right.Columns {
		if !left.HasColumn(col) {
			extra = append(extra, col)
		}
	}
	return extra
}

// ensureColumns adds any missing columns and fills absent cells with "".
func ensureColumns(t *Table, cols ...string) {
	for _, col := range cols {
		if !t.HasColumn(col) {
			t.Columns = append(t.Columns, col)
		}
	}
	for _, row := range t.Rows {
		for _, col := range t.Columns {
			if _, ok := row[col]; !ok {
				row[col] = ""
			}
		}
	}
}
