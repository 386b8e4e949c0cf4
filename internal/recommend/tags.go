// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Cinematch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package recommend

import (
	"strings"

	"github.com/cinematch/cinematch/internal/dataset"
)

// TagFields are the columns blended into a movie's tag document, in
// concatenation order.
var TagFields = []string{"overview", "genres", "keywords", "cast", "crew"}

// BuildTag flattens one movie row into its lowercased tag document: the
// overview's words, followed by genre names, keyword names, the first
// topCast credited actors, and the director. Missing or malformed cells
// contribute nothing; a row with no usable fields yields "".
func BuildTag(row dataset.Row, topCast int) string {
	parts := make([]string, 0, 16)

	parts = append(parts, strings.Fields(row.Get("overview"))...)
	parts = append(parts, ExtractNames(ParseStructured(row.Get("genres")), 0)...)
	parts = append(parts, ExtractNames(ParseStructured(row.Get("keywords")), 0)...)
	parts = append(parts, ExtractNames(ParseStructured(row.Get("cast")), topCast)...)
	parts = append(parts, ExtractDirector(ParseStructured(row.Get("crew")))...)

	return strings.ToLower(strings.TrimSpace(strings.Join(parts, " ")))
}
