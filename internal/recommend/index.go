// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Cinematch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package recommend

import "strings"

// TitleIndex resolves free-text queries against catalog titles,
// case-insensitively: exact match first, then substring containment. When
// several rows qualify at the same tier, the earliest row wins.
type TitleIndex struct {
	titles  []string
	lowered []string
}

// NewTitleIndex builds an index over titles in row order.
func NewTitleIndex(titles []string) *TitleIndex {
	lowered := make([]string, len(titles))
	for i, t := range titles {
		lowered[i] = strings.ToLower(t)
	}
	return &TitleIndex{titles: titles, lowered: lowered}
}

// Lookup resolves query to a row index, or -1 when nothing matches. The
// query is matched as-is apart from case folding; callers trim it first.
func (ix *TitleIndex) Lookup(query string) int {
	q := strings.ToLower(query)

	for i, t := range ix.lowered {
		if t == q {
			return i
		}
	}
	for i, t := range ix.lowered {
		if strings.Contains(t, q) {
			return i
		}
	}
	return -1
}

// Title returns the canonical title at the given row index.
func (ix *TitleIndex) Title(i int) string {
	return ix.titles[i]
}
