// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Cinematch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package recommend

import "testing"

func TestTitleIndexLookup(t *testing.T) {
	ix := NewTitleIndex([]string{
		"Avatar",
		"The Matrix",
		"The Matrix Reloaded",
		"Interstellar",
	})

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"exact", "Avatar", 0},
		{"exact case-insensitive", "the matrix", 1},
		{"exact beats substring", "The Matrix", 1},
		{"substring", "Reloaded", 2},
		{"substring case-insensitive", "INTER", 3},
		{"substring first row wins", "Matrix", 1},
		{"no match", "Alien", -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ix.Lookup(tc.query); got != tc.want {
				t.Fatalf("Lookup(%q) = %d, want %d", tc.query, got, tc.want)
			}
		})
	}
}

func TestTitleIndexExactPrecedence(t *testing.T) {
	// A later exact match beats an earlier substring match.
	ix := NewTitleIndex([]string{"The Matrix Reloaded", "The Matrix"})
	if got := ix.Lookup("the matrix"); got != 1 {
		t.Fatalf("Lookup = %d, want 1", got)
	}
}

func TestTitleIndexTitle(t *testing.T) {
	ix := NewTitleIndex([]string{"Avatar"})
	if got := ix.Title(0); got != "Avatar" {
		t.Fatalf("Title(0) = %q", got)
	}
}
