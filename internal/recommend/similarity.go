// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Cinematch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package recommend

import (
	"math"
	"sort"
)

// Match pairs a catalog row index with its similarity score to a query row.
type Match struct {
	Index int
	Score float64
}

// CosineSimilarity computes the pairwise cosine similarity matrix of the
// given row vectors. Rows with zero norm score 0 against everything,
// including themselves.
func CosineSimilarity(vectors [][]float64) [][]float64 {
	n := len(vectors)
	norms := make([]float64, n)
	for i, vec := range vectors {
		var sum float64
		for _, x := range vec {
			sum += x * x
		}
		norms[i] = math.Sqrt(sum)
	}

	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s := 0.0
			if norms[i] > 0 && norms[j] > 0 {
				var dot float64
				for k, x := range vectors[i] {
					dot += x * vectors[j][k]
				}
				s = dot / (norms[i] * norms[j])
			}
			sim[i][j] = s
			sim[j][i] = s
		}
	}
	return sim
}

// TopMatches returns the topN most similar rows to the row at index self,
// ordered by descending score with row order breaking ties. The query row
// itself is excluded by index, so an identical-tag duplicate of the query
// can still appear in the results.
func TopMatches(scores []float64, self, topN int) []Match {
	if topN <= 0 {
		return []Match{}
	}

	matches := make([]Match, 0, len(scores))
	for i, score := range scores {
		if i == self {
			continue
		}
		matches = append(matches, Match{Index: i, Score: score})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})

	if len(matches) > topN {
		matches = matches[:topN]
	}
	return matches
}
