// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Cinematch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package recommend

import (
	"fmt"
	"strings"
	"time"

	"github.com/cinematch/cinematch/internal/dataset"
	"github.com/cinematch/cinematch/internal/logging"
)

// Params tunes catalog construction and query defaults.
type Params struct {
	// MaxFeatures caps the bag-of-words vocabulary.
	MaxFeatures int
	// TopCast is how many leading cast credits feed each tag.
	TopCast int
	// DefaultTopN is the result count when a query does not ask for one.
	DefaultTopN int
	// MaxTopN clamps the result count a query may ask for.
	MaxTopN int
}

// Recommendation is one scored result of a catalog query.
type Recommendation struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Result is the full answer to a recommendation query, including the
// canonical title the free-text query resolved to.
type Result struct {
	MatchedTitle    string
	Recommendations []Recommendation
}

// Catalog is the immutable, fully materialized recommendation model: merged
// movie rows reduced to tag documents, vectorized, with all pairwise
// similarities precomputed. Once built it is read-only and safe for
// concurrent queries.
type Catalog struct {
	params Params
	index  *TitleIndex
	sim    [][]float64
	vocab  []string
}

// Build merges the movie and credit tables and materializes the catalog.
// Construction is total: malformed cells degrade to empty contributions, so
// only source loading (the caller's concern) can fail.
func Build(movies, credits *dataset.Table, params Params) *Catalog {
	start := time.Now()

	merged := dataset.Merge(movies, credits)

	titles := make([]string, len(merged.Rows))
	docs := make([]string, len(merged.Rows))
	for i, row := range merged.Rows {
		titles[i] = row.Get("title")
		docs[i] = BuildTag(row, params.TopCast)
	}

	vectorizer := &CountVectorizer{MaxFeatures: params.MaxFeatures}
	vectors, vocab := vectorizer.FitTransform(docs)
	sim := CosineSimilarity(vectors)

	logging.Info().
		Int("movies", len(titles)).
		Int("vocabulary", len(vocab)).
		Dur("elapsed", time.Since(start)).
		Msg("catalog built")

	return &Catalog{
		params: params,
		index:  NewTitleIndex(titles),
		sim:    sim,
		vocab:  vocab,
	}
}

// Len reports the number of movies in the catalog.
func (c *Catalog) Len() int {
	return len(c.sim)
}

// VocabularySize reports the width of the fitted vocabulary.
func (c *Catalog) VocabularySize() int {
	return len(c.vocab)
}

// Recommend resolves title case-insensitively (exact, then substring) and
// returns up to topN most similar movies. A non-positive topN falls back to
// the configured default; requests above the configured maximum are clamped.
// A blank title yields ErrInvalidTitle; an unmatched one wraps ErrNotFound.
func (c *Catalog) Recommend(title string, topN int) (*Result, error) {
	query := trimQuery(title)
	if query == "" {
		return nil, ErrInvalidTitle
	}

	if topN <= 0 {
		topN = c.params.DefaultTopN
	}
	if c.params.MaxTopN > 0 && topN > c.params.MaxTopN {
		topN = c.params.MaxTopN
	}

	row := c.index.Lookup(query)
	if row < 0 {
		return nil, fmt.Errorf("movie %q: %w", query, ErrNotFound)
	}

	matches := TopMatches(c.sim[row], row, topN)
	recs := make([]Recommendation, len(matches))
	for i, m := range matches {
		recs[i] = Recommendation{Title: c.index.Title(m.Index), Score: m.Score}
	}

	return &Result{
		MatchedTitle:    c.index.Title(row),
		Recommendations: recs,
	}, nil
}

func trimQuery(s string) string {
	return strings.TrimSpace(s)
}
