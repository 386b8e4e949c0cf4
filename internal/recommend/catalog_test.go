// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Cinematch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package recommend

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cinematch/cinematch/internal/dataset"
)

func testParams() Params {
	return Params{MaxFeatures: 5000, TopCast: 3, DefaultTopN: 5, MaxTopN: 50}
}

// testTables is a four-movie corpus with known overlaps: Avatar and
// Interstellar share a genre, The Matrix and Inception share a genre, and
// Interstellar and Inception share a director.
func testTables() (*dataset.Table, *dataset.Table) {
	movies := &dataset.Table{
		Columns: []string{"id", "title", "overview", "genres", "keywords"},
		Rows: []dataset.Row{
			{"id": "1", "title": "Avatar", "overview": "A marine on an alien planet", "genres": "[{'id': 28, 'name': 'Action'}, {'id': 12, 'name': 'Adventure'}]", "keywords": "[{'id': 101, 'name': 'alien'}]"},
			{"id": "2", "title": "The Matrix", "overview": "A computer hacker learns reality is a simulation", "genres": "[{'id': 878, 'name': 'Science Fiction'}]", "keywords": "[{'id': 102, 'name': 'ai'}]"},
			{"id": "3", "title": "Interstellar", "overview": "Explorers travel through a wormhole", "genres": "[{'id': 12, 'name': 'Adventure'}, {'id': 18, 'name': 'Drama'}]", "keywords": "[{'id': 103, 'name': 'space'}]"},
			{"id": "4", "title": "Inception", "overview": "A thief who steals corporate secrets by dream-sharing", "genres": "[{'id': 878, 'name': 'Science Fiction'}]", "keywords": "[{'id': 104, 'name': 'dream'}]"},
		},
	}
	credits := &dataset.Table{
		Columns: []string{"movie_id", "cast", "crew"},
		Rows: []dataset.Row{
			{"movie_id": "1", "cast": "[{'name': 'Sam Worthington'}, {'name': 'Zoe Saldana'}]", "crew": "[{'job': 'Director', 'name': 'James Cameron'}]"},
			{"movie_id": "2", "cast": "[{'name': 'Keanu Reeves'}, {'name': 'Carrie-Anne Moss'}]", "crew": "[{'job': 'Director', 'name': 'Lana Wachowski'}]"},
			{"movie_id": "3", "cast": "[{'name': 'Matthew McConaughey'}, {'name': 'Anne Hathaway'}]", "crew": "[{'job': 'Director', 'name': 'Christopher Nolan'}]"},
			{"movie_id": "4", "cast": "[{'name': 'Leonardo DiCaprio'}, {'name': 'Joseph Gordon-Levitt'}]", "crew": "[{'job': 'Director', 'name': 'Christopher Nolan'}]"},
		},
	}
	return movies, credits
}

func TestBuildCatalog(t *testing.T) {
	movies, credits := testTables()
	c := Build(movies, credits, testParams())

	if c.Len() != 4 {
		t.Fatalf("Len = %d, want 4", c.Len())
	}
	if c.VocabularySize() == 0 {
		t.Fatal("vocabulary is empty")
	}
}

func TestBuildDeterministic(t *testing.T) {
	movies, credits := testTables()

	first := Build(movies, credits, testParams())
	second := Build(movies, credits, testParams())

	// Identical sources must produce bit-identical models: same vocabulary,
	// same similarity matrix, regardless of map iteration order during
	// vocabulary selection.
	if !reflect.DeepEqual(first.vocab, second.vocab) {
		t.Fatalf("vocabularies differ:\n%v\n%v", first.vocab, second.vocab)
	}
	if !reflect.DeepEqual(first.sim, second.sim) {
		t.Fatal("similarity matrices differ across rebuilds from identical sources")
	}
}

func TestRecommendSharedGenre(t *testing.T) {
	movies, credits := testTables()
	c := Build(movies, credits, testParams())

	res, err := c.Recommend("The Matrix", 3)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if res.MatchedTitle != "The Matrix" {
		t.Fatalf("MatchedTitle = %q", res.MatchedTitle)
	}
	if len(res.Recommendations) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(res.Recommendations))
	}

	// Inception shares the Science Fiction genre and must rank first with a
	// positive score; the query itself must not appear.
	if res.Recommendations[0].Title != "Inception" {
		t.Fatalf("top recommendation = %q, want Inception", res.Recommendations[0].Title)
	}
	if res.Recommendations[0].Score <= 0 {
		t.Fatalf("top score = %v, want > 0", res.Recommendations[0].Score)
	}
	for _, r := range res.Recommendations {
		if r.Title == "The Matrix" {
			t.Fatal("query movie appears in its own recommendations")
		}
	}
}

func TestRecommendSharedDirector(t *testing.T) {
	movies, credits := testTables()
	c := Build(movies, credits, testParams())

	res, err := c.Recommend("Interstellar", 1)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if res.Recommendations[0].Score <= 0 {
		t.Fatalf("top score = %v, want > 0", res.Recommendations[0].Score)
	}
}

func TestRecommendScoresDescend(t *testing.T) {
	movies, credits := testTables()
	c := Build(movies, credits, testParams())

	res, err := c.Recommend("Avatar", 3)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	for i := 1; i < len(res.Recommendations); i++ {
		if res.Recommendations[i].Score > res.Recommendations[i-1].Score {
			t.Fatalf("scores not descending: %v", res.Recommendations)
		}
	}
}

func TestRecommendSubstringQuery(t *testing.T) {
	movies, credits := testTables()
	c := Build(movies, credits, testParams())

	res, err := c.Recommend("  matrix ", 2)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if res.MatchedTitle != "The Matrix" {
		t.Fatalf("MatchedTitle = %q, want The Matrix", res.MatchedTitle)
	}
}

func TestRecommendErrors(t *testing.T) {
	movies, credits := testTables()
	c := Build(movies, credits, testParams())

	if _, err := c.Recommend("   ", 5); !errors.Is(err, ErrInvalidTitle) {
		t.Fatalf("blank title: err = %v, want ErrInvalidTitle", err)
	}
	if _, err := c.Recommend("No Such Movie", 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown title: err = %v, want ErrNotFound", err)
	}
}

func TestRecommendTopNDefaults(t *testing.T) {
	movies, credits := testTables()
	params := testParams()
	params.DefaultTopN = 2
	c := Build(movies, credits, params)

	res, err := c.Recommend("Avatar", 0)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(res.Recommendations) != 2 {
		t.Fatalf("default topN: got %d, want 2", len(res.Recommendations))
	}
}

func TestRecommendTopNClamped(t *testing.T) {
	movies, credits := testTables()
	params := testParams()
	params.MaxTopN = 1
	c := Build(movies, credits, params)

	res, err := c.Recommend("Avatar", 100)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(res.Recommendations) != 1 {
		t.Fatalf("clamped topN: got %d, want 1", len(res.Recommendations))
	}
}

func TestBuildDegenerateRows(t *testing.T) {
	movies := &dataset.Table{
		Columns: []string{"id", "title"},
		Rows: []dataset.Row{
			{"id": "1", "title": "Empty One"},
			{"id": "2", "title": "Empty Two"},
		},
	}
	credits := &dataset.Table{
		Columns: []string{"movie_id"},
		Rows: []dataset.Row{
			{"movie_id": "1"},
			{"movie_id": "2"},
		},
	}

	c := Build(movies, credits, testParams())

	res, err := c.Recommend("Empty One", 1)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	// No usable text anywhere: the neighbor surfaces with score 0.
	if res.Recommendations[0].Score != 0 {
		t.Fatalf("score = %v, want 0", res.Recommendations[0].Score)
	}
}
