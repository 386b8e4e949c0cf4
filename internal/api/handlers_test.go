// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Cinematch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/cinematch/cinematch/internal/cache"
	"github.com/cinematch/cinematch/internal/config"
	"github.com/cinematch/cinematch/internal/dataset"
	"github.com/cinematch/cinematch/internal/models"
	"github.com/cinematch/cinematch/internal/recommend"
)

func testConfig() *config.Config {
	return &config.Config{
		Recommend: config.RecommendConfig{
			MaxFeatures: 5000,
			TopCast:     3,
			DefaultTopN: 5,
			MaxTopN:     50,
		},
		API: config.APIConfig{
			RateLimitRequests: 1000,
			RateLimitWindow:   time.Minute,
			CORSOrigins:       []string{"*"},
		},
		Cache: config.CacheConfig{Enabled: true, Size: 100, TTL: time.Minute},
	}
}

func testCatalogTables() (*dataset.Table, *dataset.Table) {
	movies := &dataset.Table{
		Columns: []string{"id", "title", "overview", "genres", "keywords"},
		Rows: []dataset.Row{
			{"id": "1", "title": "Avatar", "overview": "A marine on an alien planet", "genres": "[{'id': 28, 'name': 'Action'}]", "keywords": "[{'id': 101, 'name': 'alien'}]"},
			{"id": "2", "title": "The Matrix", "overview": "A computer hacker learns reality is a simulation", "genres": "[{'id': 878, 'name': 'Science Fiction'}]", "keywords": "[{'id': 102, 'name': 'ai'}]"},
			{"id": "3", "title": "Inception", "overview": "A thief who steals corporate secrets by dream-sharing", "genres": "[{'id': 878, 'name': 'Science Fiction'}]", "keywords": "[{'id': 104, 'name': 'dream'}]"},
		},
	}
	credits := &dataset.Table{
		Columns: []string{"movie_id", "cast", "crew"},
		Rows: []dataset.Row{
			{"movie_id": "1", "cast": "[{'name': 'Sam Worthington'}]", "crew": "[{'job': 'Director', 'name': 'James Cameron'}]"},
			{"movie_id": "2", "cast": "[{'name': 'Keanu Reeves'}]", "crew": "[{'job': 'Director', 'name': 'Lana Wachowski'}]"},
			{"movie_id": "3", "cast": "[{'name': 'Leonardo DiCaprio'}]", "crew": "[{'job': 'Director', 'name': 'Christopher Nolan'}]"},
		},
	}
	return movies, credits
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := testConfig()
	movies, credits := testCatalogTables()

	provider := recommend.NewProvider(func(ctx context.Context) (*recommend.Catalog, error) {
		return recommend.Build(movies, credits, recommend.Params{
			MaxFeatures: cfg.Recommend.MaxFeatures,
			TopCast:     cfg.Recommend.TopCast,
			DefaultTopN: cfg.Recommend.DefaultTopN,
			MaxTopN:     cfg.Recommend.MaxTopN,
		}), nil
	})

	handler := NewHandler(provider, cache.NewLRU(cfg.Cache.Size, cfg.Cache.TTL), cfg)
	return NewRouter(handler).Setup()
}

func postRecommend(t *testing.T, srv http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) *models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, rec.Body.String())
	}
	return &resp
}

func TestRecommendEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := postRecommend(t, srv, `{"title": "The Matrix", "top_n": 2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	if env.Status != "success" {
		t.Fatalf("envelope status = %q", env.Status)
	}

	raw, _ := json.Marshal(env.Data)
	var data models.RecommendResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}

	if data.MatchedTitle != "The Matrix" {
		t.Errorf("matched_title = %q", data.MatchedTitle)
	}
	if len(data.Recommendations) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(data.Recommendations))
	}
	if data.Recommendations[0].Title != "Inception" {
		t.Errorf("top recommendation = %q, want Inception", data.Recommendations[0].Title)
	}
	for _, r := range data.Recommendations {
		if r.Title == "The Matrix" {
			t.Error("query movie in its own recommendations")
		}
	}
}

func TestRecommendEndpointCaches(t *testing.T) {
	srv := newTestServer(t)

	first := decodeEnvelope(t, postRecommend(t, srv, `{"title": "avatar", "top_n": 1}`))
	if first.Metadata.Cached {
		t.Fatal("first response marked cached")
	}

	second := decodeEnvelope(t, postRecommend(t, srv, `{"title": "avatar", "top_n": 1}`))
	if !second.Metadata.Cached {
		t.Fatal("second identical response not served from cache")
	}
}

func TestRecommendEndpointNotFound(t *testing.T) {
	srv := newTestServer(t)

	rec := postRecommend(t, srv, `{"title": "No Such Movie"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Fatalf("error = %+v, want NOT_FOUND", env.Error)
	}
}

func TestRecommendEndpointValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"missing title", `{"top_n": 5}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"blank title", `{"title": "   "}`, http.StatusBadRequest, "INVALID_TITLE"},
		{"top_n too large", `{"title": "Avatar", "top_n": 500}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"malformed json", `{"title":`, http.StatusBadRequest, "INVALID_BODY"},
		{"unknown field", `{"title": "Avatar", "bogus": 1}`, http.StatusBadRequest, "INVALID_BODY"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := postRecommend(t, srv, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tc.status, rec.Body.String())
			}
			env := decodeEnvelope(t, rec)
			if env.Error == nil || env.Error.Code != tc.code {
				t.Fatalf("error = %+v, want code %s", env.Error, tc.code)
			}
		})
	}
}

func TestRecommendEndpointBuildFailure(t *testing.T) {
	cfg := testConfig()
	provider := recommend.NewProvider(func(ctx context.Context) (*recommend.Catalog, error) {
		return nil, errors.New("sources unreadable")
	})
	handler := NewHandler(provider, nil, cfg)
	srv := NewRouter(handler).Setup()

	rec := postRecommend(t, srv, `{"title": "Avatar"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != "CATALOG_UNAVAILABLE" {
		t.Fatalf("error = %+v, want CATALOG_UNAVAILABLE", env.Error)
	}
}

func TestRecommendEndpointRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)

	rec := postRecommend(t, srv, `{"title": "Avatar"}`)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing from response")
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("ETag header missing from response")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRootBanner(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "success" {
		t.Fatalf("envelope status = %q", env.Status)
	}
}
