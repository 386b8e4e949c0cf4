// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Cinematch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cinematch/cinematch/internal/cache"
	"github.com/cinematch/cinematch/internal/config"
	"github.com/cinematch/cinematch/internal/logging"
	"github.com/cinematch/cinematch/internal/metrics"
	"github.com/cinematch/cinematch/internal/models"
	"github.com/cinematch/cinematch/internal/recommend"
)

// Version is the service version reported by health endpoints.
// Overridden at build time via -ldflags.
var Version = "dev"

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	provider  *recommend.Provider
	cache     *cache.LRU
	cfg       *config.Config
	startTime time.Time
}

// NewHandler creates a handler backed by the given catalog provider.
// respCache may be nil when response caching is disabled.
func NewHandler(provider *recommend.Provider, respCache *cache.LRU, cfg *config.Config) *Handler {
	return &Handler{
		provider:  provider,
		cache:     respCache,
		cfg:       cfg,
		startTime: time.Now(),
	}
}

// Recommend handles POST /api/v1/recommend.
// Resolves the queried title against the catalog and returns the most
// similar movies, triggering the lazy catalog build on first use.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RecommendRequest
	if err := decodeJSONBody(r, &req); err != nil {
		metrics.RecordRecommend("invalid", time.Since(start))
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON", err)
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		metrics.RecordRecommend("invalid", time.Since(start))
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error:    apiErr,
		})
		return
	}

	if resp, ok := h.cachedResponse(&req); ok {
		metrics.RecordRecommend("ok", time.Since(start))
		respondJSON(w, http.StatusOK, &models.APIResponse{
			Status: "success",
			Data:   resp,
			Metadata: models.Metadata{
				Timestamp:   time.Now(),
				QueryTimeMS: time.Since(start).Milliseconds(),
				Cached:      true,
			},
		})
		return
	}

	catalog, err := h.provider.Get(r.Context())
	if err != nil {
		metrics.RecordRecommend("error", time.Since(start))
		respondError(w, http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE", "Recommendation catalog could not be loaded", err)
		return
	}

	result, err := catalog.Recommend(req.Title, req.TopN)
	if err != nil {
		h.respondRecommendError(w, req.Title, err, start)
		return
	}

	resp := &models.RecommendResponse{
		Query:           req.Title,
		MatchedTitle:    result.MatchedTitle,
		TopN:            len(result.Recommendations),
		Recommendations: make([]models.ScoredTitle, len(result.Recommendations)),
	}
	for i, rec := range result.Recommendations {
		resp.Recommendations[i] = models.ScoredTitle{Title: rec.Title, Score: rec.Score}
	}

	if h.cache != nil {
		h.cache.Add(cacheKey(&req), resp)
		metrics.CacheEntries.Set(float64(h.cache.Len()))
	}

	reqLogger := logging.Ctx(r.Context())
	reqLogger.Debug().
		Str("query", sanitizeLogValue(req.Title)).
		Str("matched", result.MatchedTitle).
		Int("results", len(resp.Recommendations)).
		Msg("recommendation served")

	metrics.RecordRecommend("ok", time.Since(start))
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   resp,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// respondRecommendError maps catalog query errors onto HTTP status codes.
func (h *Handler) respondRecommendError(w http.ResponseWriter, title string, err error, start time.Time) {
	switch {
	case errors.Is(err, recommend.ErrInvalidTitle):
		metrics.RecordRecommend("invalid", time.Since(start))
		respondError(w, http.StatusBadRequest, "INVALID_TITLE", "Title must not be blank", err)
	case errors.Is(err, recommend.ErrNotFound):
		metrics.RecordRecommend("not_found", time.Since(start))
		respondError(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("Movie %q was not found in the catalog", title), err)
	default:
		metrics.RecordRecommend("error", time.Since(start))
		respondError(w, http.StatusInternalServerError, "RECOMMENDATION_ERROR", "Failed to generate recommendations", err)
	}
}

// cachedResponse looks up a previous response for the same query.
func (h *Handler) cachedResponse(req *models.RecommendRequest) (*models.RecommendResponse, bool) {
	if h.cache == nil {
		return nil, false
	}

	v, ok := h.cache.Get(cacheKey(req))
	if !ok {
		metrics.CacheMisses.Inc()
		return nil, false
	}

	resp, ok := v.(*models.RecommendResponse)
	if !ok {
		return nil, false
	}
	metrics.CacheHits.Inc()
	return resp, true
}

// cacheKey normalizes a request into a cache key. Queries differing only in
// case or surrounding whitespace resolve identically, so they share an entry.
func cacheKey(req *models.RecommendRequest) string {
	return fmt.Sprintf("%s:%d", strings.ToLower(strings.TrimSpace(req.Title)), req.TopN)
}
