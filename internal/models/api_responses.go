// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Cinematch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

// Package models defines the request and response shapes shared between the
// HTTP layer and its clients.
package models

import (
	"time"
)

// APIResponse is the standardized response wrapper for all HTTP endpoints.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"recommendations": [{"title": "The Matrix", "score": 0.41}]},
//	  "metadata": {"timestamp": "2026-08-28T12:00:00Z", "query_time_ms": 2}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "NOT_FOUND", "message": "movie \"Dune\" not found"},
//	  "metadata": {"timestamp": "2026-08-28T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError contains structured error details for failed requests.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RecommendRequest is the body of POST /api/v1/recommend.
// TopN of zero means "use the server default".
type RecommendRequest struct {
	Title string `json:"title" validate:"required"`
	TopN  int    `json:"top_n" validate:"min=0,max=100"`
}

// ScoredTitle is one ranked entry of a recommendation list.
type ScoredTitle struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// RecommendResponse carries a ranked recommendation list.
// MatchedTitle is the canonical title the query resolved to, which may differ
// from the query when substring matching was used.
type RecommendResponse struct {
	Query           string        `json:"query"`
	MatchedTitle    string        `json:"matched_title"`
	TopN            int           `json:"top_n"`
	Recommendations []ScoredTitle `json:"recommendations"`
}

// HealthStatus reports service and catalog health.
//
// Status values:
//   - "healthy": catalog is built and queries are served
//   - "starting": catalog has not been built yet (lazy load pending or running)
//   - "unhealthy": catalog construction failed; queries cannot be served
type HealthStatus struct {
	Status       string  `json:"status"`
	Version      string  `json:"version"`
	CatalogState string  `json:"catalog_state"`
	CatalogItems int     `json:"catalog_items"`
	Uptime       float64 `json:"uptime_seconds"`
}
