// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Cinematch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

// Package recommend implements the content-based recommendation pipeline:
// field parsing, tag building, count vectorization, cosine similarity, and
// title lookup.
//
// # Pipeline
//
// At load time the pipeline runs once, synchronously:
//
//	merged sources -> field parser -> tag builder -> vectorizer -> similarity
//
// Per-cell parse failures are swallowed and degrade to empty token lists so
// one malformed row never aborts the whole load. Source-level failures
// (missing file, unreadable format) propagate from catalog construction.
//
// # Concurrency
//
// A built Catalog is immutable and safe for unlimited concurrent reads.
// The Provider guards lazy construction with double-checked locking so at
// most one build ever executes, no matter how many callers race the first
// request.
package recommend
