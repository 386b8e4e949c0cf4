// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Cinematch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package recommend

import "errors"

// Query errors surfaced to callers of Catalog.Recommend. The HTTP layer maps
// these to client-correctable status codes; everything else is internal.
var (
	// ErrNotFound indicates the query title matched no item, neither exactly
	// nor as a substring. Wrap it with the queried title for diagnostics:
	//
	//	fmt.Errorf("movie %q: %w", title, ErrNotFound)
	ErrNotFound = errors.New("not found in the catalog")

	// ErrInvalidTitle indicates the query title was empty or blank after trimming.
	ErrInvalidTitle = errors.New("title must not be blank")
)
