// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Cinematch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package recommend

import (
	"context"
	"fmt"
	"sync"

	"github.com/cinematch/cinematch/internal/logging"
)

// State is the lifecycle phase of a Provider's catalog.
type State int

const (
	// StateUnloaded means no build has been attempted yet.
	StateUnloaded State = iota
	// StateLoading means a build is in flight; other callers wait on it.
	StateLoading
	// StateReady means the catalog is built and serving queries.
	StateReady
	// StateLoadFailed means the build failed. The state is terminal:
	// every later Get returns the stored error without rebuilding.
	StateLoadFailed
)

// String renders the state for health reporting.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateLoadFailed:
		return "load_failed"
	default:
		return "unknown"
	}
}

// BuildFunc produces a catalog from the configured sources.
type BuildFunc func(ctx context.Context) (*Catalog, error)

// Provider lazily builds the catalog at most once and hands out the shared
// instance. The first Get triggers the build; concurrent callers wait for it
// to settle. A failed build is not retried.
type Provider struct {
	build BuildFunc

	mu      sync.Mutex
	state   State
	done    chan struct{}
	catalog *Catalog
	err     error
}

// NewProvider wraps build in an unloaded provider.
func NewProvider(build BuildFunc) *Provider {
	return &Provider{build: build}
}

// Get returns the shared catalog, building it on first use. Callers that
// arrive mid-build wait for that build rather than starting another; ctx
// cancellation releases a waiter without affecting the build itself, and the
// build runs detached from the initiating caller's cancellation too. After a
// failed build, Get keeps returning the original build error.
func (p *Provider) Get(ctx context.Context) (*Catalog, error) {
	for {
		p.mu.Lock()
		switch p.state {
		case StateReady:
			c := p.catalog
			p.mu.Unlock()
			return c, nil

		case StateLoadFailed:
			err := p.err
			p.mu.Unlock()
			return nil, err

		case StateLoading:
			done := p.done
			p.mu.Unlock()
			select {
			case <-done:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			// Settled; loop to read the outcome.

		default:
			p.state = StateLoading
			p.done = make(chan struct{})
			p.mu.Unlock()

			logging.Info().Msg("building recommendation catalog")
			// The build outcome is shared process-wide state, so it must not
			// inherit the initiating request's cancellation: a client that
			// disconnects mid-build would otherwise poison the provider into
			// LoadFailed with perfectly good sources.
			catalog, err := p.build(context.WithoutCancel(ctx))

			p.mu.Lock()
			if err != nil {
				p.state = StateLoadFailed
				p.err = fmt.Errorf("catalog build failed: %w", err)
				logging.Error().Err(err).Msg("catalog build failed")
			} else {
				p.state = StateReady
				p.catalog = catalog
			}
			close(p.done)
			c, buildErr := p.catalog, p.err
			p.mu.Unlock()

			if buildErr != nil {
				return nil, buildErr
			}
			return c, nil
		}
	}
}

// State reports the current lifecycle phase without triggering a build.
func (p *Provider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Catalog returns the built catalog, or nil when not Ready. Health endpoints
// use it to report item counts without forcing a build.
func (p *Provider) Catalog() *Catalog {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.catalog
}
