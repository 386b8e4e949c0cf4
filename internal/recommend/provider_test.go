// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Cinematch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package recommend

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestProviderBuildsOnce(t *testing.T) {
	movies, credits := testTables()
	var builds atomic.Int32

	p := NewProvider(func(ctx context.Context) (*Catalog, error) {
		builds.Add(1)
		return Build(movies, credits, testParams()), nil
	})

	if p.State() != StateUnloaded {
		t.Fatalf("initial state = %v, want unloaded", p.State())
	}

	const callers = 16
	var wg sync.WaitGroup
	catalogs := make([]*Catalog, callers)
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			c, err := p.Get(context.Background())
			if err != nil {
				t.Errorf("Get: %v", err)
				return
			}
			catalogs[i] = c
		}(i)
	}
	wg.Wait()

	if got := builds.Load(); got != 1 {
		t.Fatalf("build ran %d times, want 1", got)
	}
	for i := 1; i < callers; i++ {
		if catalogs[i] != catalogs[0] {
			t.Fatal("callers received different catalog instances")
		}
	}
	if p.State() != StateReady {
		t.Fatalf("state = %v, want ready", p.State())
	}
}

func TestProviderFailureIsTerminal(t *testing.T) {
	boom := errors.New("sources unreadable")
	var builds atomic.Int32

	p := NewProvider(func(ctx context.Context) (*Catalog, error) {
		builds.Add(1)
		return nil, boom
	})

	for i := 0; i < 3; i++ {
		if _, err := p.Get(context.Background()); !errors.Is(err, boom) {
			t.Fatalf("Get #%d: err = %v, want wrapped %v", i, err, boom)
		}
	}

	if got := builds.Load(); got != 1 {
		t.Fatalf("build ran %d times after failure, want 1", got)
	}
	if p.State() != StateLoadFailed {
		t.Fatalf("state = %v, want load_failed", p.State())
	}
	if p.Catalog() != nil {
		t.Fatal("Catalog() non-nil after failed build")
	}
}

func TestProviderWaiterCancellation(t *testing.T) {
	movies, credits := testTables()
	release := make(chan struct{})

	p := NewProvider(func(ctx context.Context) (*Catalog, error) {
		<-release
		return Build(movies, credits, testParams()), nil
	})

	go p.Get(context.Background()) //nolint:errcheck // outcome checked below

	// Wait for the build to be in flight.
	deadline := time.Now().Add(2 * time.Second)
	for p.State() != StateLoading {
		if time.Now().After(deadline) {
			t.Fatal("build never entered loading state")
		}
		time.Sleep(time.Millisecond)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Get(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled waiter: err = %v, want context.Canceled", err)
	}

	close(release)
	if _, err := p.Get(context.Background()); err != nil {
		t.Fatalf("Get after release: %v", err)
	}
	if p.State() != StateReady {
		t.Fatalf("state = %v, want ready", p.State())
	}
}

func TestProviderBuildSurvivesInitiatorCancellation(t *testing.T) {
	movies, credits := testTables()
	var builds atomic.Int32

	p := NewProvider(func(ctx context.Context) (*Catalog, error) {
		builds.Add(1)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return Build(movies, credits, testParams()), nil
	})

	// A client that disconnected before its request triggered the build must
	// not poison the provider for everyone else.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Get(ctx); err != nil {
		t.Fatalf("Get with cancelled initiator: %v", err)
	}

	if p.State() != StateReady {
		t.Fatalf("state = %v, want ready", p.State())
	}
	if _, err := p.Get(context.Background()); err != nil {
		t.Fatalf("Get after cancelled initiator: %v", err)
	}
	if got := builds.Load(); got != 1 {
		t.Fatalf("build ran %d times, want 1", got)
	}
}

func TestProviderStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateUnloaded, "unloaded"},
		{StateLoading, "loading"},
		{StateReady, "ready"},
		{StateLoadFailed, "load_failed"},
		{State(99), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.state.String(); got != tc.want {
			t.Errorf("State(%d).String() = %q, want %q", tc.state, got, tc.want)
		}
	}
}
