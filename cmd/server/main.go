// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Cinematch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

// Command server runs the Cinematch HTTP service: it loads the movie and
// credit sources, builds the content-similarity catalog (eagerly or on first
// request) and serves the recommendation API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cinematch/cinematch/internal/api"
	"github.com/cinematch/cinematch/internal/cache"
	"github.com/cinematch/cinematch/internal/config"
	"github.com/cinematch/cinematch/internal/dataset"
	"github.com/cinematch/cinematch/internal/logging"
	"github.com/cinematch/cinematch/internal/metrics"
	"github.com/cinematch/cinematch/internal/recommend"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", api.Version).
		Str("movies", cfg.Data.MoviesPath).
		Str("credits", cfg.Data.CreditsPath).
		Msg("cinematch starting")

	if cfg.Data.SampleFallback {
		if err := dataset.EnsureSampleData(cfg.Data.MoviesPath, cfg.Data.CreditsPath); err != nil {
			logging.Fatal().Err(err).Msg("failed to materialize sample dataset")
		}
	}

	provider := recommend.NewProvider(buildCatalog(cfg))

	if cfg.Data.EagerLoad {
		if _, err := provider.Get(context.Background()); err != nil {
			logging.Fatal().Err(err).Msg("catalog build failed at startup")
		}
	}

	var respCache *cache.LRU
	if cfg.Cache.Enabled {
		respCache = cache.NewLRU(cfg.Cache.Size, cfg.Cache.TTL)
	}

	handler := api.NewHandler(provider, respCache, cfg)
	router := api.NewRouter(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logging.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("http server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
	logging.Info().Msg("cinematch stopped")
}

// buildCatalog returns the provider build function: load both sources, then
// materialize the similarity catalog, recording build metrics either way.
func buildCatalog(cfg *config.Config) recommend.BuildFunc {
	return func(ctx context.Context) (*recommend.Catalog, error) {
		start := time.Now()

		movies, err := dataset.Load(ctx, cfg.Data.MoviesPath)
		if err != nil {
			metrics.RecordCatalogBuild(time.Since(start), 0, 0, err)
			return nil, err
		}
		credits, err := dataset.Load(ctx, cfg.Data.CreditsPath)
		if err != nil {
			metrics.RecordCatalogBuild(time.Since(start), 0, 0, err)
			return nil, err
		}

		catalog := recommend.Build(movies, credits, recommend.Params{
			MaxFeatures: cfg.Recommend.MaxFeatures,
			TopCast:     cfg.Recommend.TopCast,
			DefaultTopN: cfg.Recommend.DefaultTopN,
			MaxTopN:     cfg.Recommend.MaxTopN,
		})

		metrics.RecordCatalogBuild(time.Since(start), catalog.Len(), catalog.VocabularySize(), nil)
		return catalog, nil
	}
}
