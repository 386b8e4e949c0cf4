// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Cinematch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

// Package config provides layered configuration loading for Cinematch
// using Koanf v2. Values are resolved in order of priority (highest wins):
//
//  1. Environment variables (SERVER_PORT, DATA_MOVIES_PATH, ...)
//  2. Config file (config.yaml, or CONFIG_PATH override)
//  3. Built-in defaults
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cache     CacheConfig     `koanf:"cache"`
	API       APIConfig       `koanf:"api"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// DataConfig identifies the two tabular catalog sources.
type DataConfig struct {
	// MoviesPath is the item-metadata CSV (id, title, overview, genres, keywords).
	MoviesPath string `koanf:"movies_path"`

	// CreditsPath is the cast/crew CSV (movie_id, cast, crew).
	CreditsPath string `koanf:"credits_path"`

	// SampleFallback materializes a small sample dataset when the sources
	// are absent, so the service can start without user-provided data.
	SampleFallback bool `koanf:"sample_fallback"`

	// EagerLoad builds the catalog at startup instead of on first request.
	EagerLoad bool `koanf:"eager_load"`
}

// RecommendConfig tunes the recommendation pipeline.
type RecommendConfig struct {
	// MaxFeatures bounds the vectorizer vocabulary size.
	MaxFeatures int `koanf:"max_features"`

	// TopCast is the number of credited cast names kept per item.
	TopCast int `koanf:"top_cast"`

	// DefaultTopN is the number of recommendations when the caller does not ask.
	DefaultTopN int `koanf:"default_top_n"`

	// MaxTopN caps the number of recommendations per request.
	MaxTopN int `koanf:"max_top_n"`
}

// CacheConfig controls the recommendation response cache.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	Size    int           `koanf:"size"`
	TTL     time.Duration `koanf:"ttl"`
}

// APIConfig holds HTTP API settings.
type APIConfig struct {
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// validLogLevels are accepted values for logging.level.
var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true,
	"warn": true, "warning": true, "error": true,
	"fatal": true, "panic": true, "disabled": true,
}

// Validate checks the configuration for internally inconsistent or
// out-of-range values. It is called by Load after all layers are applied.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}

	if c.Data.MoviesPath == "" {
		return fmt.Errorf("data.movies_path must not be empty")
	}
	if c.Data.CreditsPath == "" {
		return fmt.Errorf("data.credits_path must not be empty")
	}

	if c.Recommend.MaxFeatures < 1 {
		return fmt.Errorf("recommend.max_features must be at least 1, got %d", c.Recommend.MaxFeatures)
	}
	if c.Recommend.TopCast < 0 {
		return fmt.Errorf("recommend.top_cast must not be negative, got %d", c.Recommend.TopCast)
	}
	if c.Recommend.DefaultTopN < 1 {
		return fmt.Errorf("recommend.default_top_n must be at least 1, got %d", c.Recommend.DefaultTopN)
	}
	if c.Recommend.MaxTopN < c.Recommend.DefaultTopN {
		return fmt.Errorf("recommend.max_top_n (%d) must not be below recommend.default_top_n (%d)",
			c.Recommend.MaxTopN, c.Recommend.DefaultTopN)
	}

	if c.Cache.Enabled && c.Cache.Size < 1 {
		return fmt.Errorf("cache.size must be at least 1 when cache is enabled, got %d", c.Cache.Size)
	}

	if !c.API.RateLimitDisabled {
		if c.API.RateLimitRequests < 1 {
			return fmt.Errorf("api.rate_limit_requests must be at least 1, got %d", c.API.RateLimitRequests)
		}
		if c.API.RateLimitWindow <= 0 {
			return fmt.Errorf("api.rate_limit_window must be positive, got %s", c.API.RateLimitWindow)
		}
	}

	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	return nil
}
