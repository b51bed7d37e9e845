// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/coursepath/internal/recommend"
)

// minJWTSecretLength is the shortest accepted HMAC secret.
const minJWTSecretLength = 32

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateBreaker(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if !c.Server.RateLimitDisabled {
		if c.Server.RateLimitRequests < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Server.RateLimitRequests)
		}
		if c.Server.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Server.RateLimitWindow)
		}
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case DriverDuckDB, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverDuckDB, DriverSQLite, c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative, got %d", c.Database.Threads)
	}
	if c.Database.QueryTimeout < 0 {
		return fmt.Errorf("DB_QUERY_TIMEOUT must be non-negative, got %v", c.Database.QueryTimeout)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := &c.Recommend
	if r.CandidateK < 1 {
		return fmt.Errorf("RECOMMEND_CANDIDATE_K must be positive, got %d", r.CandidateK)
	}
	if r.ShortlistK < 1 {
		return fmt.Errorf("RECOMMEND_SHORTLIST_K must be positive, got %d", r.ShortlistK)
	}
	if r.ShortlistK > r.CandidateK {
		return fmt.Errorf("RECOMMEND_SHORTLIST_K (%d) must not exceed RECOMMEND_CANDIDATE_K (%d)",
			r.ShortlistK, r.CandidateK)
	}
	if strings.TrimSpace(r.CurrentTerm) == "" {
		return fmt.Errorf("RECOMMEND_CURRENT_TERM is required")
	}
	if strings.TrimSpace(r.NextTerm) == "" {
		return fmt.Errorf("RECOMMEND_NEXT_TERM is required")
	}
	if len(r.GatingTypes) == 0 {
		return fmt.Errorf("RECOMMEND_GATING_TYPES must list at least one type")
	}
	for _, name := range r.GatingTypes {
		if _, err := recommend.ParseEdgeType(name); err != nil {
			return fmt.Errorf("RECOMMEND_GATING_TYPES is invalid: %w", err)
		}
	}
	if err := r.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend configuration is invalid: %w", err)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("CATALOG_CACHE_TTL must be positive when the cache is enabled, got %v", c.Cache.TTL)
	}
	if c.Reports.Enabled && strings.TrimSpace(c.Reports.Path) == "" {
		return fmt.Errorf("REPORTS_PATH is required when REPORTS_ENABLED=true")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	switch c.Security.AuthMode {
	case AuthModeNone:
		return nil
	case AuthModeJWT:
		if len(c.Security.JWTSecret) < minJWTSecretLength {
			return fmt.Errorf("JWT_SECRET must be at least %d characters when AUTH_MODE=jwt", minJWTSecretLength)
		}
		if c.Security.SessionTimeout <= 0 {
			return fmt.Errorf("SESSION_TIMEOUT must be positive, got %v", c.Security.SessionTimeout)
		}
		return nil
	default:
		return fmt.Errorf("AUTH_MODE must be %q or %q, got %q", AuthModeNone, AuthModeJWT, c.Security.AuthMode)
	}
}

func (c *Config) validateBreaker() error {
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0, 1], got %v", c.Breaker.FailureRatio)
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive, got %v", c.Breaker.Timeout)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "off", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL is invalid: %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
