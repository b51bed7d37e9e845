// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package config

import (
	"time"

	"github.com/tomtom215/coursepath/internal/recommend"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cache     CacheConfig     `koanf:"cache"`
	Reports   ReportsConfig   `koanf:"reports"`
	Security  SecurityConfig  `koanf:"security"`
	Breaker   BreakerConfig   `koanf:"breaker"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port"`
	Timeout           time.Duration `koanf:"timeout"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Database drivers.
const (
	DriverDuckDB = "duckdb"
	DriverSQLite = "sqlite3"
)

// DatabaseConfig holds store settings. MaxMemory and Threads apply to DuckDB only.
type DatabaseConfig struct {
	Driver       string        `koanf:"driver"`
	Path         string        `koanf:"path"`
	MaxMemory    string        `koanf:"max_memory"`
	Threads      int           `koanf:"threads"`
	QueryTimeout time.Duration `koanf:"query_timeout"`
	Seed         bool          `koanf:"seed"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// RecommendConfig holds pipeline tuning.
type RecommendConfig struct {
	ShortlistK       int      `koanf:"shortlist_k"`
	CandidateK       int      `koanf:"candidate_k"`
	MaxK             int      `koanf:"max_k"`
	CurrentTerm      string   `koanf:"current_term"`
	NextTerm         string   `koanf:"next_term"`
	GatingTypes      []string `koanf:"gating_types"`
	Workers          int      `koanf:"workers"`
	InterestWeight   float64  `koanf:"interest_weight"`
	CareerWeight     float64  `koanf:"career_weight"`
	DifficultyWeight float64  `koanf:"difficulty_weight"`
	StrategicWeight  float64  `koanf:"strategic_weight"`
}

// CacheConfig controls the catalog snapshot cache.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	TTL     time.Duration `koanf:"ttl"`
}

// ReportsConfig controls the persistent latest-report store.
type ReportsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// Auth modes.
const (
	AuthModeNone = "none"
	AuthModeJWT  = "jwt"
)

// SecurityConfig holds API authentication settings.
type SecurityConfig struct {
	AuthMode       string        `koanf:"auth_mode"`
	JWTSecret      string        `koanf:"jwt_secret"`
	SessionTimeout time.Duration `koanf:"session_timeout"`
}

// BreakerConfig tunes the circuit breaker around the data provider.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	FailureRatio float64       `koanf:"failure_ratio"`
	MinRequests  uint32        `koanf:"min_requests"`
}

// EngineConfig converts the section into a pipeline configuration.
// Gating names are assumed valid; Validate checks them.
func (r *RecommendConfig) EngineConfig() *recommend.Config {
	cfg := recommend.DefaultConfig()
	cfg.Weights = recommend.Weights{
		Interest:   r.InterestWeight,
		Career:     r.CareerWeight,
		Difficulty: r.DifficultyWeight,
		Strategic:  r.StrategicWeight,
	}
	cfg.Limits.ShortlistK = r.ShortlistK
	cfg.Limits.CandidateK = r.CandidateK
	if r.MaxK > 0 {
		cfg.Limits.MaxK = r.MaxK
	}
	cfg.Terms = recommend.Terms{Current: r.CurrentTerm, Next: r.NextTerm}
	if r.Workers > 0 {
		cfg.Workers = r.Workers
	}

	gating := make([]recommend.EdgeType, 0, len(r.GatingTypes))
	for _, name := range r.GatingTypes {
		if t, err := recommend.ParseEdgeType(name); err == nil {
			gating = append(gating, t)
		}
	}
	cfg.Eligibility.GatingTypes = gating
	return cfg
}

// Load reads configuration from defaults, an optional file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
