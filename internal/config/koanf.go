// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/coursepath/config.yaml",
	"/etc/coursepath/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvFile is loaded into the environment before the env layer when present.
var DotEnvFile = ".env"

// Default returns the built-in defaults without reading any file or
// environment variable.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			Timeout:           30 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Database: DatabaseConfig{
			Driver:       DriverDuckDB,
			Path:         "/data/coursepath.duckdb",
			MaxMemory:    "1GB",
			Threads:      0, // 0 = DuckDB default
			QueryTimeout: 10 * time.Second,
			Seed:         false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommend: RecommendConfig{
			ShortlistK:       5,
			CandidateK:       12,
			MaxK:             100,
			CurrentTerm:      "Fall 2025",
			NextTerm:         "Spring 2026",
			GatingTypes:      []string{"Hard", "Recommended", "Co-requisite"},
			Workers:          0, // 0 = GOMAXPROCS
			InterestWeight:   40,
			CareerWeight:     30,
			DifficultyWeight: 20,
			StrategicWeight:  10,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
		Reports: ReportsConfig{
			Enabled: false,
			Path:    "/data/reports",
		},
		Security: SecurityConfig{
			AuthMode:       AuthModeNone,
			JWTSecret:      "",
			SessionTimeout: 24 * time.Hour,
		},
		Breaker: BreakerConfig{
			MaxRequests:  3,
			Interval:     time.Minute,
			Timeout:      30 * time.Second,
			FailureRatio: 0.6,
			MinRequests:  10,
		},
	}
}

// LoadWithKoanf loads configuration in three layers: defaults, an optional
// YAML file, then mapped environment variables.
func LoadWithKoanf() (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// loadDotEnv loads path into the environment. A missing file is not an error.
// Variables already set in the environment win.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"server.cors_origins",
	"recommend.gating_types",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Server
	"http_host":           "server.host",
	"http_port":           "server.port",
	"http_timeout":        "server.timeout",
	"cors_origins":        "server.cors_origins",
	"rate_limit_requests": "server.rate_limit_requests",
	"rate_limit_window":   "server.rate_limit_window",
	"disable_rate_limit":  "server.rate_limit_disabled",

	// Database
	"db_driver":         "database.driver",
	"db_path":           "database.path",
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"db_query_timeout":  "database.query_timeout",
	"seed_demo_data":    "database.seed",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Recommendation
	"recommend_shortlist_k":       "recommend.shortlist_k",
	"recommend_candidate_k":       "recommend.candidate_k",
	"recommend_max_k":             "recommend.max_k",
	"recommend_current_term":      "recommend.current_term",
	"recommend_next_term":         "recommend.next_term",
	"recommend_gating_types":      "recommend.gating_types",
	"recommend_workers":           "recommend.workers",
	"recommend_weight_interest":   "recommend.interest_weight",
	"recommend_weight_career":     "recommend.career_weight",
	"recommend_weight_difficulty": "recommend.difficulty_weight",
	"recommend_weight_strategic":  "recommend.strategic_weight",

	// Cache
	"catalog_cache_enabled": "cache.enabled",
	"catalog_cache_ttl":     "cache.ttl",

	// Reports
	"reports_enabled": "reports.enabled",
	"reports_path":    "reports.path",

	// Security
	"auth_mode":       "security.auth_mode",
	"jwt_secret":      "security.jwt_secret",
	"session_timeout": "security.session_timeout",

	// Breaker
	"breaker_max_requests":  "breaker.max_requests",
	"breaker_interval":      "breaker.interval",
	"breaker_timeout":       "breaker.timeout",
	"breaker_failure_ratio": "breaker.failure_ratio",
	"breaker_min_requests":  "breaker.min_requests",
}

func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
