// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

/*
Package config loads application configuration.

Configuration is layered with Koanf v2. Later layers override earlier ones:

 1. Defaults: built-in values for every setting
 2. Config File: optional YAML file (CONFIG_PATH, config.yaml, /etc/coursepath/config.yaml)
 3. Environment Variables: the mapped names listed below

An optional .env file in the working directory is loaded into the process
environment before layer 3, without overriding variables that are already set.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT
  - CORS_ORIGINS (comma-separated)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Database:
  - DB_DRIVER (duckdb or sqlite3), DB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS
  - DB_QUERY_TIMEOUT, SEED_DEMO_DATA

Recommendation:
  - RECOMMEND_SHORTLIST_K, RECOMMEND_CANDIDATE_K, RECOMMEND_MAX_K
  - RECOMMEND_CURRENT_TERM, RECOMMEND_NEXT_TERM
  - RECOMMEND_GATING_TYPES (comma-separated: Hard, Recommended, Co-requisite)
  - RECOMMEND_WORKERS
  - RECOMMEND_WEIGHT_INTEREST, RECOMMEND_WEIGHT_CAREER,
    RECOMMEND_WEIGHT_DIFFICULTY, RECOMMEND_WEIGHT_STRATEGIC

Cache, reports and breaker:
  - CATALOG_CACHE_ENABLED, CATALOG_CACHE_TTL
  - REPORTS_ENABLED, REPORTS_PATH
  - BREAKER_MAX_REQUESTS, BREAKER_INTERVAL, BREAKER_TIMEOUT,
    BREAKER_FAILURE_RATIO, BREAKER_MIN_REQUESTS

Security and logging:
  - AUTH_MODE (none or jwt), JWT_SECRET, SESSION_TIMEOUT
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), logger)

Config is immutable after Load and safe for concurrent reads.
*/
package config
