// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

/*
Command server runs the Coursepath recommendation API.

The server is built around a suture v4 supervisor tree:

	RootSupervisor ("coursepath")
	├── DataSupervisor ("data-layer")
	│   ├── CatalogRefreshService (when the catalog cache is enabled)
	│   └── ReportsGCService (when reports are persisted)
	├── MessagingSupervisor ("messaging-layer")
	│   └── event-router (run log + latest report sinks)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config file and environment
 2. Logging: zerolog with JSON or console output
 3. Database: SQLite or DuckDB, optionally seeded with the demo catalog
 4. Reports: BadgerDB store for the latest recommendation per student
 5. Data provider: catalog cache in front of a circuit breaker
 6. Recommendation engine with metrics and event observers
 7. Authentication: JWT or no-auth mode
 8. HTTP router: chi with request ID, metrics, CORS and rate limiting

# Configuration

Sources are layered, highest priority first:

	Environment variables > Config file > Defaults

Common environment variables:

	HTTP_PORT=8080               # HTTP server port
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console
	DB_DRIVER=duckdb             # duckdb or sqlite3
	DB_PATH=/data/coursepath.duckdb
	SEED_DEMO_DATA=false         # load the demo catalog on startup
	AUTH_MODE=none               # none or jwt
	JWT_SECRET=<32+ chars>       # required for jwt mode
	REPORTS_ENABLED=false        # persist latest reports to disk

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests for up to 10s, the event router stops, and storage is
closed. Services that miss the shutdown timeout are logged.

# Usage

	export DB_DRIVER=sqlite3 DB_PATH=:memory: SEED_DEMO_DATA=true
	go run ./cmd/server
	curl localhost:8080/api/v1/students/1/recommendations
*/
package main
