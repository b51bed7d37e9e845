// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/tomtom215/coursepath/internal/config"
	"github.com/tomtom215/coursepath/internal/logging"
	"github.com/tomtom215/coursepath/internal/metrics"
)

// defaultQueryTimeout applies when the config leaves QueryTimeout at zero.
const defaultQueryTimeout = 10 * time.Second

// DB wraps a database/sql connection to DuckDB or SQLite.
type DB struct {
	conn   *sql.DB
	cfg    config.DatabaseConfig
	closed atomic.Bool
}

// New opens the configured database and creates the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	dsn, err := connectionString(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	db := &DB{conn: conn, cfg: *cfg}
	db.configureConnectionPool()

	ctx, cancel := schemaContext()
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}

	if err := db.createTables(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.Info().
		Str("driver", cfg.Driver).
		Str("path", cfg.Path).
		Msg("Database initialized")

	return db, nil
}

func connectionString(cfg *config.DatabaseConfig) (string, error) {
	switch cfg.Driver {
	case config.DriverDuckDB:
		params := []string{"access_mode=read_write"}
		if cfg.Threads > 0 {
			params = append(params, fmt.Sprintf("threads=%d", cfg.Threads))
		}
		if cfg.MaxMemory != "" {
			params = append(params, "max_memory="+cfg.MaxMemory)
		}
		return cfg.Path + "?" + strings.Join(params, "&"), nil
	case config.DriverSQLite:
		if cfg.Path == ":memory:" {
			return "file::memory:?_foreign_keys=on", nil
		}
		return "file:" + cfg.Path + "?_foreign_keys=on&_busy_timeout=5000", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func (db *DB) configureConnectionPool() {
	if db.cfg.Driver == config.DriverSQLite {
		// One connection keeps :memory: databases shared and serializes writers.
		db.conn.SetMaxOpenConns(1)
		db.conn.SetMaxIdleConns(1)
		db.conn.SetConnMaxLifetime(0)
		return
	}
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Driver returns the configured driver name.
func (db *DB) Driver() string {
	return db.cfg.Driver
}

// Ping checks the connection.
func (db *DB) Ping(ctx context.Context) error {
	if db.closed.Load() {
		return ErrDatabaseClosed
	}
	return db.conn.PingContext(ctx)
}

// Close closes the connection pool. Further calls are no-ops.
func (db *DB) Close() error {
	if !db.closed.CompareAndSwap(false, true) {
		return nil
	}
	return db.conn.Close()
}

// queryContext bounds ctx by the configured query timeout.
func (db *DB) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := db.cfg.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// observe records a query in metrics and returns err unchanged.
func observe(operation, table string, start time.Time, err error) error {
	metrics.RecordDBQuery(operation, table, time.Since(start), err)
	return err
}
