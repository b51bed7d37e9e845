// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

/*
Package database provides the relational store behind the recommendation engine.

Two drivers are supported through database/sql:

  - duckdb (github.com/duckdb/duckdb-go/v2): the default embedded store
  - sqlite3 (github.com/mattn/go-sqlite3): existing university SQLite files

The schema is written in the subset of SQL both engines accept, and every
query uses ? placeholders.

# Tables

  - departments, classifications, difficulty_levels, instruction_modes: lookups
  - courses: catalog entries; only status = 'Active' rows are recommended
  - prerequisites: edges with minimum_grade and prerequisite_type
  - students, student_preferences: profile and scoring inputs
  - academic_history: graded course attempts; passing grades form the completed set
  - agent_logs: one row per engine run

# Data Access

DB exposes the four reads the engine needs (profile, completed courses,
active catalog, prerequisite edges), catalog browsing, and the run log.
Provider adapts DB to recommend.DataProvider and serves the catalog from a
TTL snapshot cache. BreakerProvider wraps any DataProvider in a circuit
breaker.

# Thread Safety

DB is safe for concurrent use. The SQLite driver is limited to a single
open connection so that in-memory databases are shared by all queries.
*/
package database
