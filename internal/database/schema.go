// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates every table and index if missing.
func (db *DB) createTables(ctx context.Context) error {
	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	for _, query := range indexCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}
	return nil
}

// tableCreationQueries uses only types and constraints that DuckDB and
// SQLite both accept. Ids are assigned by the loader, not by the engine.
func tableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS departments (
			department_id INTEGER PRIMARY KEY,
			department_code TEXT NOT NULL,
			department_name TEXT NOT NULL,
			department_type TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS classifications (
			classification_id INTEGER PRIMARY KEY,
			classification_name TEXT NOT NULL
		)`,

		// display_order is the 1-based difficulty the scorer compares.
		`CREATE TABLE IF NOT EXISTS difficulty_levels (
			difficulty_level_id INTEGER PRIMARY KEY,
			level_name TEXT NOT NULL,
			display_order INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS instruction_modes (
			instruction_mode_id INTEGER PRIMARY KEY,
			mode_name TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS courses (
			course_id INTEGER PRIMARY KEY,
			course_code TEXT NOT NULL UNIQUE,
			course_name TEXT NOT NULL,
			description TEXT,
			department_id INTEGER,
			credit_hours INTEGER NOT NULL DEFAULT 3,
			difficulty_level_id INTEGER,
			instruction_mode_id INTEGER,
			status TEXT NOT NULL DEFAULT 'Active'
		)`,

		`CREATE TABLE IF NOT EXISTS prerequisites (
			prerequisite_id INTEGER PRIMARY KEY,
			course_id INTEGER NOT NULL,
			prerequisite_course_id INTEGER NOT NULL,
			minimum_grade TEXT,
			prerequisite_type TEXT NOT NULL DEFAULT 'Hard'
		)`,

		`CREATE TABLE IF NOT EXISTS students (
			student_id INTEGER PRIMARY KEY,
			first_name TEXT,
			last_name TEXT,
			email TEXT,
			cumulative_gpa DOUBLE,
			major_id INTEGER,
			classification_id INTEGER,
			academic_standing TEXT
		)`,

		// List columns are comma-joined.
		`CREATE TABLE IF NOT EXISTS student_preferences (
			student_id INTEGER PRIMARY KEY,
			interests TEXT,
			career_goals TEXT,
			preferred_difficulty INTEGER NOT NULL DEFAULT 2,
			strong_subjects TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS academic_history (
			history_id INTEGER PRIMARY KEY,
			student_id INTEGER NOT NULL,
			course_id INTEGER NOT NULL,
			grade TEXT,
			term_completed TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS agent_logs (
			run_id TEXT PRIMARY KEY,
			request_id TEXT,
			agent_name TEXT NOT NULL,
			operation TEXT NOT NULL,
			student_id INTEGER NOT NULL,
			execution_start_time TIMESTAMP NOT NULL,
			execution_end_time TIMESTAMP NOT NULL,
			execution_duration_ms BIGINT NOT NULL,
			input_parameters TEXT,
			output_data TEXT,
			execution_status TEXT NOT NULL,
			failed_stage TEXT,
			error_message TEXT,
			recommendation_count INTEGER NOT NULL DEFAULT 0,
			query_count INTEGER NOT NULL DEFAULT 0
		)`,
	}
}

func indexCreationQueries() []string {
	return []string{
		`CREATE INDEX IF NOT EXISTS idx_courses_status ON courses(status)`,
		`CREATE INDEX IF NOT EXISTS idx_courses_department ON courses(department_id)`,
		`CREATE INDEX IF NOT EXISTS idx_prerequisites_course ON prerequisites(course_id)`,
		`CREATE INDEX IF NOT EXISTS idx_history_student ON academic_history(student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_agent_logs_student ON agent_logs(student_id, execution_start_time)`,
	}
}
