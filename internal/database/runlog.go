// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// AgentName identifies this engine in agent_logs.
const AgentName = "course_recommender"

// defaultRunLogLimit caps ListRunLogs when no limit is given.
const defaultRunLogLimit = 50

// RunLogEntry is one row of agent_logs. Input and Output hold JSON text.
type RunLogEntry struct {
	RunID               string    `json:"run_id"`
	RequestID           string    `json:"request_id,omitempty"`
	AgentName           string    `json:"agent_name"`
	Operation           string    `json:"operation"`
	StudentID           int       `json:"student_id"`
	StartedAt           time.Time `json:"started_at"`
	FinishedAt          time.Time `json:"finished_at"`
	DurationMS          int64     `json:"duration_ms"`
	Input               string    `json:"input_parameters"`
	Output              string    `json:"output_data,omitempty"`
	Status              string    `json:"status"`
	Stage               string    `json:"failed_stage,omitempty"`
	Error               string    `json:"error_message,omitempty"`
	RecommendationCount int       `json:"recommendation_count"`
	QueryCount          int       `json:"query_count"`
}

// InsertRunLog stores entry. A duplicate run id is ignored so that
// redelivered events are harmless.
func (db *DB) InsertRunLog(ctx context.Context, entry *RunLogEntry) error {
	if db.closed.Load() {
		return ErrDatabaseClosed
	}
	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	agent := entry.AgentName
	if agent == "" {
		agent = AgentName
	}

	query := `
		INSERT OR IGNORE INTO agent_logs (
			run_id, request_id, agent_name, operation, student_id,
			execution_start_time, execution_end_time, execution_duration_ms,
			input_parameters, output_data, execution_status, failed_stage,
			error_message, recommendation_count, query_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, query,
		entry.RunID, nullString(entry.RequestID), agent, entry.Operation, entry.StudentID,
		entry.StartedAt.UTC(), entry.FinishedAt.UTC(), entry.DurationMS,
		entry.Input, nullString(entry.Output), entry.Status, nullString(entry.Stage),
		nullString(entry.Error), entry.RecommendationCount, entry.QueryCount,
	)
	if err := observe("insert", "agent_logs", start, err); err != nil {
		return fmt.Errorf("failed to insert run log %s: %w", entry.RunID, err)
	}
	return nil
}

// ListRunLogs returns a student's runs, newest first.
func (db *DB) ListRunLogs(ctx context.Context, studentID, limit int) ([]RunLogEntry, error) {
	if db.closed.Load() {
		return nil, ErrDatabaseClosed
	}
	if limit <= 0 {
		limit = defaultRunLogLimit
	}
	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	query := `
		SELECT
			run_id,
			COALESCE(request_id, ''),
			agent_name,
			operation,
			student_id,
			execution_start_time,
			execution_end_time,
			execution_duration_ms,
			COALESCE(input_parameters, ''),
			COALESCE(output_data, ''),
			execution_status,
			COALESCE(failed_stage, ''),
			COALESCE(error_message, ''),
			recommendation_count,
			query_count
		FROM agent_logs
		WHERE student_id = ?
		ORDER BY execution_start_time DESC, run_id
		LIMIT ?`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, studentID, limit)
	if err := observe("select", "agent_logs", start, err); err != nil {
		return nil, fmt.Errorf("failed to load run logs: %w", err)
	}
	defer closeWithLog(rows, "rows")

	entries := []RunLogEntry{}
	for rows.Next() {
		var e RunLogEntry
		if err := rows.Scan(
			&e.RunID, &e.RequestID, &e.AgentName, &e.Operation, &e.StudentID,
			&e.StartedAt, &e.FinishedAt, &e.DurationMS,
			&e.Input, &e.Output, &e.Status, &e.Stage, &e.Error,
			&e.RecommendationCount, &e.QueryCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run log: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate run logs: %w", err)
	}
	return entries, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
