// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package events

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/coursepath/internal/database"
	"github.com/tomtom215/coursepath/internal/recommend"
)

// Topics.
const (
	TopicCompleted = "recommendation.completed"
	TopicFailed    = "recommendation.failed"
)

// Metadata keys set on every message.
const (
	MetaRequestID     = "request_id"
	MetaCorrelationID = "correlation_id"
	MetaOperation     = "operation"
)

// RunEvent is the wire form of a recommend.RunRecord.
type RunEvent struct {
	RunID               string          `json:"run_id"`
	RequestID           string          `json:"request_id,omitempty"`
	Operation           string          `json:"operation"`
	StudentID           int             `json:"student_id"`
	StartedAt           time.Time       `json:"started_at"`
	FinishedAt          time.Time       `json:"finished_at"`
	DurationMS          int64           `json:"duration_ms"`
	Status              string          `json:"status"`
	Stage               string          `json:"stage,omitempty"`
	Error               string          `json:"error,omitempty"`
	Input               json.RawMessage `json:"input"`
	Output              json.RawMessage `json:"output,omitempty"`
	RecommendationCount int             `json:"recommendation_count"`
	QueryCount          int             `json:"query_count"`
}

// NewRunEvent encodes rec's input and output as JSON.
func NewRunEvent(rec *recommend.RunRecord) (*RunEvent, error) {
	input, err := json.Marshal(rec.Input)
	if err != nil {
		return nil, fmt.Errorf("marshal run input: %w", err)
	}
	var output json.RawMessage
	if rec.Output != nil {
		output, err = json.Marshal(rec.Output)
		if err != nil {
			return nil, fmt.Errorf("marshal run output: %w", err)
		}
	}
	return &RunEvent{
		RunID:               rec.RunID,
		RequestID:           rec.RequestID,
		Operation:           rec.Operation,
		StudentID:           rec.StudentID,
		StartedAt:           rec.StartedAt.UTC(),
		FinishedAt:          rec.FinishedAt.UTC(),
		DurationMS:          rec.Duration().Milliseconds(),
		Status:              string(rec.Status),
		Stage:               string(rec.Stage),
		Error:               rec.Error,
		Input:               input,
		Output:              output,
		RecommendationCount: rec.RecommendationCount,
		QueryCount:          rec.QueryCount,
	}, nil
}

// Topic returns the topic the event is published on.
func (e *RunEvent) Topic() string {
	if e.Status == string(recommend.RunSuccess) {
		return TopicCompleted
	}
	return TopicFailed
}

// RunLogEntry converts the event into an agent_logs row.
func (e *RunEvent) RunLogEntry() *database.RunLogEntry {
	return &database.RunLogEntry{
		RunID:               e.RunID,
		RequestID:           e.RequestID,
		AgentName:           database.AgentName,
		Operation:           e.Operation,
		StudentID:           e.StudentID,
		StartedAt:           e.StartedAt,
		FinishedAt:          e.FinishedAt,
		DurationMS:          e.DurationMS,
		Input:               string(e.Input),
		Output:              string(e.Output),
		Status:              e.Status,
		Stage:               e.Stage,
		Error:               e.Error,
		RecommendationCount: e.RecommendationCount,
		QueryCount:          e.QueryCount,
	}
}

func decodeRunEvent(payload []byte) (*RunEvent, error) {
	var e RunEvent
	if err := json.Unmarshal(payload, &e); err != nil {
		return nil, fmt.Errorf("unmarshal run event: %w", err)
	}
	if e.RunID == "" {
		return nil, fmt.Errorf("run event without run_id")
	}
	return &e, nil
}
