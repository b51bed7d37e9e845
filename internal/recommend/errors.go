// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrStudentNotFound is returned by data providers for unknown students.
	ErrStudentNotFound = errors.New("student not found")

	// ErrNoDataProvider is returned when the engine has no provider attached.
	ErrNoDataProvider = errors.New("no data provider configured")
)

// Stage names a pipeline step in a StageError.
type Stage string

const (
	StageLoad     Stage = "load"
	StageValidate Stage = "validate"
	StageScore    Stage = "score"
)

// ContractError reports a malformed input record. It rejects the whole batch.
type ContractError struct {
	// Record is the record kind: profile, course, prerequisite_edge or completed_course.
	Record string
	// Key identifies the record, usually its code or id.
	Key string
	// Field is the offending field name as it appears in JSON.
	Field string
	// Reason is a human-readable description.
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s: %s", e.Record, e.Key, e.Field, e.Reason)
}

// StageError wraps any failure of a run with the student and stage.
type StageError struct {
	StudentID int
	Stage     Stage
	Err       error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("recommend student %d: %s: %v", e.StudentID, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(studentID int, stage Stage, err error) error {
	var se *StageError
	if errors.As(err, &se) {
		return err
	}
	return &StageError{StudentID: studentID, Stage: stage, Err: err}
}
