// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/coursepath/internal/recommend"
)

// defaultPreferredDifficulty is used for students without a preferences row.
const defaultPreferredDifficulty = 2

// failingGrades do not count toward the completed set.
var failingGrades = []string{"F", "W", "WF", "I", "IP", "NP", "U"}

// HistoryEntry is one graded course attempt.
type HistoryEntry struct {
	HistoryID     int64  `json:"history_id"`
	CourseCode    string `json:"course_code"`
	CourseName    string `json:"course_name"`
	CreditHours   int    `json:"credit_hours"`
	Grade         string `json:"grade"`
	TermCompleted string `json:"term_completed"`
	Department    string `json:"department"`
}

var profileQuery = `
	SELECT
		s.student_id,
		COALESCE(s.first_name, ''),
		COALESCE(s.last_name, ''),
		COALESCE(s.email, ''),
		COALESCE(s.cumulative_gpa, 0.0),
		COALESCE(d.department_name, ''),
		COALESCE(c.classification_name, ''),
		COALESCE(s.academic_standing, ''),
		COALESCE(p.interests, ''),
		COALESCE(p.career_goals, ''),
		COALESCE(p.preferred_difficulty, ` + strconv.Itoa(defaultPreferredDifficulty) + `),
		COALESCE(p.strong_subjects, '')
	FROM students s
	LEFT JOIN departments d ON s.major_id = d.department_id
	LEFT JOIN classifications c ON s.classification_id = c.classification_id
	LEFT JOIN student_preferences p ON p.student_id = s.student_id
	WHERE s.student_id = ?`

// GetStudentProfile loads a student with preferences and display fields.
// Unknown students yield recommend.ErrStudentNotFound.
func (db *DB) GetStudentProfile(ctx context.Context, studentID int) (*recommend.StudentProfile, error) {
	if db.closed.Load() {
		return nil, ErrDatabaseClosed
	}
	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	start := time.Now()
	var (
		p                         recommend.StudentProfile
		interests, strongSubjects string
	)
	err := db.conn.QueryRowContext(ctx, profileQuery, studentID).Scan(
		&p.StudentID, &p.FirstName, &p.LastName, &p.Email, &p.GPA,
		&p.Major, &p.Classification, &p.AcademicStanding,
		&interests, &p.CareerGoal, &p.PreferredDifficulty, &strongSubjects,
	)
	if errors.Is(err, sql.ErrNoRows) {
		_ = observe("select", "students", start, nil)
		return nil, fmt.Errorf("student %d: %w", studentID, recommend.ErrStudentNotFound)
	}
	if err := observe("select", "students", start, err); err != nil {
		return nil, fmt.Errorf("failed to load student %d: %w", studentID, err)
	}

	p.Interests = splitList(interests)
	p.StrongSubjects = splitList(strongSubjects)
	return &p, nil
}

// GetCompletedCourses returns the codes of courses the student passed, in
// history order without duplicates.
func (db *DB) GetCompletedCourses(ctx context.Context, studentID int) ([]string, error) {
	if db.closed.Load() {
		return nil, ErrDatabaseClosed
	}
	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	query := `
		SELECT c.course_code
		FROM academic_history ah
		JOIN courses c ON ah.course_id = c.course_id
		WHERE ah.student_id = ?
		  AND ah.grade IS NOT NULL
		  AND UPPER(TRIM(ah.grade)) NOT IN (` + placeholders(len(failingGrades)) + `)
		ORDER BY ah.history_id`

	args := make([]interface{}, 0, len(failingGrades)+1)
	args = append(args, studentID)
	for _, g := range failingGrades {
		args = append(args, g)
	}

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err := observe("select", "academic_history", start, err); err != nil {
		return nil, fmt.Errorf("failed to load completed courses: %w", err)
	}
	defer closeWithLog(rows, "rows")

	codes := []string{}
	seen := make(map[string]struct{})
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan completed course: %w", err)
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate completed courses: %w", err)
	}
	return codes, nil
}

// GetAcademicHistory returns every graded attempt, most recent term first.
func (db *DB) GetAcademicHistory(ctx context.Context, studentID int) ([]HistoryEntry, error) {
	if db.closed.Load() {
		return nil, ErrDatabaseClosed
	}
	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	query := `
		SELECT
			ah.history_id,
			c.course_code,
			c.course_name,
			c.credit_hours,
			COALESCE(ah.grade, ''),
			COALESCE(ah.term_completed, ''),
			COALESCE(d.department_name, '')
		FROM academic_history ah
		JOIN courses c ON ah.course_id = c.course_id
		LEFT JOIN departments d ON c.department_id = d.department_id
		WHERE ah.student_id = ?
		ORDER BY ah.term_completed DESC, ah.history_id`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, studentID)
	if err := observe("select", "academic_history", start, err); err != nil {
		return nil, fmt.Errorf("failed to load academic history: %w", err)
	}
	defer closeWithLog(rows, "rows")

	history := []HistoryEntry{}
	for rows.Next() {
		var h HistoryEntry
		if err := rows.Scan(&h.HistoryID, &h.CourseCode, &h.CourseName, &h.CreditHours,
			&h.Grade, &h.TermCompleted, &h.Department); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate academic history: %w", err)
	}
	return history, nil
}

// splitList splits a comma-joined column, dropping blanks.
func splitList(joined string) []string {
	out := []string{}
	for _, part := range strings.Split(joined, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
