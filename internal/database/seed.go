// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tomtom215/coursepath/internal/logging"
)

// seedStatement is one parameterized insert of demo data.
type seedStatement struct {
	table string
	query string
	rows  [][]interface{}
}

// SeedDemoData inserts a small university catalog with three students.
// Existing rows are left alone, so seeding twice is harmless.
func (db *DB) SeedDemoData(ctx context.Context) error {
	if db.closed.Load() {
		return ErrDatabaseClosed
	}
	logging.Info().Msg("Seeding database with demo catalog...")

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	inserted := 0
	for _, st := range demoData() {
		n, err := execSeed(ctx, tx, st)
		if err != nil {
			return err
		}
		inserted += n
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed data: %w", err)
	}
	logging.Info().Int("rows", inserted).Msg("Demo catalog seeded")
	return nil
}

func execSeed(ctx context.Context, tx *sql.Tx, st seedStatement) (int, error) {
	stmt, err := tx.PrepareContext(ctx, st.query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare %s seed: %w", st.table, err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for _, row := range st.rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return 0, fmt.Errorf("failed to seed %s: %w", st.table, err)
		}
	}
	return len(st.rows), nil
}

func demoData() []seedStatement {
	return []seedStatement{
		{
			table: "departments",
			query: `INSERT OR IGNORE INTO departments (department_id, department_code, department_name, department_type) VALUES (?, ?, ?, ?)`,
			rows: [][]interface{}{
				{1, "FIN", "Finance", "Business"},
				{2, "CS", "Computer Science", "Engineering"},
				{3, "MATH", "Mathematics", "Sciences"},
				{4, "ART", "Art", "Humanities"},
				{5, "ECON", "Economics", "Business"},
			},
		},
		{
			table: "classifications",
			query: `INSERT OR IGNORE INTO classifications (classification_id, classification_name) VALUES (?, ?)`,
			rows: [][]interface{}{
				{1, "Freshman"}, {2, "Sophomore"}, {3, "Junior"}, {4, "Senior"},
			},
		},
		{
			table: "difficulty_levels",
			query: `INSERT OR IGNORE INTO difficulty_levels (difficulty_level_id, level_name, display_order) VALUES (?, ?, ?)`,
			rows: [][]interface{}{
				{1, "Introductory", 1}, {2, "Intermediate", 2}, {3, "Advanced", 3}, {4, "Graduate", 4},
			},
		},
		{
			table: "instruction_modes",
			query: `INSERT OR IGNORE INTO instruction_modes (instruction_mode_id, mode_name) VALUES (?, ?)`,
			rows: [][]interface{}{
				{1, "In-Person"}, {2, "Online"}, {3, "Hybrid"},
			},
		},
		{
			table: "courses",
			query: `INSERT OR IGNORE INTO courses (course_id, course_code, course_name, description, department_id,
				credit_hours, difficulty_level_id, instruction_mode_id, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rows: [][]interface{}{
				{101, "FIN 201", "Principles of Finance", "Financial markets, the time value of money and an introduction to investment analysis.", 1, 3, 1, 1, "Active"},
				{102, "FIN 301", "Corporate Finance", "Capital budgeting, valuation and financing decisions of the firm.", 1, 3, 2, 1, "Active"},
				{103, "FIN 410", "Investment Banking", "Mergers and acquisitions, valuation and capital raising in investment banking.", 1, 3, 3, 1, "Active"},
				{104, "FIN 420", "Portfolio Management", "Asset allocation, risk and return for investment portfolios.", 1, 3, 3, 3, "Active"},
				{105, "CS 101", "Introduction to Programming", "Programming fundamentals: variables, control flow and functions.", 2, 3, 1, 1, "Active"},
				{106, "CS 201", "Data Structures", "Data structures and algorithms with complexity analysis.", 2, 4, 2, 1, "Active"},
				{107, "CS 350", "Machine Learning", "Supervised learning, model evaluation and data analysis.", 2, 3, 3, 3, "Active"},
				{108, "MATH 150", "Calculus I", "Limits, derivatives and integrals of one variable.", 3, 4, 1, 1, "Active"},
				{109, "MATH 220", "Statistics for Data Analysis", "Probability, inference and regression for data analysis.", 3, 3, 2, 2, "Active"},
				{110, "ECON 201", "Principles of Microeconomics", "Supply, demand and market structure.", 5, 3, 1, 2, "Active"},
				{111, "ART 110", "Drawing Fundamentals", "Observational drawing, line and composition.", 4, 3, 1, 1, "Active"},
				{112, "FIN 499", "Finance Seminar", "Retired seminar on special topics in finance.", 1, 1, 3, 1, "Inactive"},
			},
		},
		{
			table: "prerequisites",
			query: `INSERT OR IGNORE INTO prerequisites (prerequisite_id, course_id, prerequisite_course_id, minimum_grade, prerequisite_type) VALUES (?, ?, ?, ?, ?)`,
			rows: [][]interface{}{
				{1, 102, 101, "C", "Hard"},
				{2, 103, 102, "B", "Hard"},
				{3, 103, 110, "C", "Recommended"},
				{4, 104, 102, "C", "Hard"},
				{5, 104, 109, "C", "Co-requisite"},
				{6, 106, 105, "C", "Hard"},
				{7, 107, 106, "C", "Hard"},
				{8, 107, 109, "C", "Hard"},
				{9, 109, 108, "C", "Hard"},
				{10, 112, 103, "B", "Hard"},
			},
		},
		{
			table: "students",
			query: `INSERT OR IGNORE INTO students (student_id, first_name, last_name, email, cumulative_gpa, major_id,
				classification_id, academic_standing) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rows: [][]interface{}{
				{1, "Jordan", "Lee", "jordan.lee@example.edu", 3.45, 1, 3, "Good Standing"},
				{2, "Priya", "Shah", "priya.shah@example.edu", 3.82, 2, 2, "Dean's List"},
				{3, "Sam", "Rivera", "sam.rivera@example.edu", 3.10, 4, 1, "Good Standing"},
			},
		},
		{
			table: "student_preferences",
			query: `INSERT OR IGNORE INTO student_preferences (student_id, interests, career_goals, preferred_difficulty, strong_subjects) VALUES (?, ?, ?, ?, ?)`,
			rows: [][]interface{}{
				{1, "finance,investment,valuation", "Investment Banking", 3, "Finance,Economics"},
				{2, "programming,data analysis,machine learning", "Data Scientist", 2, "Mathematics,Computer Science"},
			},
		},
		{
			table: "academic_history",
			query: `INSERT OR IGNORE INTO academic_history (history_id, student_id, course_id, grade, term_completed) VALUES (?, ?, ?, ?, ?)`,
			rows: [][]interface{}{
				{1, 1, 101, "A", "2024-FA"},
				{2, 1, 110, "B+", "2024-FA"},
				{3, 1, 108, "B", "2025-SP"},
				{4, 1, 102, "F", "2025-SP"},
				{5, 2, 105, "A", "2024-FA"},
				{6, 2, 108, "A-", "2024-FA"},
				{7, 2, 106, "B", "2025-SP"},
				{8, 2, 109, "W", "2025-SP"},
			},
		},
	}
}
