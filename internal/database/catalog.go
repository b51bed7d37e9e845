// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package database

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/coursepath/internal/recommend"
)

// CourseStatusActive marks courses that may be recommended.
const CourseStatusActive = "Active"

// CourseFilter narrows a catalog listing. Zero values match everything.
type CourseFilter struct {
	// Department matches the department name or code, case-insensitively.
	Department string
	Limit      int
	Offset     int
}

// Department is a department with its active course count.
type Department struct {
	ID          int64  `json:"department_id"`
	Code        string `json:"department_code"`
	Name        string `json:"department_name"`
	Type        string `json:"department_type,omitempty"`
	CourseCount int    `json:"course_count"`
}

const activeCoursesQuery = `
	SELECT
		c.course_id,
		c.course_code,
		c.course_name,
		COALESCE(c.description, ''),
		COALESCE(d.department_name, ''),
		c.credit_hours,
		COALESCE(dl.display_order, 0),
		COALESCE(dl.level_name, ''),
		COALESCE(im.mode_name, '')
	FROM courses c
	LEFT JOIN departments d ON c.department_id = d.department_id
	LEFT JOIN difficulty_levels dl ON c.difficulty_level_id = dl.difficulty_level_id
	LEFT JOIN instruction_modes im ON c.instruction_mode_id = im.instruction_mode_id
	WHERE c.status = ?`

// GetActiveCourses returns the active catalog ordered by course code.
func (db *DB) GetActiveCourses(ctx context.Context) ([]recommend.Course, error) {
	return db.ListCourses(ctx, CourseFilter{})
}

// ListCourses returns active courses matching filter, ordered by course code.
func (db *DB) ListCourses(ctx context.Context, filter CourseFilter) ([]recommend.Course, error) {
	if db.closed.Load() {
		return nil, ErrDatabaseClosed
	}
	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	query := activeCoursesQuery
	args := []interface{}{CourseStatusActive}
	if dept := strings.TrimSpace(filter.Department); dept != "" {
		query += ` AND (LOWER(d.department_name) = LOWER(?) OR LOWER(d.department_code) = LOWER(?))`
		args = append(args, dept, dept)
	}
	query += ` ORDER BY c.course_code`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, max(filter.Offset, 0))
	}

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err := observe("select", "courses", start, err); err != nil {
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}
	defer closeWithLog(rows, "rows")

	courses := []recommend.Course{}
	ids := []int64{}
	for rows.Next() {
		var (
			id int64
			c  recommend.Course
		)
		if err := rows.Scan(&id, &c.Code, &c.Name, &c.Description, &c.Department,
			&c.Credits, &c.DifficultyLevel, &c.Level, &c.InstructionMode); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		c.ID = strconv.FormatInt(id, 10)
		courses = append(courses, c)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}

	prereqs, err := db.prerequisiteIDs(ctx)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		courses[i].PrerequisiteIDs = prereqs[ids[i]]
		if courses[i].PrerequisiteIDs == nil {
			courses[i].PrerequisiteIDs = []string{}
		}
	}
	return courses, nil
}

// prerequisiteIDs maps course id to its prerequisite course ids in edge order.
func (db *DB) prerequisiteIDs(ctx context.Context) (map[int64][]string, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT course_id, prerequisite_course_id FROM prerequisites ORDER BY course_id, prerequisite_id`)
	if err := observe("select", "prerequisites", start, err); err != nil {
		return nil, fmt.Errorf("failed to load prerequisite ids: %w", err)
	}
	defer closeWithLog(rows, "rows")

	out := make(map[int64][]string)
	for rows.Next() {
		var courseID, prereqID int64
		if err := rows.Scan(&courseID, &prereqID); err != nil {
			return nil, fmt.Errorf("failed to scan prerequisite id: %w", err)
		}
		out[courseID] = append(out[courseID], strconv.FormatInt(prereqID, 10))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prerequisite ids: %w", err)
	}
	return out, nil
}

// GetPrerequisiteEdges returns the edges of active courses, ordered by
// course code and then by the order the edges were entered. An unknown
// prerequisite type is reported as a *recommend.ContractError.
func (db *DB) GetPrerequisiteEdges(ctx context.Context) ([]recommend.PrerequisiteEdge, error) {
	if db.closed.Load() {
		return nil, ErrDatabaseClosed
	}
	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	query := `
		SELECT
			c.course_code,
			p.prerequisite_course_id,
			pc.course_code,
			COALESCE(p.minimum_grade, ''),
			COALESCE(p.prerequisite_type, 'Hard')
		FROM prerequisites p
		JOIN courses c ON p.course_id = c.course_id
		JOIN courses pc ON p.prerequisite_course_id = pc.course_id
		WHERE c.status = ?
		ORDER BY c.course_code, p.prerequisite_id`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, CourseStatusActive)
	if err := observe("select", "prerequisites", start, err); err != nil {
		return nil, fmt.Errorf("failed to load prerequisite edges: %w", err)
	}
	defer closeWithLog(rows, "rows")

	edges := []recommend.PrerequisiteEdge{}
	for rows.Next() {
		var (
			e        recommend.PrerequisiteEdge
			prereqID int64
			typeName string
		)
		if err := rows.Scan(&e.CourseCode, &prereqID, &e.PrerequisiteCode, &e.MinimumGrade, &typeName); err != nil {
			return nil, fmt.Errorf("failed to scan prerequisite edge: %w", err)
		}
		t, err := recommend.ParseEdgeType(typeName)
		if err != nil {
			return nil, &recommend.ContractError{
				Record: "prerequisite_edge",
				Key:    e.CourseCode + "->" + e.PrerequisiteCode,
				Field:  "type",
				Reason: err.Error(),
			}
		}
		e.Type = t
		e.PrerequisiteCourseID = strconv.FormatInt(prereqID, 10)
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prerequisite edges: %w", err)
	}
	return edges, nil
}

// ListDepartments returns departments with their active course counts,
// ordered by name.
func (db *DB) ListDepartments(ctx context.Context) ([]Department, error) {
	if db.closed.Load() {
		return nil, ErrDatabaseClosed
	}
	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	query := `
		SELECT
			d.department_id,
			d.department_code,
			d.department_name,
			COALESCE(d.department_type, ''),
			COUNT(c.course_id)
		FROM departments d
		LEFT JOIN courses c ON c.department_id = d.department_id AND c.status = ?
		GROUP BY d.department_id, d.department_code, d.department_name, d.department_type
		ORDER BY d.department_name`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, CourseStatusActive)
	if err := observe("select", "departments", start, err); err != nil {
		return nil, fmt.Errorf("failed to load departments: %w", err)
	}
	defer closeWithLog(rows, "rows")

	departments := []Department{}
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Code, &d.Name, &d.Type, &d.CourseCount); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate departments: %w", err)
	}
	return departments, nil
}
