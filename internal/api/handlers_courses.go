// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/coursepath/internal/database"
	"github.com/tomtom215/coursepath/internal/models"
)

// Courses handles GET /api/v1/courses?department=&limit=&offset=.
func (h *Handler) Courses(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, okLimit := intQueryParam(r, "limit", defaultCourseLimit)
	offset, okOffset := intQueryParam(r, "offset", 0)
	if !okLimit || !okOffset {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "limit and offset must be integers", nil)
		return
	}
	req := CoursesRequest{
		Department: strings.TrimSpace(r.URL.Query().Get("department")),
		Limit:      limit,
		Offset:     offset,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	// One extra row tells us whether another page exists.
	courses, err := h.store.ListCourses(r.Context(), database.CourseFilter{
		Department: req.Department,
		Limit:      req.Limit + 1,
		Offset:     req.Offset,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeDatabase, "Failed to load courses", err)
		return
	}
	hasMore := len(courses) > req.Limit
	if hasMore {
		courses = courses[:req.Limit]
	}

	respondSuccess(w, r, models.CourseList{
		Courses: courses,
		Total:   len(courses),
		Pagination: models.PaginationInfo{
			Limit:   req.Limit,
			Offset:  req.Offset,
			HasMore: hasMore,
		},
	}, start)
}

// Departments handles GET /api/v1/departments.
func (h *Handler) Departments(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	departments, err := h.store.ListDepartments(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeDatabase, "Failed to load departments", err)
		return
	}

	respondSuccess(w, r, departments, start)
}
