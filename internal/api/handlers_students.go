// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/coursepath/internal/auth"
	"github.com/tomtom215/coursepath/internal/middleware"
	"github.com/tomtom215/coursepath/internal/models"
	"github.com/tomtom215/coursepath/internal/recommend"
	"github.com/tomtom215/coursepath/internal/reports"
)

// Recommendations handles GET and POST /api/v1/students/{id}/recommendations.
// A POST body may carry preference overrides for this run only.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	studentID, err := studentIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}

	var body models.RecommendationRequest
	if r.Method == http.MethodPost {
		if err := decodeBody(w, r, &body); err != nil {
			respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Invalid request body", err)
			return
		}
		if apiErr := validateRequest(&body); apiErr != nil {
			respondValidationError(w, apiErr)
			return
		}
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	req := recommend.Request{
		StudentID:   studentID,
		Preferences: body.Preferences,
		RequestID:   middleware.GetRequestID(r.Context()),
	}
	if claims := auth.GetClaims(r.Context()); claims != nil {
		req.RequestedBy = claims.Username
	}
	payload, err := h.engine.Recommend(ctx, req)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondSuccess(w, r, payload, start)
}

// Candidates handles GET /api/v1/students/{id}/candidates?k=.
func (h *Handler) Candidates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	studentID, err := studentIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}

	k, ok := intQueryParam(r, "k", 0)
	if !ok {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "k must be an integer", nil)
		return
	}
	req := CandidatesRequest{StudentID: studentID, K: k}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}
	maxK := h.engine.Config().Limits.MaxK
	if r.URL.Query().Has("k") && (req.K < 1 || req.K > maxK) {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation,
			fmt.Sprintf("k must be between 1 and %d", maxK), nil)
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	list, err := h.engine.Candidates(ctx, req.StudentID, req.K)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondSuccess(w, r, list, start)
}

// Runs handles GET /api/v1/students/{id}/runs?limit=, newest first.
func (h *Handler) Runs(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	studentID, err := studentIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}
	limit, ok := intQueryParam(r, "limit", defaultRunLimit)
	if !ok {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "limit must be an integer", nil)
		return
	}
	req := RunsRequest{StudentID: studentID, Limit: limit}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	runs, err := h.store.ListRunLogs(r.Context(), req.StudentID, req.Limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeDatabase, "Failed to load run log", err)
		return
	}

	respondSuccess(w, r, map[string]interface{}{
		"student_id": req.StudentID,
		"runs":       runs,
		"count":      len(runs),
	}, start)
}

// History handles GET /api/v1/students/{id}/history: every graded attempt,
// failed and withdrawn ones included.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	studentID, err := studentIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	profile, err := h.store.GetStudentProfile(ctx, studentID)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	history, err := h.store.GetAcademicHistory(ctx, studentID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeDatabase, "Failed to load academic history", err)
		return
	}

	credits := 0
	for _, entry := range history {
		credits += entry.CreditHours
	}
	respondSuccess(w, r, map[string]interface{}{
		"student_id":        profile.StudentID,
		"major":             profile.Major,
		"gpa":               profile.GPA,
		"history":           history,
		"count":             len(history),
		"credits_attempted": credits,
	}, start)
}

// LatestReport handles GET /api/v1/students/{id}/recommendations/latest.
func (h *Handler) LatestReport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	studentID, err := studentIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}
	if h.reports == nil {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Report storage is disabled", nil)
		return
	}

	report, err := h.reports.Latest(r.Context(), studentID)
	if errors.Is(err, reports.ErrNotFound) {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "No stored recommendations for student", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to load report", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data:   report,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      true,
			RequestID:   middleware.GetRequestID(r.Context()),
		},
	})
}
