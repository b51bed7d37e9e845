// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/coursepath/internal/database"
	"github.com/tomtom215/coursepath/internal/logging"
	"github.com/tomtom215/coursepath/internal/middleware"
	"github.com/tomtom215/coursepath/internal/models"
	"github.com/tomtom215/coursepath/internal/recommend"
	"github.com/tomtom215/coursepath/internal/validation"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 64 << 10

// sanitizeLogValue escapes control characters so user input cannot forge log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, data interface{}, start time.Time) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			RequestID:   middleware.GetRequestID(r.Context()),
		},
	})
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().
			Str("code", sanitizeLogValue(code)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status:   models.StatusError,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// respondValidationError sends a 400 built from a validator failure.
func respondValidationError(w http.ResponseWriter, apiErr *models.APIError) {
	respondJSON(w, http.StatusBadRequest, &models.APIResponse{
		Status:   models.StatusError,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    apiErr,
	})
}

// respondEngineError maps an engine or store error to a status code.
func respondEngineError(w http.ResponseWriter, err error) {
	var ce *recommend.ContractError
	switch {
	case errors.Is(err, recommend.ErrStudentNotFound):
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Student not found", nil)
	case errors.As(err, &ce) && ce.Record == "request":
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   models.StatusError,
			Metadata: models.Metadata{Timestamp: time.Now().UTC()},
			Error: &models.APIError{
				Code:    models.ErrCodeValidation,
				Message: ce.Reason,
				Details: map[string]interface{}{"field": ce.Field},
			},
		})
	case errors.As(err, &ce):
		logging.Warn().Str("error", sanitizeLogValue(err.Error())).Msg("Data contract violation")
		respondJSON(w, http.StatusUnprocessableEntity, &models.APIResponse{
			Status:   models.StatusError,
			Metadata: models.Metadata{Timestamp: time.Now().UTC()},
			Error: &models.APIError{
				Code:    models.ErrCodeDataContract,
				Message: ce.Error(),
				Details: map[string]interface{}{
					"record": ce.Record,
					"key":    ce.Key,
					"field":  ce.Field,
				},
			},
		})
	case database.IsUnavailable(err):
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeUnavailable,
			"Data source temporarily unavailable", err)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, models.ErrCodeRequestTimeout, "Request timed out", err)
	default:
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to process request", err)
	}
}

// validateRequest validates a struct using go-playground/validator.
func validateRequest(v interface{}) *models.APIError {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return nil
	}
	apiErr := verr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// studentIDParam parses the {id} URL parameter.
func studentIDParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid student id %q", raw)
	}
	return id, nil
}

// intQueryParam parses an optional integer query parameter. ok is false
// when the parameter is present but not an integer.
func intQueryParam(r *http.Request, key string, defaultValue int) (value int, ok bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultValue, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// decodeBody reads an optional JSON body into dst. An empty body is not an error.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}
