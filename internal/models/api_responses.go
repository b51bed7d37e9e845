// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package models

import (
	"time"

	"github.com/tomtom215/coursepath/internal/recommend"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error codes returned in APIError.Code.
const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeDataContract   = "DATA_CONTRACT_VIOLATION"
	ErrCodeDatabase       = "DATABASE_ERROR"
	ErrCodeUnavailable    = "SERVICE_UNAVAILABLE"
	ErrCodeUnauthorized   = "AUTHENTICATION_ERROR"
	ErrCodeRateLimited    = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal       = "INTERNAL_ERROR"
	ErrCodeRequestTimeout = "REQUEST_TIMEOUT"
)

// APIResponse is the envelope for every HTTP response.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response timing. QueryTimeMS is 0 for cache hits.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is the machine-readable error body.
//
// Example:
//
//	{
//	  "code": "VALIDATION_ERROR",
//	  "message": "k must be between 1 and 100",
//	  "details": {"field": "k"}
//	}
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// PaginationInfo describes an offset page.
type PaginationInfo struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// RecommendationRequest is the optional body of
// POST /api/v1/students/{id}/recommendations.
type RecommendationRequest struct {
	Preferences *recommend.Preferences `json:"preferences,omitempty" validate:"omitempty"`
}

// CourseList is the body of GET /api/v1/courses.
type CourseList struct {
	Courses    []recommend.Course `json:"courses"`
	Total      int                `json:"total"`
	Pagination PaginationInfo     `json:"pagination"`
}

// HealthStatus is the body of GET /api/v1/health.
type HealthStatus struct {
	Status            string        `json:"status"`
	Version           string        `json:"version"`
	DatabaseConnected bool          `json:"database_connected"`
	DatabaseDriver    string        `json:"database_driver"`
	BreakerState      string        `json:"breaker_state,omitempty"`
	CatalogCache      *CacheHealth  `json:"catalog_cache,omitempty"`
	Engine            *EngineHealth `json:"engine,omitempty"`
	Uptime            float64       `json:"uptime"`
}

// EngineHealth holds the engine's run counters since startup.
type EngineHealth struct {
	Requests      int64   `json:"requests"`
	Errors        int64   `json:"errors"`
	EmptyResults  int64   `json:"empty_results"`
	LastLatencyMS float64 `json:"last_latency_ms"`
}

// CacheHealth summarizes the catalog snapshot cache.
type CacheHealth struct {
	Keys      int64   `json:"keys"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	HitRate   float64 `json:"hit_rate"`
}
