// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package api

import (
	"context"
	"time"

	"github.com/tomtom215/coursepath/internal/cache"
	"github.com/tomtom215/coursepath/internal/database"
	"github.com/tomtom215/coursepath/internal/recommend"
	"github.com/tomtom215/coursepath/internal/reports"
)

// Version is reported by the health endpoint. It is set at link time.
var Version = "dev"

// Recommender runs the recommendation pipeline. *recommend.Engine implements it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Payload, error)
	Candidates(ctx context.Context, studentID, k int) (*recommend.CandidateList, error)
	Config() *recommend.Config
	Metrics() recommend.Metrics
}

// Store is the read side of the database used by the handlers.
// *database.DB implements it.
type Store interface {
	ListCourses(ctx context.Context, filter database.CourseFilter) ([]recommend.Course, error)
	ListDepartments(ctx context.Context) ([]database.Department, error)
	ListRunLogs(ctx context.Context, studentID, limit int) ([]database.RunLogEntry, error)
	GetStudentProfile(ctx context.Context, studentID int) (*recommend.StudentProfile, error)
	GetAcademicHistory(ctx context.Context, studentID int) ([]database.HistoryEntry, error)
	Ping(ctx context.Context) error
	Driver() string
}

// ReportReader returns the latest stored payload. *reports.Store implements it.
type ReportReader interface {
	Latest(ctx context.Context, studentID int) (*reports.Report, error)
}

// BreakerStater reports the data-provider breaker state.
// *database.BreakerProvider implements it.
type BreakerStater interface {
	State() string
}

// CacheStater reports catalog snapshot cache counters. *cache.Cache
// implements it.
type CacheStater interface {
	GetStats() cache.Stats
	HitRate() float64
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: health endpoint
//   - handlers_students.go: recommendations, candidates, runs, history and latest report
//   - handlers_courses.go: catalog and departments
type Handler struct {
	engine    Recommender
	store     Store
	reports   ReportReader
	breaker   BreakerStater
	catalog   CacheStater
	timeout   time.Duration
	startTime time.Time
}

// HandlerOption configures optional Handler dependencies.
type HandlerOption func(*Handler)

// WithReports enables the latest-report endpoint.
func WithReports(r ReportReader) HandlerOption {
	return func(h *Handler) {
		h.reports = r
	}
}

// WithBreaker reports the breaker state on the health endpoint.
func WithBreaker(b BreakerStater) HandlerOption {
	return func(h *Handler) {
		h.breaker = b
	}
}

// WithCatalogCache reports snapshot cache counters on the health endpoint.
func WithCatalogCache(c CacheStater) HandlerOption {
	return func(h *Handler) {
		h.catalog = c
	}
}

// WithTimeout bounds each engine call. Zero means no extra bound.
func WithTimeout(d time.Duration) HandlerOption {
	return func(h *Handler) {
		h.timeout = d
	}
}

// NewHandler creates a new API handler.
func NewHandler(engine Recommender, store Store, opts ...HandlerOption) *Handler {
	h := &Handler{
		engine:    engine,
		store:     store,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// requestContext applies the handler timeout to ctx.
func (h *Handler) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.timeout)
}
