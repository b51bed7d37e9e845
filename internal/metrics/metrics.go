// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package metrics

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation Metrics
	RecommendRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_runs_total",
			Help: "Total number of engine runs",
		},
		[]string{"operation", "status"}, // operation: "recommend", "candidates"; status: "success", "error"
	)

	RecommendRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_run_duration_seconds",
			Help:    "Duration of engine runs in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)

	RecommendationsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_recommendations_returned",
			Help:    "Number of recommendations in each successful payload",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 8, 12},
		},
	)

	PrerequisitesPrioritized = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_prerequisites_prioritized",
			Help:    "Number of prioritized prerequisites in each successful payload",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of database query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Catalog Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "courses", "edges"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Number of records held in the cached snapshot",
		},
		[]string{"cache_type"},
	)

	CacheRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_refreshes_total",
			Help: "Total number of catalog snapshot refreshes",
		},
		[]string{"result"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of run events published",
		},
		[]string{"topic", "result"},
	)

	EventsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_handled_total",
			Help: "Total number of run events consumed",
		},
		[]string{"topic", "result"},
	)

	// Report Store Metrics
	ReportsStored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_stored_total",
			Help: "Total number of payload snapshots written",
		},
		[]string{"result"},
	)
)

// RecordDBQuery records a query's duration and, when err is non-nil, its class.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table, ErrorType(err)).Inc()
	}
}

// RecordAPIRequest records one HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCacheLookup records a snapshot cache hit or miss.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		CacheMisses.WithLabelValues(cacheType).Inc()
	}
}

// RecordCacheRefresh records a snapshot refresh and the resulting sizes.
func RecordCacheRefresh(courses, edges int, err error) {
	if err != nil {
		CacheRefreshes.WithLabelValues("error").Inc()
		return
	}
	CacheRefreshes.WithLabelValues("success").Inc()
	CacheSize.WithLabelValues("courses").Set(float64(courses))
	CacheSize.WithLabelValues("edges").Set(float64(edges))
}

// RecordEventPublished records a publish attempt.
func RecordEventPublished(topic string, err error) {
	EventsPublished.WithLabelValues(topic, resultLabel(err)).Inc()
}

// RecordEventHandled records a consumed event.
func RecordEventHandled(topic string, err error) {
	EventsHandled.WithLabelValues(topic, resultLabel(err)).Inc()
}

// RecordReportStored records a report store write.
func RecordReportStored(err error) {
	ReportsStored.WithLabelValues(resultLabel(err)).Inc()
}

// ErrorType maps an error to a low-cardinality label.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "no such table"), strings.Contains(msg, "does not exist"):
		return "schema"
	case strings.Contains(msg, "constraint"), strings.Contains(msg, "duplicate key"):
		return "constraint"
	case strings.Contains(msg, "database is closed"), strings.Contains(msg, "bad connection"),
		strings.Contains(msg, "database is locked"):
		return "connection"
	case strings.Contains(msg, "scan"), strings.Contains(msg, "converting"):
		return "scan"
	default:
		return "other"
	}
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
