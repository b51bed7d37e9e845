// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

/*
Package metrics provides Prometheus instrumentation.

Metrics are registered with the default registry through promauto and
exposed at /metrics by the API router.

# Available Metrics

Recommendation:
  - recommend_runs_total{operation, status}
  - recommend_run_duration_seconds{operation}
  - recommend_recommendations_returned (histogram)
  - recommend_prerequisites_prioritized (histogram)

Database:
  - db_query_duration_seconds{operation, table}
  - db_query_errors_total{operation, table, error_type}

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests

Catalog cache:
  - cache_hits_total{cache_type}, cache_misses_total{cache_type}
  - cache_entries{cache_type}, cache_refreshes_total{result}

Circuit breaker:
  - circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

Events and reports:
  - events_published_total{topic, result}
  - events_handled_total{topic, result}
  - reports_stored_total{result}
*/
package metrics
