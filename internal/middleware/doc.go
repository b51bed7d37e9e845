// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

/*
Package middleware provides HTTP middleware for the API router.

Key Components:

  - RequestID: reuses or generates an X-Request-ID and stores it in the
    request context and the logging context
  - PrometheusMetrics: request counts, latency and in-flight gauge, labeled
    by chi route pattern so path parameters do not explode cardinality
  - AccessLog: one structured log line per request

Order in the router:

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
