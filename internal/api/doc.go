// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

/*
Package api provides the HTTP surface of Coursepath.

Routes are served by a Chi router:

	GET  /health                                      service health
	GET  /metrics                                     Prometheus scrape endpoint
	GET  /api/v1/health                               same as /health
	GET  /api/v1/students/{id}/recommendations        run the pipeline
	POST /api/v1/students/{id}/recommendations        run with preference overrides
	GET  /api/v1/students/{id}/recommendations/latest last stored payload
	GET  /api/v1/students/{id}/candidates?k=          scored candidate list
	GET  /api/v1/students/{id}/runs?limit=            execution run log
	GET  /api/v1/students/{id}/history                graded course attempts
	GET  /api/v1/courses?department=&limit=&offset=   active catalog
	GET  /api/v1/departments                          departments with course counts

Every response uses the models.APIResponse envelope. Engine errors are
mapped to status codes in respondEngineError:

  - invalid request parameters: 400 VALIDATION_ERROR
  - unknown student: 404 NOT_FOUND
  - malformed stored records: 422 DATA_CONTRACT_VIOLATION
  - open circuit breaker: 503 SERVICE_UNAVAILABLE
  - handler timeout: 504 REQUEST_TIMEOUT
  - anything else: 500 INTERNAL_ERROR

Routes under /api/v1 pass through auth.Middleware, which is a no-op unless
the security auth mode is "jwt".
*/
package api
