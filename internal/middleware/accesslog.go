// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/coursepath/internal/logging"
)

// AccessLog writes one log line per request. 5xx responses log at warn,
// everything else at debug.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		event := logging.Ctx(r.Context()).Debug()
		if wrapper.statusCode >= http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Warn()
		}
		event.
			Str("method", r.Method).
			Str("route", RoutePattern(r)).
			Str("path", r.URL.Path).
			Int("status", wrapper.statusCode).
			Int("bytes", wrapper.bytes).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}
