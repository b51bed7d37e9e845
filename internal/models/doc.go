// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

/*
Package models defines the HTTP request and response shapes.

Every endpoint answers with an APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "2025-09-01T12:00:00Z", "query_time_ms": 12}
	}

Errors use the same envelope with status "error" and an APIError. Domain
records (courses, payloads, run logs) are defined in the recommend and
database packages and placed in Data as-is.
*/
package models
