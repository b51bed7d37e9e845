// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

/*
Package events carries finished engine runs over an in-process Watermill
bus.

The Publisher is registered as an engine RunObserver and publishes one
RunEvent per call:

	recommendation.completed  successful runs
	recommendation.failed     runs that returned an error

The Router consumes both topics. The run-log handler writes every event to
the agent_logs table; the report handler stores successful recommend
payloads as the student's latest report. Handlers are idempotent on run id,
so Watermill retries are harmless.
*/
package events
