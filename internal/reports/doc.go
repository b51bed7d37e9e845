// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

// Package reports keeps the most recent successful recommendation payload
// for each student in BadgerDB, so clients can fetch the last result
// without re-running the engine.
package reports
