// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

// Package logging provides the process-wide zerolog logger for Coursepath.
//
// Initialize it once from main:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
// then log through the package helpers or a request-scoped logger:
//
//	logging.Info().Int("student_id", id).Msg("recommendation run started")
//	logging.Ctx(ctx).Warn().Err(err).Msg("catalog refresh failed")
//
// Adapters are provided for libraries that bring their own logging
// interface: NewSlogLogger for suture (via sutureslog) and
// NewWatermillLogger for the run-event router.
package logging
