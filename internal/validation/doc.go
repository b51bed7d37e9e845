// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

// Package validation wraps a shared go-playground/validator v10 instance.
//
// It checks two kinds of input: the catalog, profile and prerequisite
// records that feed the recommendation pipeline, and the query parameters
// of the HTTP API. Field names in messages use the json tag of the field,
// so errors read the same way the payloads do:
//
//	type CandidatesParams struct {
//	    StudentID int `json:"student_id" validate:"gt=0"`
//	    K         int `json:"k" validate:"min=0,max=100"`
//	}
//
//	if verr := validation.ValidateStruct(&p); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    ...
//	}
//
// The non-standard notblank validator is registered, so required text
// fields reject whitespace-only values.
package validation
