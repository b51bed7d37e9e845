// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package api

// Defaults for omitted limit parameters.
const (
	defaultCourseLimit = 100
	defaultRunLimit    = 20
)

// CandidatesRequest holds the parameters of the candidates endpoint.
// K of 0 selects the engine's candidate cut; the upper bound is checked
// against the engine's MaxK at request time.
type CandidatesRequest struct {
	StudentID int `json:"student_id" validate:"gt=0"`
	K         int `json:"k" validate:"gte=0"`
}

// RunsRequest holds the parameters of the run log endpoint.
type RunsRequest struct {
	StudentID int `json:"student_id" validate:"gt=0"`
	Limit     int `json:"limit" validate:"min=1,max=200"`
}

// CoursesRequest holds the parameters of the catalog endpoint.
type CoursesRequest struct {
	Department string `json:"department" validate:"max=100"`
	Limit      int    `json:"limit" validate:"min=1,max=500"`
	Offset     int    `json:"offset" validate:"min=0,max=1000000"`
}
