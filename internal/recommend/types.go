// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package recommend

import (
	"fmt"
	"strings"
	"time"
)

// EdgeType classifies a prerequisite relationship.
type EdgeType int

const (
	// EdgeHard must be completed before the course can be taken.
	EdgeHard EdgeType = iota
	// EdgeRecommended is advised but not enforced by the registrar.
	EdgeRecommended
	// EdgeCorequisite may be taken in the same term.
	EdgeCorequisite
)

// AllEdgeTypes lists every edge type in declaration order.
var AllEdgeTypes = []EdgeType{EdgeHard, EdgeRecommended, EdgeCorequisite}

// String returns the catalog spelling of the type.
func (t EdgeType) String() string {
	switch t {
	case EdgeHard:
		return "Hard"
	case EdgeRecommended:
		return "Recommended"
	case EdgeCorequisite:
		return "Co-requisite"
	default:
		return "unknown"
	}
}

// ParseEdgeType accepts the catalog spelling case-insensitively, with or
// without the hyphen in Co-requisite.
func ParseEdgeType(s string) (EdgeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hard", "required":
		return EdgeHard, nil
	case "recommended":
		return EdgeRecommended, nil
	case "co-requisite", "corequisite":
		return EdgeCorequisite, nil
	default:
		return 0, fmt.Errorf("unknown prerequisite type %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t EdgeType) MarshalText() ([]byte, error) {
	if t < EdgeHard || t > EdgeCorequisite {
		return nil, fmt.Errorf("invalid edge type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *EdgeType) UnmarshalText(b []byte) error {
	parsed, err := ParseEdgeType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// EligibilityStatus is the outcome of prerequisite resolution for one course.
type EligibilityStatus string

const (
	StatusEligible            EligibilityStatus = "eligible"
	StatusPrerequisitesNeeded EligibilityStatus = "prerequisites_needed"
)

// StudentProfile is everything the scorer knows about a student.
// GPA, Classification and AcademicStanding are display-only.
type StudentProfile struct {
	StudentID           int      `json:"student_id" validate:"gt=0"`
	FirstName           string   `json:"first_name,omitempty"`
	LastName            string   `json:"last_name,omitempty"`
	Email               string   `json:"email,omitempty" validate:"omitempty,email"`
	Interests           []string `json:"interests" validate:"omitempty,dive,notblank"`
	CareerGoal          string   `json:"career_goals"`
	PreferredDifficulty int      `json:"preferred_difficulty" validate:"gte=1"`
	StrongSubjects      []string `json:"strong_subjects" validate:"omitempty,dive,notblank"`
	Major               string   `json:"major,omitempty"`
	GPA                 float64  `json:"gpa,omitempty"`
	Classification      string   `json:"classification,omitempty"`
	AcademicStanding    string   `json:"academic_standing,omitempty"`
}

// Preferences are the scoring inputs a caller may supply per request.
// Nil slices and zero values leave the stored profile untouched.
type Preferences struct {
	Interests           []string `json:"interests,omitempty" validate:"omitempty,dive,notblank"`
	CareerGoal          *string  `json:"career_goals,omitempty"`
	PreferredDifficulty int      `json:"preferred_difficulty,omitempty" validate:"gte=0"`
	StrongSubjects      []string `json:"strong_subjects,omitempty" validate:"omitempty,dive,notblank"`
}

// Apply returns a copy of p with the non-empty preferences applied.
func (pr *Preferences) Apply(p *StudentProfile) *StudentProfile {
	out := *p
	if pr == nil {
		return &out
	}
	if pr.Interests != nil {
		out.Interests = append([]string(nil), pr.Interests...)
	}
	if pr.CareerGoal != nil {
		out.CareerGoal = *pr.CareerGoal
	}
	if pr.PreferredDifficulty > 0 {
		out.PreferredDifficulty = pr.PreferredDifficulty
	}
	if pr.StrongSubjects != nil {
		out.StrongSubjects = append([]string(nil), pr.StrongSubjects...)
	}
	return &out
}

// Course is an active catalog entry. Treat as immutable once loaded.
type Course struct {
	ID              string   `json:"course_id" validate:"notblank"`
	Code            string   `json:"course_code" validate:"notblank"`
	Name            string   `json:"course_name" validate:"notblank"`
	Description     string   `json:"description"`
	Department      string   `json:"department" validate:"notblank"`
	Credits         int      `json:"credits" validate:"gte=0"`
	DifficultyLevel int      `json:"difficulty_level" validate:"gte=1"`
	Level           string   `json:"level,omitempty"`
	InstructionMode string   `json:"instruction_mode,omitempty"`
	PrerequisiteIDs []string `json:"prerequisites"`
}

// ScoredCourse is a Course with its relevance score and justification.
// Its JSON form is the scored-course output record.
type ScoredCourse struct {
	Course
	RelevanceScore float64 `json:"relevance_score"`
	MatchReasoning string  `json:"match_reasoning"`
}

// PrerequisiteEdge states that CourseCode requires PrerequisiteCode.
type PrerequisiteEdge struct {
	CourseCode           string   `json:"course_code" validate:"notblank"`
	PrerequisiteCourseID string   `json:"prerequisite_course_id,omitempty"`
	PrerequisiteCode     string   `json:"prerequisite_course_code" validate:"notblank"`
	MinimumGrade         string   `json:"minimum_grade,omitempty"`
	Type                 EdgeType `json:"type" validate:"gte=0,lte=2"`
}

// CompletedSet holds the codes of courses the student has passed.
type CompletedSet map[string]struct{}

// NewCompletedSet builds a set from course codes.
func NewCompletedSet(codes ...string) CompletedSet {
	s := make(CompletedSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether code is in the set. A nil set is empty.
func (s CompletedSet) Has(code string) bool {
	_, ok := s[code]
	return ok
}

// Recommendation is one ranked, resolved course in the final payload.
type Recommendation struct {
	Rank                 int               `json:"rank"`
	CourseID             string            `json:"course_id"`
	CourseCode           string            `json:"course_code"`
	CourseName           string            `json:"course_name"`
	Credits              int               `json:"credits"`
	DifficultyLevel      int               `json:"difficulty_level"`
	RelevanceScore       float64           `json:"relevance_score"`
	EligibilityStatus    EligibilityStatus `json:"eligibility_status"`
	MissingPrerequisites []string          `json:"missing_prerequisites"`
	RecommendationText   string            `json:"recommendation_text"`
	SuggestedSemester    string            `json:"suggested_semester"`
}

// PrioritizedPrerequisite is a prerequisite blocking at least one
// shortlisted course. Reason names the first course it blocked.
type PrioritizedPrerequisite struct {
	CourseCode string `json:"course_code"`
	Reason     string `json:"reason"`
}

// Request identifies a recommendation run.
type Request struct {
	StudentID   int          `json:"student_id" validate:"gt=0"`
	Preferences *Preferences `json:"preferences,omitempty"`

	// RequestID is generated when empty.
	RequestID string `json:"request_id,omitempty"`

	// RequestedBy is the authenticated caller, recorded in the run log input.
	RequestedBy string `json:"requested_by,omitempty"`
}

// Payload is the final recommendation output.
type Payload struct {
	Recommendations           []Recommendation          `json:"recommendations"`
	TotalRecommendations      int                       `json:"total_recommendations"`
	PrerequisitesToPrioritize []PrioritizedPrerequisite `json:"prerequisites_to_prioritize"`

	Student  *StudentProfile  `json:"student,omitempty"`
	Metadata *PayloadMetadata `json:"metadata,omitempty"`
}

// PayloadMetadata describes how a payload was produced.
type PayloadMetadata struct {
	RequestID        string    `json:"request_id"`
	CatalogSize      int       `json:"catalog_size"`
	CandidateCount   int       `json:"candidate_count"`
	ShortlistSize    int       `json:"shortlist_size"`
	CurrentTerm      string    `json:"current_term"`
	NextTerm         string    `json:"next_term"`
	GatingTypes      []string  `json:"gating_types"`
	QueryCount       int       `json:"query_count"`
	LatencyMS        int64     `json:"latency_ms"`
	GeneratedAt      time.Time `json:"generated_at"`
	ScoringLatencyMS int64     `json:"scoring_latency_ms"`
}

// CandidateList is the scored and ranked candidate output.
type CandidateList struct {
	StudentID int            `json:"student_id"`
	Courses   []ScoredCourse `json:"courses"`
	Total     int            `json:"total"`
}

// Metrics is a snapshot of engine counters.
type Metrics struct {
	Requests     int64         `json:"requests"`
	Errors       int64         `json:"errors"`
	EmptyResults int64         `json:"empty_results"`
	LastLatency  time.Duration `json:"last_latency"`
}
