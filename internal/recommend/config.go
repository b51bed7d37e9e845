// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package recommend

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Config contains all configuration for the recommendation pipeline.
type Config struct {
	// Weights is the maximum contribution of each sub-score.
	Weights Weights `json:"weights"`

	// CareerKeywords trigger the generic career match when the student's
	// own career goal does not appear in the course text.
	CareerKeywords []string `json:"career_keywords"`

	// Limits holds the ranking cut-offs.
	Limits LimitsConfig `json:"limits"`

	// Terms are the suggested-semester labels.
	Terms Terms `json:"terms"`

	// Eligibility controls prerequisite gating.
	Eligibility EligibilityConfig `json:"eligibility"`

	// Workers bounds the scoring fan-out. Zero means GOMAXPROCS.
	Workers int `json:"workers"`
}

// Weights defines the maximum contribution of each sub-score to the 0-100 total.
type Weights struct {
	Interest   float64 `json:"interest"`
	Career     float64 `json:"career"`
	Difficulty float64 `json:"difficulty"`
	Strategic  float64 `json:"strategic"`
}

// Total returns the sum of all weights.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w Weights) Total() float64 {
	return w.Interest + w.Career + w.Difficulty + w.Strategic
}

// LimitsConfig holds ranking cut-offs.
type LimitsConfig struct {
	// CandidateK is the wide cut taken after scoring.
	CandidateK int `json:"candidate_k"`

	// ShortlistK is the number of candidates passed to eligibility resolution.
	ShortlistK int `json:"shortlist_k"`

	// MaxK caps caller-supplied K values on the candidate endpoint.
	MaxK int `json:"max_k"`
}

// Terms are the semester labels attached to recommendations.
type Terms struct {
	// Current is suggested for eligible courses.
	Current string `json:"current"`

	// Next is suggested for courses with missing prerequisites.
	Next string `json:"next"`
}

// EligibilityConfig controls which prerequisite edges block a course.
type EligibilityConfig struct {
	// GatingTypes lists the edge types that gate eligibility.
	// Edges of other types are ignored by the resolver.
	GatingTypes []EdgeType `json:"gating_types"`
}

// DefaultCareerKeywords are the finance and computer-science terms that
// earn the generic career match.
var DefaultCareerKeywords = []string{
	"finance", "financial", "investment", "investments", "banking", "corporate",
	"valuation", "mergers", "acquisitions",
	"computer science", "programming", "data structures", "algorithms",
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: Weights{
			Interest:   40,
			Career:     30,
			Difficulty: 20,
			Strategic:  10,
		},
		CareerKeywords: append([]string(nil), DefaultCareerKeywords...),
		Limits: LimitsConfig{
			CandidateK: 12,
			ShortlistK: 5,
			MaxK:       100,
		},
		Terms: Terms{
			Current: "Fall 2025",
			Next:    "Spring 2026",
		},
		Eligibility: EligibilityConfig{
			GatingTypes: append([]EdgeType(nil), AllEdgeTypes...),
		},
		Workers: runtime.GOMAXPROCS(0),
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	w := c.Weights
	if w.Interest < 0 || w.Career < 0 || w.Difficulty < 0 || w.Strategic < 0 {
		return fmt.Errorf("weights must be non-negative, got %+v", w)
	}
	if total := w.Total(); total > 100 {
		return fmt.Errorf("weights must sum to at most 100, got %.2f", total)
	}

	for i, kw := range c.CareerKeywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("career_keywords[%d] is blank", i)
		}
	}

	if c.Limits.CandidateK < 1 {
		return fmt.Errorf("limits.candidate_k must be positive, got %d", c.Limits.CandidateK)
	}
	if c.Limits.ShortlistK < 1 {
		return fmt.Errorf("limits.shortlist_k must be positive, got %d", c.Limits.ShortlistK)
	}
	if c.Limits.ShortlistK > c.Limits.CandidateK {
		return fmt.Errorf("limits.shortlist_k must be <= limits.candidate_k, got %d > %d",
			c.Limits.ShortlistK, c.Limits.CandidateK)
	}
	if c.Limits.MaxK < c.Limits.CandidateK {
		return fmt.Errorf("limits.max_k must be >= limits.candidate_k, got %d < %d",
			c.Limits.MaxK, c.Limits.CandidateK)
	}

	if strings.TrimSpace(c.Terms.Current) == "" {
		return errors.New("terms.current is required")
	}
	if strings.TrimSpace(c.Terms.Next) == "" {
		return errors.New("terms.next is required")
	}

	if len(c.Eligibility.GatingTypes) == 0 {
		return errors.New("eligibility.gating_types must not be empty")
	}
	for _, t := range c.Eligibility.GatingTypes {
		if t < EdgeHard || t > EdgeCorequisite {
			return fmt.Errorf("eligibility.gating_types contains invalid type %d", int(t))
		}
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.CareerKeywords = append([]string(nil), c.CareerKeywords...)
	out.Eligibility.GatingTypes = append([]EdgeType(nil), c.Eligibility.GatingTypes...)
	return &out
}

// GatingTypeNames returns the configured gating types as catalog strings.
func (c *Config) GatingTypeNames() []string {
	names := make([]string, len(c.Eligibility.GatingTypes))
	for i, t := range c.Eligibility.GatingTypes {
		names[i] = t.String()
	}
	return names
}
