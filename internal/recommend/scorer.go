// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package recommend

import (
	"fmt"
	"math"
	"strings"
)

// difficultyScores maps |course - preferred| to a sub-score; the last
// entry applies to every larger distance.
var difficultyScores = []struct {
	score  float64
	phrase string
}{
	{1.0, "Difficulty level matches preferred difficulty."},
	{0.7, "Difficulty level is close to preferred difficulty."},
	{0.4, "Difficulty level is somewhat different from preferred difficulty."},
	{0.1, "Difficulty level is significantly different from preferred difficulty."},
}

const (
	careerGenericScore = 0.7
	strongSubjectScore = 0.6
	majorScore         = 0.4
)

// Scorer computes relevance scores. It holds no mutable state and is safe
// for concurrent use.
type Scorer struct {
	weights  Weights
	keywords []string
}

// NewScorer creates a scorer from the weights and keywords in cfg.
func NewScorer(cfg *Config) *Scorer {
	keywords := make([]string, len(cfg.CareerKeywords))
	for i, kw := range cfg.CareerKeywords {
		keywords[i] = strings.ToLower(kw)
	}
	return &Scorer{weights: cfg.Weights, keywords: keywords}
}

// Breakdown holds the unweighted sub-scores of one course, each in [0, 1].
type Breakdown struct {
	Interest   float64 `json:"interest"`
	Career     float64 `json:"career"`
	Difficulty float64 `json:"difficulty"`
	Strategic  float64 `json:"strategic"`
}

// Score rates course against profile.
//
//nolint:gocritic // hugeParam: course passed by value, it is copied into the result
func (s *Scorer) Score(course Course, profile *StudentProfile) ScoredCourse {
	total, _, reasons := s.evaluate(&course, profile)
	return ScoredCourse{
		Course:         course,
		RelevanceScore: total,
		MatchReasoning: reasons.String(),
	}
}

// Explain returns the sub-scores behind Score.
//
//nolint:gocritic // hugeParam: mirrors Score
func (s *Scorer) Explain(course Course, profile *StudentProfile) Breakdown {
	_, b, _ := s.evaluate(&course, profile)
	return b
}

func (s *Scorer) evaluate(course *Course, profile *StudentProfile) (float64, Breakdown, *reasonList) {
	haystack := strings.ToLower(course.Name + " " + course.Description + " " + course.Department)
	reasons := newReasonList()
	var b Breakdown

	if len(profile.Interests) > 0 {
		matches := 0
		for _, interest := range profile.Interests {
			if strings.Contains(haystack, strings.ToLower(interest)) {
				matches++
				reasons.add(fmt.Sprintf("Aligns with interest in '%s'.", interest))
			}
		}
		b.Interest = float64(matches) / float64(len(profile.Interests))
	}

	if goal := strings.TrimSpace(profile.CareerGoal); goal != "" {
		switch {
		case strings.Contains(haystack, strings.ToLower(goal)):
			b.Career = 1.0
			reasons.add(fmt.Sprintf("Highly relevant for career goal of '%s'.", profile.CareerGoal))
		case s.hasKeyword(haystack):
			b.Career = careerGenericScore
			reasons.add("Contains general keywords relevant to career goals.")
		}
	}

	d := course.DifficultyLevel - profile.PreferredDifficulty
	if d < 0 {
		d = -d
	}
	if d >= len(difficultyScores) {
		d = len(difficultyScores) - 1
	}
	b.Difficulty = difficultyScores[d].score
	reasons.add(difficultyScores[d].phrase)

	if containsFold(profile.StrongSubjects, course.Department) {
		b.Strategic += strongSubjectScore
		reasons.add(fmt.Sprintf("Builds on strong subject '%s'.", course.Department))
	}
	if major := strings.TrimSpace(profile.Major); major != "" && strings.Contains(haystack, strings.ToLower(major)) {
		b.Strategic += majorScore
		reasons.add(fmt.Sprintf("Relevant to student's major in '%s'.", profile.Major))
	}

	total := b.Interest*s.weights.Interest +
		b.Career*s.weights.Career +
		b.Difficulty*s.weights.Difficulty +
		b.Strategic*s.weights.Strategic

	return roundScore(total), b, reasons
}

func (s *Scorer) hasKeyword(haystack string) bool {
	for _, kw := range s.keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// roundScore clamps to [0, 100] and rounds half away from zero to 2 places.
func roundScore(v float64) float64 {
	v = math.Max(0, math.Min(v, 100))
	return math.Round(v*100) / 100
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return true
		}
	}
	return false
}

// reasonList is an insertion-ordered set of justification sentences.
type reasonList struct {
	seen  map[string]struct{}
	items []string
}

func newReasonList() *reasonList {
	return &reasonList{seen: make(map[string]struct{})}
}

func (r *reasonList) add(sentence string) {
	if _, ok := r.seen[sentence]; ok {
		return
	}
	r.seen[sentence] = struct{}{}
	r.items = append(r.items, sentence)
}

func (r *reasonList) String() string {
	return strings.Join(r.items, " ")
}
