// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package recommend

import (
	"math"
	"testing"
)

func corporateFinance() Course {
	return Course{
		ID:              "301",
		Code:            "FIN 301",
		Name:            "Corporate Finance",
		Description:     "valuation and mergers",
		Department:      "Finance",
		Credits:         3,
		DifficultyLevel: 2,
		PrerequisiteIDs: []string{},
	}
}

func financeStudent() *StudentProfile {
	return &StudentProfile{
		StudentID:           1,
		Interests:           []string{"finance"},
		CareerGoal:          "investment banking",
		PreferredDifficulty: 2,
		StrongSubjects:      []string{"Finance"},
	}
}

func TestScorer_WorkedExample(t *testing.T) {
	t.Parallel()

	s := NewScorer(DefaultConfig())
	got := s.Score(corporateFinance(), financeStudent())

	// 40 interest + 21 generic career + 20 difficulty + 6 strong subject
	if got.RelevanceScore != 87 {
		t.Errorf("RelevanceScore = %v, want 87", got.RelevanceScore)
	}
	want := "Aligns with interest in 'finance'. " +
		"Contains general keywords relevant to career goals. " +
		"Difficulty level matches preferred difficulty. " +
		"Builds on strong subject 'Finance'."
	if got.MatchReasoning != want {
		t.Errorf("MatchReasoning = %q, want %q", got.MatchReasoning, want)
	}
	if got.Code != "FIN 301" {
		t.Errorf("Course not carried through: %+v", got.Course)
	}
}

func TestScorer_CareerGoalSubstringTakesPrecedence(t *testing.T) {
	t.Parallel()

	course := corporateFinance()
	course.Description = "valuation, mergers and investment banking practice"

	got := NewScorer(DefaultConfig()).Score(course, financeStudent())
	if got.RelevanceScore != 96 {
		t.Errorf("RelevanceScore = %v, want 96", got.RelevanceScore)
	}
	b := NewScorer(DefaultConfig()).Explain(course, financeStudent())
	if b.Career != 1.0 {
		t.Errorf("Career = %v, want 1.0", b.Career)
	}
}

func TestScorer_DifficultyTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		courseLevel int
		preferred   int
		want        float64
	}{
		{3, 3, 20},
		{4, 3, 14},
		{1, 2, 14},
		{5, 3, 8},
		{6, 3, 2},
		{7, 3, 2},
		{1, 9, 2},
	}

	s := NewScorer(DefaultConfig())
	for _, tt := range tests {
		course := Course{ID: "1", Code: "X 1", Name: "Pottery", Department: "Art", DifficultyLevel: tt.courseLevel}
		profile := &StudentProfile{StudentID: 1, PreferredDifficulty: tt.preferred}

		got := s.Score(course, profile)
		if got.RelevanceScore != tt.want {
			t.Errorf("course %d vs preferred %d: score = %v, want %v",
				tt.courseLevel, tt.preferred, got.RelevanceScore, tt.want)
		}
	}
}

func TestScorer_DegenerateProfiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*StudentProfile)
		want   float64
	}{
		{
			name:   "empty interests contribute zero",
			modify: func(p *StudentProfile) { p.Interests = nil },
			want:   47,
		},
		{
			name:   "empty career goal contributes zero",
			modify: func(p *StudentProfile) { p.CareerGoal = "" },
			want:   66,
		},
		{
			name:   "whitespace career goal contributes zero",
			modify: func(p *StudentProfile) { p.CareerGoal = "   " },
			want:   66,
		},
		{
			name:   "no strong subjects",
			modify: func(p *StudentProfile) { p.StrongSubjects = nil },
			want:   81,
		},
		{
			name:   "major found in course text",
			modify: func(p *StudentProfile) { p.Major = "Finance" },
			want:   91,
		},
		{
			name:   "major not in course text",
			modify: func(p *StudentProfile) { p.Major = "Biology" },
			want:   87,
		},
		{
			name: "half of interests match",
			modify: func(p *StudentProfile) {
				p.Interests = []string{"finance", "poetry"}
			},
			want: 67,
		},
		{
			name:   "interest match is case-insensitive",
			modify: func(p *StudentProfile) { p.Interests = []string{"MERGERS"} },
			want:   87,
		},
		{
			name:   "strong subject match is case-insensitive",
			modify: func(p *StudentProfile) { p.StrongSubjects = []string{"finance"} },
			want:   87,
		},
	}

	s := NewScorer(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := financeStudent()
			tt.modify(p)
			got := s.Score(corporateFinance(), p)
			if got.RelevanceScore != tt.want {
				t.Errorf("RelevanceScore = %v, want %v (%s)", got.RelevanceScore, tt.want, got.MatchReasoning)
			}
		})
	}
}

func TestScorer_MaximumIsOneHundred(t *testing.T) {
	t.Parallel()

	course := corporateFinance()
	course.Description = "valuation for investment banking"
	p := financeStudent()
	p.Major = "Finance"

	got := NewScorer(DefaultConfig()).Score(course, p)
	if got.RelevanceScore != 100 {
		t.Errorf("RelevanceScore = %v, want 100", got.RelevanceScore)
	}
}

func TestScorer_ReasoningIsDeduplicatedInOrder(t *testing.T) {
	t.Parallel()

	p := financeStudent()
	p.Interests = []string{"finance", "mergers", "finance"}
	p.StrongSubjects = nil

	got := NewScorer(DefaultConfig()).Score(corporateFinance(), p)
	want := "Aligns with interest in 'finance'. " +
		"Aligns with interest in 'mergers'. " +
		"Contains general keywords relevant to career goals. " +
		"Difficulty level matches preferred difficulty."
	if got.MatchReasoning != want {
		t.Errorf("MatchReasoning = %q, want %q", got.MatchReasoning, want)
	}
	if got.RelevanceScore != 81 {
		t.Errorf("RelevanceScore = %v, want 81", got.RelevanceScore)
	}
}

func TestScorer_NoCareerKeywordMatch(t *testing.T) {
	t.Parallel()

	course := Course{ID: "9", Code: "ART 110", Name: "Drawing", Description: "figure studies", Department: "Art", DifficultyLevel: 1}
	p := &StudentProfile{StudentID: 1, CareerGoal: "illustrator", PreferredDifficulty: 1}

	b := NewScorer(DefaultConfig()).Explain(course, p)
	if b.Career != 0 {
		t.Errorf("Career = %v, want 0", b.Career)
	}
}

func TestScorer_CustomKeywords(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.CareerKeywords = []string{"Figure"}
	course := Course{ID: "9", Code: "ART 110", Name: "Drawing", Description: "figure studies", Department: "Art", DifficultyLevel: 1}
	p := &StudentProfile{StudentID: 1, CareerGoal: "illustrator", PreferredDifficulty: 1}

	b := NewScorer(cfg).Explain(course, p)
	if b.Career != 0.7 {
		t.Errorf("Career = %v, want 0.7", b.Career)
	}
}

func TestRoundScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want float64
	}{
		{-3, 0},
		{0, 0},
		{33.333333, 33.33},
		{66.666666, 66.67},
		{100.0001, 100},
		{250, 100},
	}
	for _, tt := range tests {
		if got := roundScore(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("roundScore(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
