// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package recommend

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/goccy/go-json"
)

func sampleCatalog() []Course {
	return []Course{
		{ID: "1", Code: "FIN 201", Name: "Principles of Finance", Description: "time value of money", Department: "Finance", Credits: 3, DifficultyLevel: 1},
		corporateFinance(),
		{ID: "3", Code: "FIN 410", Name: "Mergers and Acquisitions", Description: "deal valuation and investment banking", Department: "Finance", Credits: 3, DifficultyLevel: 3, PrerequisiteIDs: []string{"301"}},
		{ID: "4", Code: "ART 110", Name: "Drawing", Description: "figure studies", Department: "Art", Credits: 2, DifficultyLevel: 1},
	}
}

func sampleEdges() []PrerequisiteEdge {
	return []PrerequisiteEdge{
		edge("FIN 410", "FIN 301", EdgeHard),
		edge("FIN 301", "FIN 201", EdgeHard),
	}
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	p, err := NewPipeline(DefaultConfig())
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	out, err := p.Run(context.Background(), &Inputs{
		Profile:   financeStudent(),
		Catalog:   sampleCatalog(),
		Completed: []string{"FIN 201"},
		Edges:     sampleEdges(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	payload := out.Payload
	// FIN 201 is completed and must not appear even though it ranks in the top K.
	for _, rec := range payload.Recommendations {
		if rec.CourseCode == "FIN 201" {
			t.Errorf("completed course FIN 201 was recommended")
		}
	}
	if payload.TotalRecommendations != len(payload.Recommendations) {
		t.Errorf("TotalRecommendations = %d, want %d", payload.TotalRecommendations, len(payload.Recommendations))
	}
	for i, rec := range payload.Recommendations {
		if rec.Rank != i+1 {
			t.Errorf("Recommendations[%d].Rank = %d, want %d", i, rec.Rank, i+1)
		}
	}

	byCode := map[string]Recommendation{}
	for _, rec := range payload.Recommendations {
		byCode[rec.CourseCode] = rec
	}
	if rec := byCode["FIN 301"]; rec.EligibilityStatus != StatusEligible {
		t.Errorf("FIN 301 status = %s, want eligible", rec.EligibilityStatus)
	}
	if rec := byCode["FIN 410"]; rec.EligibilityStatus != StatusPrerequisitesNeeded || !equalStrings(rec.MissingPrerequisites, []string{"FIN 301"}) {
		t.Errorf("FIN 410 = %+v, want blocked on FIN 301", rec)
	}
	if len(payload.PrerequisitesToPrioritize) != 1 || payload.PrerequisitesToPrioritize[0].Reason != "Required for FIN 410" {
		t.Errorf("PrerequisitesToPrioritize = %+v", payload.PrerequisitesToPrioritize)
	}
	if len(out.Candidates) != 4 {
		t.Errorf("Candidates = %d, want 4", len(out.Candidates))
	}
}

func TestPipeline_AllCompletedYieldsEmptyPayload(t *testing.T) {
	t.Parallel()

	p, _ := NewPipeline(DefaultConfig())
	out, err := p.Run(context.Background(), &Inputs{
		Profile:   financeStudent(),
		Catalog:   sampleCatalog(),
		Completed: []string{"FIN 201", "FIN 301", "FIN 410", "ART 110"},
		Edges:     sampleEdges(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := json.Marshal(out.Payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"recommendations":[],"total_recommendations":0,"prerequisites_to_prioritize":[]}`
	if string(data) != want {
		t.Errorf("payload = %s, want %s", data, want)
	}
}

func TestPipeline_ContractErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		modify     func(*Inputs)
		wantRecord string
		wantField  string
	}{
		{"missing profile", func(in *Inputs) { in.Profile = nil }, "profile", "student"},
		{"bad difficulty preference", func(in *Inputs) { in.Profile.PreferredDifficulty = 0 }, "profile", "preferred_difficulty"},
		{"blank interest", func(in *Inputs) { in.Profile.Interests = []string{"finance", " "} }, "profile", "interests[1]"},
		{"course without name", func(in *Inputs) { in.Catalog[2].Name = "" }, "course", "course_name"},
		{"course without department", func(in *Inputs) { in.Catalog[0].Department = "" }, "course", "department"},
		{"course with zero difficulty", func(in *Inputs) { in.Catalog[1].DifficultyLevel = 0 }, "course", "difficulty_level"},
		{"edge without prerequisite", func(in *Inputs) { in.Edges[0].PrerequisiteCode = "" }, "prerequisite_edge", "prerequisite_course_code"},
		{"edge with unknown type", func(in *Inputs) { in.Edges[1].Type = EdgeType(7) }, "prerequisite_edge", "type"},
		{"blank completed code", func(in *Inputs) { in.Completed = []string{""} }, "completed_course", "course_code"},
	}

	p, _ := NewPipeline(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := &Inputs{Profile: financeStudent(), Catalog: sampleCatalog(), Edges: sampleEdges()}
			tt.modify(in)

			_, err := p.Run(context.Background(), in)

			var se *StageError
			if !errors.As(err, &se) {
				t.Fatalf("error = %v, want *StageError", err)
			}
			if se.Stage != StageValidate {
				t.Errorf("Stage = %s, want %s", se.Stage, StageValidate)
			}
			var ce *ContractError
			if !errors.As(err, &ce) {
				t.Fatalf("error = %v, want *ContractError", err)
			}
			if ce.Record != tt.wantRecord || ce.Field != tt.wantField {
				t.Errorf("ContractError = %+v, want record %s field %s", ce, tt.wantRecord, tt.wantField)
			}
		})
	}
}

func TestPipeline_ScoreAllPreservesOrder(t *testing.T) {
	t.Parallel()

	for _, workers := range []int{1, 3, 8, 64} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			cfg.Workers = workers
			p, err := NewPipeline(cfg)
			if err != nil {
				t.Fatalf("NewPipeline() error = %v", err)
			}

			catalog := make([]Course, 37)
			for i := range catalog {
				catalog[i] = Course{
					ID:              fmt.Sprint(i),
					Code:            fmt.Sprintf("C %03d", i),
					Name:            "Course",
					Department:      "Dept",
					DifficultyLevel: 1 + i%5,
				}
			}

			got, err := p.ScoreAll(context.Background(), financeStudent(), catalog)
			if err != nil {
				t.Fatalf("ScoreAll() error = %v", err)
			}
			s := p.Scorer()
			for i := range catalog {
				if got[i].Code != catalog[i].Code {
					t.Fatalf("got[%d] = %s, want %s", i, got[i].Code, catalog[i].Code)
				}
				if want := s.Score(catalog[i], financeStudent()).RelevanceScore; got[i].RelevanceScore != want {
					t.Errorf("got[%d] score = %v, want %v", i, got[i].RelevanceScore, want)
				}
			}
		})
	}
}

func TestPipeline_ScoreAllCancelled(t *testing.T) {
	t.Parallel()

	p, _ := NewPipeline(DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.ScoreAll(ctx, financeStudent(), sampleCatalog())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ScoreAll() error = %v, want context.Canceled", err)
	}
}

func TestPipeline_ShortlistCut(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Limits.ShortlistK = 2
	cfg.Limits.CandidateK = 3
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	out, err := p.Run(context.Background(), &Inputs{Profile: financeStudent(), Catalog: sampleCatalog()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out.Candidates) != 3 {
		t.Errorf("Candidates = %d, want 3", len(out.Candidates))
	}
	if out.Payload.TotalRecommendations != 2 {
		t.Errorf("TotalRecommendations = %d, want 2", out.Payload.TotalRecommendations)
	}
}
