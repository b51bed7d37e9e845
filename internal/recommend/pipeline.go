// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package recommend

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/coursepath/internal/validation"
)

// Inputs are the in-memory records for one run.
type Inputs struct {
	Profile   *StudentProfile
	Catalog   []Course
	Completed []string
	Edges     []PrerequisiteEdge
}

// Pipeline runs score, rank, resolve and assemble over in-memory inputs.
// It holds only immutable configuration and may be shared between goroutines.
type Pipeline struct {
	cfg      *Config
	scorer   *Scorer
	resolver *Resolver
}

// Outcome is the result of a pipeline run.
type Outcome struct {
	Payload    *Payload
	Candidates []ScoredCourse
	ScoreTime  time.Duration
}

// NewPipeline validates cfg and builds the stages.
func NewPipeline(cfg *Config) (*Pipeline, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg = cfg.Clone()
	return &Pipeline{
		cfg:      cfg,
		scorer:   NewScorer(cfg),
		resolver: NewResolver(cfg.Eligibility.GatingTypes),
	}, nil
}

// Scorer returns the pipeline's scorer.
func (p *Pipeline) Scorer() *Scorer {
	return p.scorer
}

// Run executes the full pipeline. Failures are returned as *StageError.
func (p *Pipeline) Run(ctx context.Context, in *Inputs) (*Outcome, error) {
	studentID := 0
	if in.Profile != nil {
		studentID = in.Profile.StudentID
	}

	if err := ValidateInputs(in); err != nil {
		return nil, stageErr(studentID, StageValidate, err)
	}

	start := time.Now()
	scored, err := p.ScoreAll(ctx, in.Profile, in.Catalog)
	if err != nil {
		return nil, stageErr(studentID, StageScore, err)
	}
	scoreTime := time.Since(start)

	candidates := Rank(scored, p.cfg.Limits.CandidateK)
	shortlist := candidates
	if len(shortlist) > p.cfg.Limits.ShortlistK {
		shortlist = shortlist[:p.cfg.Limits.ShortlistK]
	}

	resolution := p.resolver.Resolve(shortlist, NewCompletedSet(in.Completed...), in.Edges)
	recs := Assemble(resolution.Courses, in.Profile, p.cfg.Terms)

	return &Outcome{
		Payload: &Payload{
			Recommendations:           recs,
			TotalRecommendations:      len(recs),
			PrerequisitesToPrioritize: resolution.Prioritized,
		},
		Candidates: candidates,
		ScoreTime:  scoreTime,
	}, nil
}

// ScoreAll scores every course in catalog order. Work is split into
// contiguous chunks across at most Workers goroutines; each chunk writes
// only its own slots of the result slice.
func (p *Pipeline) ScoreAll(ctx context.Context, profile *StudentProfile, catalog []Course) ([]ScoredCourse, error) {
	scored := make([]ScoredCourse, len(catalog))
	if len(catalog) == 0 {
		return scored, nil
	}

	workers := p.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(catalog) {
		workers = len(catalog)
	}
	chunk := (len(catalog) + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for lo := 0; lo < len(catalog); lo += chunk {
		hi := min(lo+chunk, len(catalog))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				scored[i] = p.scorer.Score(catalog[i], profile)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("score catalog: %w", err)
	}
	return scored, nil
}

// ValidateInputs checks every record and returns the first violation as a
// *ContractError.
func ValidateInputs(in *Inputs) error {
	if in.Profile == nil {
		return &ContractError{Record: "profile", Key: "", Field: "student", Reason: "profile is required"}
	}
	if err := checkRecord("profile", strconv.Itoa(in.Profile.StudentID), in.Profile); err != nil {
		return err
	}

	for i := range in.Catalog {
		c := &in.Catalog[i]
		key := c.Code
		if strings.TrimSpace(key) == "" {
			key = "#" + strconv.Itoa(i)
		}
		if err := checkRecord("course", key, c); err != nil {
			return err
		}
	}

	for i := range in.Edges {
		e := &in.Edges[i]
		if err := checkRecord("prerequisite_edge", e.CourseCode+"->"+e.PrerequisiteCode, e); err != nil {
			return err
		}
	}

	for i, code := range in.Completed {
		if strings.TrimSpace(code) == "" {
			return &ContractError{
				Record: "completed_course",
				Key:    "#" + strconv.Itoa(i),
				Field:  "course_code",
				Reason: "course_code must not be blank",
			}
		}
	}
	return nil
}

func checkRecord(kind, key string, record interface{}) error {
	verr := validation.ValidateStruct(record)
	if verr == nil {
		return nil
	}
	fe, _ := verr.First()
	return &ContractError{Record: kind, Key: key, Field: fe.Field, Reason: fe.Message}
}
