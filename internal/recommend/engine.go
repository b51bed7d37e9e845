// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/coursepath/internal/validation"
)

// inputQueries is the number of provider reads behind one run.
const inputQueries = 4

// DataProvider loads the records a run needs. It is implemented by the
// database layer.
type DataProvider interface {
	// GetStudentProfile returns ErrStudentNotFound (possibly wrapped) for
	// unknown students.
	GetStudentProfile(ctx context.Context, studentID int) (*StudentProfile, error)

	// GetCompletedCourses returns the codes of courses the student passed.
	GetCompletedCourses(ctx context.Context, studentID int) ([]string, error)

	// GetActiveCourses returns the active catalog in catalog order.
	GetActiveCourses(ctx context.Context) ([]Course, error)

	// GetPrerequisiteEdges returns every prerequisite edge in listed order.
	GetPrerequisiteEdges(ctx context.Context) ([]PrerequisiteEdge, error)
}

// Operations reported in RunRecord.Operation.
const (
	OperationRecommend  = "recommend"
	OperationCandidates = "candidates"
)

// RunStatus is the outcome of a run as reported to observers.
type RunStatus string

const (
	RunSuccess RunStatus = "success"
	RunError   RunStatus = "error"
)

// RunRecord describes one finished engine call.
type RunRecord struct {
	RunID               string      `json:"run_id"`
	RequestID           string      `json:"request_id"`
	Operation           string      `json:"operation"`
	StudentID           int         `json:"student_id"`
	StartedAt           time.Time   `json:"started_at"`
	FinishedAt          time.Time   `json:"finished_at"`
	Status              RunStatus   `json:"status"`
	Stage               Stage       `json:"stage,omitempty"`
	Error               string      `json:"error,omitempty"`
	Input               interface{} `json:"input"`
	Output              interface{} `json:"output,omitempty"`
	RecommendationCount int         `json:"recommendation_count"`
	QueryCount          int         `json:"query_count"`
}

// Duration returns FinishedAt - StartedAt.
func (r *RunRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// RunObserver receives a record after every engine call. Implementations
// must not block for long; the engine calls them synchronously.
type RunObserver interface {
	ObserveRun(ctx context.Context, rec *RunRecord)
}

// Engine loads inputs through a DataProvider and runs the pipeline.
// It is safe for concurrent use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	pipeline *Pipeline

	providerMu   sync.RWMutex
	dataProvider DataProvider
	observers    []RunObserver

	requestCount atomic.Int64
	errorCount   atomic.Int64
	emptyCount   atomic.Int64
	lastLatency  atomic.Int64
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	pipeline, err := NewPipeline(cfg)
	if err != nil {
		return nil, err
	}
	return &Engine{
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "recommend").Logger(),
		pipeline: pipeline,
	}, nil
}

// SetDataProvider sets the provider used to load run inputs.
func (e *Engine) SetDataProvider(dp DataProvider) {
	e.providerMu.Lock()
	defer e.providerMu.Unlock()
	e.dataProvider = dp
}

// AddObserver registers an observer for finished runs.
func (e *Engine) AddObserver(o RunObserver) {
	e.providerMu.Lock()
	defer e.providerMu.Unlock()
	e.observers = append(e.observers, o)
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Pipeline returns the engine's pipeline.
func (e *Engine) Pipeline() *Pipeline {
	return e.pipeline
}

// Recommend produces the recommendation payload for one student.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Payload, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Int("student_id", req.StudentID).
		Logger()
	logger.Debug().Msg("processing recommendation request")

	run := &RunRecord{
		RunID:      uuid.New().String(),
		RequestID:  req.RequestID,
		Operation:  OperationRecommend,
		StudentID:  req.StudentID,
		StartedAt:  start,
		Input:      req,
		QueryCount: inputQueries,
	}

	payload, err := e.recommend(ctx, &req, start)
	e.finish(ctx, run, payload, err)
	if err != nil {
		logger.Warn().Err(err).Msg("recommendation failed")
		return nil, err
	}

	logger.Debug().
		Int("catalog", payload.Metadata.CatalogSize).
		Int("returned", payload.TotalRecommendations).
		Int("prioritized", len(payload.PrerequisitesToPrioritize)).
		Int64("latency_ms", payload.Metadata.LatencyMS).
		Msg("recommendation complete")

	return payload, nil
}

func (e *Engine) recommend(ctx context.Context, req *Request, start time.Time) (*Payload, error) {
	if verr := validation.ValidateStruct(req); verr != nil {
		fe, _ := verr.First()
		return nil, stageErr(req.StudentID, StageValidate,
			&ContractError{Record: "request", Key: req.RequestID, Field: fe.Field, Reason: fe.Message})
	}

	in, err := e.loadInputs(ctx, req.StudentID)
	if err != nil {
		return nil, stageErr(req.StudentID, StageLoad, err)
	}
	in.Profile = req.Preferences.Apply(in.Profile)

	out, err := e.pipeline.Run(ctx, in)
	if err != nil {
		return nil, err
	}

	payload := out.Payload
	if payload.TotalRecommendations == 0 {
		e.emptyCount.Add(1)
	}
	payload.Student = in.Profile
	payload.Metadata = &PayloadMetadata{
		RequestID:        req.RequestID,
		CatalogSize:      len(in.Catalog),
		CandidateCount:   len(out.Candidates),
		ShortlistSize:    min(len(out.Candidates), e.config.Limits.ShortlistK),
		CurrentTerm:      e.config.Terms.Current,
		NextTerm:         e.config.Terms.Next,
		GatingTypes:      e.config.GatingTypeNames(),
		QueryCount:       inputQueries,
		LatencyMS:        time.Since(start).Milliseconds(),
		GeneratedAt:      time.Now().UTC(),
		ScoringLatencyMS: out.ScoreTime.Milliseconds(),
	}
	return payload, nil
}

// Candidates returns the scored candidate list for a student, cut to k
// (CandidateK when k <= 0, capped at MaxK).
func (e *Engine) Candidates(ctx context.Context, studentID, k int) (*CandidateList, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if k <= 0 {
		k = e.config.Limits.CandidateK
	}
	if k > e.config.Limits.MaxK {
		k = e.config.Limits.MaxK
	}

	run := &RunRecord{
		RunID:      uuid.New().String(),
		Operation:  OperationCandidates,
		StudentID:  studentID,
		StartedAt:  start,
		Input:      map[string]int{"student_id": studentID, "k": k},
		QueryCount: inputQueries,
	}

	list, err := e.candidates(ctx, studentID, k)
	e.finish(ctx, run, list, err)
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (e *Engine) candidates(ctx context.Context, studentID, k int) (*CandidateList, error) {
	if studentID <= 0 {
		return nil, stageErr(studentID, StageValidate,
			&ContractError{Record: "request", Field: "student_id", Reason: "student_id must be greater than 0"})
	}

	in, err := e.loadInputs(ctx, studentID)
	if err != nil {
		return nil, stageErr(studentID, StageLoad, err)
	}
	in.Completed = nil
	in.Edges = nil
	if err := ValidateInputs(in); err != nil {
		return nil, stageErr(studentID, StageValidate, err)
	}

	scored, err := e.pipeline.ScoreAll(ctx, in.Profile, in.Catalog)
	if err != nil {
		return nil, stageErr(studentID, StageScore, err)
	}
	ranked := Rank(scored, k)
	return &CandidateList{StudentID: studentID, Courses: ranked, Total: len(ranked)}, nil
}

// loadInputs reads the four inputs concurrently.
func (e *Engine) loadInputs(ctx context.Context, studentID int) (*Inputs, error) {
	e.providerMu.RLock()
	dp := e.dataProvider
	e.providerMu.RUnlock()
	if dp == nil {
		return nil, ErrNoDataProvider
	}

	in := &Inputs{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := dp.GetStudentProfile(gctx, studentID)
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		if p == nil {
			return ErrStudentNotFound
		}
		in.Profile = p
		return nil
	})
	g.Go(func() error {
		codes, err := dp.GetCompletedCourses(gctx, studentID)
		if err != nil {
			return fmt.Errorf("get completed courses: %w", err)
		}
		in.Completed = codes
		return nil
	})
	g.Go(func() error {
		courses, err := dp.GetActiveCourses(gctx)
		if err != nil {
			return fmt.Errorf("get active courses: %w", err)
		}
		in.Catalog = courses
		return nil
	})
	g.Go(func() error {
		edges, err := dp.GetPrerequisiteEdges(gctx)
		if err != nil {
			return fmt.Errorf("get prerequisite edges: %w", err)
		}
		in.Edges = edges
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}

func (e *Engine) finish(ctx context.Context, run *RunRecord, output interface{}, err error) {
	run.FinishedAt = time.Now()
	e.lastLatency.Store(int64(run.Duration()))

	if err != nil {
		e.errorCount.Add(1)
		run.Status = RunError
		run.Error = err.Error()
		var se *StageError
		if errors.As(err, &se) {
			run.Stage = se.Stage
		}
	} else {
		run.Status = RunSuccess
		run.Output = output
		if p, ok := output.(*Payload); ok {
			run.RecommendationCount = p.TotalRecommendations
		}
	}

	e.providerMu.RLock()
	observers := e.observers
	e.providerMu.RUnlock()
	for _, o := range observers {
		o.ObserveRun(ctx, run)
	}
}

// Metrics returns a snapshot of the engine counters.
func (e *Engine) Metrics() Metrics {
	return Metrics{
		Requests:     e.requestCount.Load(),
		Errors:       e.errorCount.Load(),
		EmptyResults: e.emptyCount.Load(),
		LastLatency:  time.Duration(e.lastLatency.Load()),
	}
}
