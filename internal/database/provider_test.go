// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/coursepath/internal/cache"
	"github.com/tomtom215/coursepath/internal/config"
	"github.com/tomtom215/coursepath/internal/recommend"
)

// countingSource is a DataProvider that counts calls and can be told to fail.
type countingSource struct {
	profileCalls atomic.Int32
	courseCalls  atomic.Int32
	edgeCalls    atomic.Int32

	mu  sync.Mutex
	err error
}

func (s *countingSource) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *countingSource) currentErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *countingSource) GetStudentProfile(_ context.Context, id int) (*recommend.StudentProfile, error) {
	s.profileCalls.Add(1)
	if err := s.currentErr(); err != nil {
		return nil, err
	}
	if id != 1 {
		return nil, fmt.Errorf("student %d: %w", id, recommend.ErrStudentNotFound)
	}
	return &recommend.StudentProfile{StudentID: 1, PreferredDifficulty: 2}, nil
}

func (s *countingSource) GetCompletedCourses(_ context.Context, _ int) ([]string, error) {
	if err := s.currentErr(); err != nil {
		return nil, err
	}
	return []string{"FIN 201"}, nil
}

func (s *countingSource) GetActiveCourses(_ context.Context) ([]recommend.Course, error) {
	s.courseCalls.Add(1)
	if err := s.currentErr(); err != nil {
		return nil, err
	}
	return []recommend.Course{{ID: "1", Code: "FIN 301", Name: "Corporate Finance", Department: "Finance", DifficultyLevel: 2}}, nil
}

func (s *countingSource) GetPrerequisiteEdges(_ context.Context) ([]recommend.PrerequisiteEdge, error) {
	s.edgeCalls.Add(1)
	if err := s.currentErr(); err != nil {
		return nil, err
	}
	return []recommend.PrerequisiteEdge{{CourseCode: "FIN 301", PrerequisiteCode: "FIN 201"}}, nil
}

func TestProvider_CachesSnapshot(t *testing.T) {
	t.Parallel()

	src := &countingSource{}
	p := NewProvider(src, cache.New(time.Minute))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		courses, err := p.GetActiveCourses(ctx)
		if err != nil {
			t.Fatalf("GetActiveCourses() error = %v", err)
		}
		if len(courses) != 1 {
			t.Fatalf("got %d courses, want 1", len(courses))
		}
		edges, err := p.GetPrerequisiteEdges(ctx)
		if err != nil {
			t.Fatalf("GetPrerequisiteEdges() error = %v", err)
		}
		if len(edges) != 1 {
			t.Fatalf("got %d edges, want 1", len(edges))
		}
	}

	if n := src.courseCalls.Load(); n != 1 {
		t.Errorf("source GetActiveCourses called %d times, want 1", n)
	}
	if n := src.edgeCalls.Load(); n != 1 {
		t.Errorf("source GetPrerequisiteEdges called %d times, want 1", n)
	}
}

func TestProvider_StudentReadsBypassCache(t *testing.T) {
	t.Parallel()

	src := &countingSource{}
	p := NewProvider(src, cache.New(time.Minute))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := p.GetStudentProfile(ctx, 1); err != nil {
			t.Fatalf("GetStudentProfile() error = %v", err)
		}
	}
	if n := src.profileCalls.Load(); n != 2 {
		t.Errorf("profile calls = %d, want 2", n)
	}
	if _, err := p.GetStudentProfile(ctx, 7); !errors.Is(err, recommend.ErrStudentNotFound) {
		t.Errorf("GetStudentProfile(7) error = %v, want ErrStudentNotFound", err)
	}
}

func TestProvider_Refresh(t *testing.T) {
	t.Parallel()

	src := &countingSource{}
	p := NewProvider(src, cache.New(time.Minute))
	ctx := context.Background()

	if err := p.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if _, err := p.GetActiveCourses(ctx); err != nil {
		t.Fatalf("GetActiveCourses() error = %v", err)
	}
	if n := src.courseCalls.Load(); n != 1 {
		t.Errorf("after refresh and read, course calls = %d, want 1", n)
	}

	if err := p.Refresh(ctx); err != nil {
		t.Fatalf("second Refresh() error = %v", err)
	}
	if n := src.courseCalls.Load(); n != 2 {
		t.Errorf("after second refresh, course calls = %d, want 2", n)
	}

	if _, err := p.GetPrerequisiteEdges(ctx); err != nil {
		t.Fatalf("GetPrerequisiteEdges() error = %v", err)
	}
	if n := src.edgeCalls.Load(); n != 2 {
		t.Errorf("edges served from refreshed snapshot, edge calls = %d, want 2", n)
	}
}

func TestProvider_ErrorIsNotCached(t *testing.T) {
	t.Parallel()

	src := &countingSource{}
	c := cache.New(time.Minute)
	p := NewProvider(src, c)
	ctx := context.Background()

	src.fail(errors.New("disk on fire"))
	if _, err := p.GetActiveCourses(ctx); err == nil {
		t.Fatal("expected error from failing source")
	}
	if _, ok := c.Get(cache.KeyCourses); ok {
		t.Error("failed refresh left a courses entry")
	}

	src.fail(nil)
	if _, err := p.GetActiveCourses(ctx); err != nil {
		t.Fatalf("GetActiveCourses() after recovery error = %v", err)
	}
}

func TestProvider_NilCachePassesThrough(t *testing.T) {
	t.Parallel()

	src := &countingSource{}
	p := NewProvider(src, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := p.GetActiveCourses(ctx); err != nil {
			t.Fatalf("GetActiveCourses() error = %v", err)
		}
	}
	if n := src.courseCalls.Load(); n != 2 {
		t.Errorf("course calls = %d, want 2", n)
	}
	if err := p.Refresh(ctx); err != nil {
		t.Errorf("Refresh() with nil cache error = %v", err)
	}
}

func testBreakerConfig() *config.BreakerConfig {
	return &config.BreakerConfig{
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		FailureRatio: 0.5,
		MinRequests:  2,
	}
}

func TestBreakerProvider_TripsOnFailures(t *testing.T) {
	t.Parallel()

	src := &countingSource{}
	b := NewBreakerProvider(src, testBreakerConfig())
	ctx := context.Background()

	src.fail(errors.New("connection refused"))
	for i := 0; i < 2; i++ {
		if _, err := b.GetActiveCourses(ctx); err == nil {
			t.Fatal("expected source error")
		}
	}
	if got := b.State(); got != "open" {
		t.Fatalf("State() = %q, want open", got)
	}

	before := src.courseCalls.Load()
	_, err := b.GetActiveCourses(ctx)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want ErrOpenState", err)
	}
	if src.courseCalls.Load() != before {
		t.Error("open breaker still called the source")
	}
}

func TestBreakerProvider_NotFoundDoesNotTrip(t *testing.T) {
	t.Parallel()

	src := &countingSource{}
	b := NewBreakerProvider(src, testBreakerConfig())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := b.GetStudentProfile(ctx, 42); !errors.Is(err, recommend.ErrStudentNotFound) {
			t.Fatalf("error = %v, want ErrStudentNotFound", err)
		}
	}
	if got := b.State(); got != "closed" {
		t.Errorf("State() = %q, want closed", got)
	}
}

func TestBreakerProvider_PassesResults(t *testing.T) {
	t.Parallel()

	b := NewBreakerProvider(&countingSource{}, testBreakerConfig())
	ctx := context.Background()

	p, err := b.GetStudentProfile(ctx, 1)
	if err != nil || p.StudentID != 1 {
		t.Fatalf("GetStudentProfile() = %+v, %v", p, err)
	}
	codes, err := b.GetCompletedCourses(ctx, 1)
	if err != nil || len(codes) != 1 {
		t.Fatalf("GetCompletedCourses() = %v, %v", codes, err)
	}
	edges, err := b.GetPrerequisiteEdges(ctx)
	if err != nil || len(edges) != 1 {
		t.Fatalf("GetPrerequisiteEdges() = %v, %v", edges, err)
	}
}

func TestIsSuccessful(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"not found", fmt.Errorf("x: %w", recommend.ErrStudentNotFound), true},
		{"canceled", context.Canceled, true},
		{"contract", &recommend.ContractError{Record: "course", Field: "course_code", Reason: "blank"}, true},
		{"io", errors.New("connection reset"), false},
		{"deadline", context.DeadlineExceeded, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isSuccessful(tt.err); got != tt.want {
				t.Errorf("isSuccessful(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestCastResult(t *testing.T) {
	t.Parallel()

	if _, err := castResult[[]string](42, nil); err == nil {
		t.Error("expected type mismatch error")
	}
	got, err := castResult[[]string]([]string{"a"}, nil)
	if err != nil || len(got) != 1 {
		t.Errorf("castResult() = %v, %v", got, err)
	}
	sentinel := errors.New("boom")
	if _, err := castResult[[]string](nil, sentinel); !errors.Is(err, sentinel) {
		t.Errorf("error = %v, want sentinel", err)
	}
}
