// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/tomtom215/coursepath/internal/cache"
	"github.com/tomtom215/coursepath/internal/logging"
	"github.com/tomtom215/coursepath/internal/metrics"
	"github.com/tomtom215/coursepath/internal/recommend"
)

// Provider serves engine inputs from source, keeping the catalog and the
// prerequisite edges in a cache snapshot. Student reads always go to source.
// A nil cache disables snapshotting.
type Provider struct {
	source recommend.DataProvider
	cache  *cache.Cache

	// refreshMu serializes snapshot loads so a cold cache is filled once.
	refreshMu sync.Mutex
}

// NewProvider creates a Provider over source.
func NewProvider(source recommend.DataProvider, c *cache.Cache) *Provider {
	return &Provider{source: source, cache: c}
}

// GetStudentProfile implements recommend.DataProvider.
func (p *Provider) GetStudentProfile(ctx context.Context, studentID int) (*recommend.StudentProfile, error) {
	return p.source.GetStudentProfile(ctx, studentID)
}

// GetCompletedCourses implements recommend.DataProvider.
func (p *Provider) GetCompletedCourses(ctx context.Context, studentID int) ([]string, error) {
	return p.source.GetCompletedCourses(ctx, studentID)
}

// GetActiveCourses implements recommend.DataProvider.
func (p *Provider) GetActiveCourses(ctx context.Context) ([]recommend.Course, error) {
	if p.cache == nil {
		return p.source.GetActiveCourses(ctx)
	}
	if v, ok := p.lookup(cache.KeyCourses); ok {
		return v.([]recommend.Course), nil
	}
	courses, _, err := p.load(ctx)
	return courses, err
}

// GetPrerequisiteEdges implements recommend.DataProvider.
func (p *Provider) GetPrerequisiteEdges(ctx context.Context) ([]recommend.PrerequisiteEdge, error) {
	if p.cache == nil {
		return p.source.GetPrerequisiteEdges(ctx)
	}
	if v, ok := p.lookup(cache.KeyEdges); ok {
		return v.([]recommend.PrerequisiteEdge), nil
	}
	_, edges, err := p.load(ctx)
	return edges, err
}

// Refresh reloads the snapshot from source unconditionally.
func (p *Provider) Refresh(ctx context.Context) error {
	if p.cache == nil {
		return nil
	}
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()
	_, _, err := p.fetch(ctx)
	return err
}

func (p *Provider) lookup(key string) (interface{}, bool) {
	v, ok := p.cache.Get(key)
	metrics.RecordCacheLookup(key, ok)
	return v, ok
}

// load fills a cold snapshot. A concurrent caller that got the lock first
// has usually done the work already.
func (p *Provider) load(ctx context.Context) ([]recommend.Course, []recommend.PrerequisiteEdge, error) {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	cv, cok := p.cache.Get(cache.KeyCourses)
	ev, eok := p.cache.Get(cache.KeyEdges)
	if cok && eok {
		return cv.([]recommend.Course), ev.([]recommend.PrerequisiteEdge), nil
	}
	return p.fetch(ctx)
}

// fetch reads both halves of the snapshot and stores them together.
// Caller holds refreshMu.
func (p *Provider) fetch(ctx context.Context) ([]recommend.Course, []recommend.PrerequisiteEdge, error) {
	courses, err := p.source.GetActiveCourses(ctx)
	if err != nil {
		metrics.RecordCacheRefresh(0, 0, err)
		return nil, nil, fmt.Errorf("refresh catalog snapshot: %w", err)
	}
	edges, err := p.source.GetPrerequisiteEdges(ctx)
	if err != nil {
		metrics.RecordCacheRefresh(0, 0, err)
		return nil, nil, fmt.Errorf("refresh catalog snapshot: %w", err)
	}

	p.cache.Set(cache.KeyCourses, courses)
	p.cache.Set(cache.KeyEdges, edges)
	metrics.RecordCacheRefresh(len(courses), len(edges), nil)

	logging.Debug().
		Int("courses", len(courses)).
		Int("edges", len(edges)).
		Msg("Catalog snapshot refreshed")
	return courses, edges, nil
}
