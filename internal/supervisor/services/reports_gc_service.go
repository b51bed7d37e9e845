// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector reclaims space in a store and reports how many entries
// it holds. *reports.Store implements it.
type GarbageCollector interface {
	RunGC() error
	Count(ctx context.Context) (int, error)
}

// ReportsGCService runs value log GC on the reports store.
type ReportsGCService struct {
	store    GarbageCollector
	interval time.Duration
	logger   zerolog.Logger

	tick <-chan time.Time
}

// NewReportsGCService creates the service. A non-positive interval means 10m.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReportsGCService(store GarbageCollector, interval time.Duration, logger zerolog.Logger) *ReportsGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &ReportsGCService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "reports-gc").Logger(),
	}
}

// Serve implements suture.Service.
func (s *ReportsGCService) Serve(ctx context.Context) error {
	tick := s.tick
	if tick == nil {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
			if err := s.store.RunGC(); err != nil {
				s.logger.Warn().Err(err).Msg("reports value log GC failed")
				continue
			}
			count, err := s.store.Count(ctx)
			if err != nil {
				s.logger.Warn().Err(err).Msg("reports count failed")
				continue
			}
			s.logger.Debug().Int("reports", count).Msg("reports value log GC complete")
		}
	}
}

// String implements fmt.Stringer.
func (s *ReportsGCService) String() string {
	return "reports-gc"
}
