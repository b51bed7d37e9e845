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

// CatalogRefresher reloads the catalog snapshot. *database.Provider implements it.
type CatalogRefresher interface {
	Refresh(ctx context.Context) error
}

// CatalogRefreshConfig holds configuration for the catalog refresh service.
type CatalogRefreshConfig struct {
	// Interval between refreshes. Set it below the cache TTL so the
	// snapshot is replaced before it expires.
	Interval time.Duration

	// RefreshOnStartup loads the snapshot before the first tick.
	RefreshOnStartup bool

	// Timeout bounds a single refresh.
	Timeout time.Duration
}

// CatalogRefreshService keeps the catalog snapshot warm.
type CatalogRefreshService struct {
	refresher CatalogRefresher
	config    CatalogRefreshConfig
	logger    zerolog.Logger
	name      string

	// tick overrides the ticker channel in tests.
	tick <-chan time.Time
}

// NewCatalogRefreshService creates the service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogRefreshService(refresher CatalogRefresher, cfg CatalogRefreshConfig, logger zerolog.Logger) *CatalogRefreshService {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &CatalogRefreshService{
		refresher: refresher,
		config:    cfg,
		logger:    logger.With().Str("service", "catalog-refresh").Logger(),
		name:      "catalog-refresh",
	}
}

// Serve implements suture.Service. Refresh failures are logged and retried
// on the next tick; the snapshot already in the cache keeps serving until
// its TTL runs out.
func (s *CatalogRefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("refresh_on_startup", s.config.RefreshOnStartup).
		Dur("interval", s.config.Interval).
		Msg("catalog refresh service starting")

	if s.config.RefreshOnStartup {
		s.refresh(ctx)
	}

	tick := s.tick
	if tick == nil {
		ticker := time.NewTicker(s.config.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("catalog refresh service shutting down")
			return ctx.Err()
		case <-tick:
			s.refresh(ctx)
		}
	}
}

func (s *CatalogRefreshService) refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	if err := s.refresher.Refresh(refreshCtx); err != nil {
		s.logger.Warn().Err(err).Msg("catalog refresh failed")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("catalog snapshot refreshed")
}

// String implements fmt.Stringer.
func (s *CatalogRefreshService) String() string {
	return s.name
}
