// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/coursepath/internal/api"
	"github.com/tomtom215/coursepath/internal/auth"
	"github.com/tomtom215/coursepath/internal/cache"
	"github.com/tomtom215/coursepath/internal/config"
	"github.com/tomtom215/coursepath/internal/database"
	"github.com/tomtom215/coursepath/internal/events"
	"github.com/tomtom215/coursepath/internal/logging"
	"github.com/tomtom215/coursepath/internal/metrics"
	"github.com/tomtom215/coursepath/internal/recommend"
	"github.com/tomtom215/coursepath/internal/reports"
	"github.com/tomtom215/coursepath/internal/supervisor"
	"github.com/tomtom215/coursepath/internal/supervisor/services"
)

// app holds every long-lived component of the server.
type app struct {
	cfg      *config.Config
	db       *database.DB
	reports  *reports.Store
	bus      *gochannel.GoChannel
	breaker  *database.BreakerProvider
	provider *database.Provider
	engine   *recommend.Engine
	events   *events.Service
	handler  http.Handler
}

// newApp opens storage and wires the engine, event bus and HTTP handler.
// The caller must call close.
func newApp(ctx context.Context, cfg *config.Config) (_ *app, err error) {
	a := &app{cfg: cfg}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	a.db, err = database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	logging.Info().
		Str("driver", cfg.Database.Driver).
		Str("path", cfg.Database.Path).
		Msg("Database initialized successfully")

	if cfg.Database.Seed {
		if err = a.db.SeedDemoData(ctx); err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
		logging.Info().Msg("Demo catalog seeded")
	}

	if cfg.Reports.Enabled {
		a.reports, err = reports.Open(cfg.Reports.Path)
	} else {
		a.reports, err = reports.OpenInMemory()
	}
	if err != nil {
		return nil, err
	}

	// Read path: cache -> breaker -> database.
	a.breaker = database.NewBreakerProvider(a.db, &cfg.Breaker)
	var snapshot *cache.Cache
	if cfg.Cache.Enabled {
		snapshot = cache.New(cfg.Cache.TTL)
	}
	a.provider = database.NewProvider(a.breaker, snapshot)

	a.engine, err = recommend.NewEngine(cfg.Recommend.EngineConfig(), logging.Logger())
	if err != nil {
		return nil, fmt.Errorf("initialize recommendation engine: %w", err)
	}
	a.engine.SetDataProvider(a.provider)

	a.bus = events.NewBus()
	a.engine.AddObserver(metrics.RunObserver{})
	a.engine.AddObserver(events.NewPublisher(a.bus))
	a.events = events.NewService(events.DefaultRouterConfig(), a.bus, events.Sinks{
		RunLog:  a.db,
		Reports: a.reports,
	})

	authMW, err := newAuthMiddleware(&cfg.Security)
	if err != nil {
		return nil, err
	}

	handlerOpts := []api.HandlerOption{
		api.WithReports(a.reports),
		api.WithBreaker(a.breaker),
		api.WithTimeout(cfg.Server.Timeout),
	}
	if snapshot != nil {
		handlerOpts = append(handlerOpts, api.WithCatalogCache(snapshot))
	}
	handler := api.NewHandler(a.engine, a.db, handlerOpts...)
	chiMW := api.NewChiMiddleware(api.ChiMiddlewareConfigFromServer(&cfg.Server))
	a.handler = api.NewRouter(handler, authMW, chiMW).Setup()

	return a, nil
}

func newAuthMiddleware(cfg *config.SecurityConfig) (*auth.Middleware, error) {
	var jwtManager *auth.JWTManager
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		var err error
		jwtManager, err = auth.NewJWTManager(cfg)
		if err != nil {
			return nil, fmt.Errorf("initialize JWT manager: %w", err)
		}
		logging.Info().Msg("JWT authentication enabled")
	default:
		logging.Warn().Msg("Authentication is DISABLED (AUTH_MODE=none); every API route is public")
	}
	return auth.NewMiddleware(jwtManager, cfg.AuthMode)
}

// supervise registers the long-running services on tree.
func (a *app) supervise(tree *supervisor.SupervisorTree) {
	if a.cfg.Cache.Enabled {
		// Refresh at half the TTL so requests never see a cold snapshot.
		tree.AddDataService(services.NewCatalogRefreshService(a.provider, services.CatalogRefreshConfig{
			Interval:         a.cfg.Cache.TTL / 2,
			RefreshOnStartup: true,
			Timeout:          a.cfg.Database.QueryTimeout,
		}, logging.Logger()))
	}
	if a.cfg.Reports.Enabled {
		tree.AddDataService(services.NewReportsGCService(a.reports, 10*time.Minute, logging.Logger()))
	}

	tree.AddMessagingService(a.events)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port),
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       a.cfg.Server.Timeout,
		WriteTimeout:      a.cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")
}

// close releases storage in reverse order of creation.
func (a *app) close() {
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}
	if a.reports != nil {
		if err := a.reports.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing reports store")
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}
}
