// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/coursepath/internal/auth"
	"github.com/tomtom215/coursepath/internal/middleware"
	"github.com/tomtom215/coursepath/internal/models"
)

// Router wires handlers and middleware into a Chi router.
type Router struct {
	handler       *Handler
	auth          *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. authMW may be nil to leave /api/v1 open.
func NewRouter(handler *Handler, authMW *auth.Middleware, chiMW *ChiMiddleware) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		auth:          authMW,
		chiMiddleware: chiMW,
	}
}

// Setup builds the HTTP handler with every route.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, outermost first.
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Get("/health", router.handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())

		r.Get("/health", router.handler.Health)

		r.Group(func(r chi.Router) {
			if router.auth != nil {
				r.Use(router.auth.Authenticate)
			}

			r.Route("/students/{id}", func(r chi.Router) {
				r.Get("/recommendations", router.handler.Recommendations)
				r.Post("/recommendations", router.handler.Recommendations)
				r.Get("/recommendations/latest", router.handler.LatestReport)
				r.Get("/candidates", router.handler.Candidates)
				r.Get("/runs", router.handler.Runs)
				r.Get("/history", router.handler.History)
			})

			r.Get("/courses", router.handler.Courses)
			r.Get("/departments", router.handler.Departments)
		})
	})

	return r
}
