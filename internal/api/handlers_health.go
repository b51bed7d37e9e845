// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/coursepath/internal/models"
)

// Health reports database connectivity, breaker state, engine counters and
// catalog cache counters. The service is "degraded" when the database does not answer a
// ping or the breaker is open.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	connected := h.store != nil && h.store.Ping(r.Context()) == nil
	health := models.HealthStatus{
		Status:            "healthy",
		Version:           Version,
		DatabaseConnected: connected,
		Uptime:            time.Since(h.startTime).Seconds(),
	}
	if h.store != nil {
		health.DatabaseDriver = h.store.Driver()
	}
	if h.breaker != nil {
		health.BreakerState = h.breaker.State()
	}
	if h.engine != nil {
		m := h.engine.Metrics()
		health.Engine = &models.EngineHealth{
			Requests:      m.Requests,
			Errors:        m.Errors,
			EmptyResults:  m.EmptyResults,
			LastLatencyMS: float64(m.LastLatency.Microseconds()) / 1000,
		}
	}
	if h.catalog != nil {
		stats := h.catalog.GetStats()
		health.CatalogCache = &models.CacheHealth{
			Keys:      stats.TotalKeys,
			Hits:      stats.Hits,
			Misses:    stats.Misses,
			Evictions: stats.Evictions,
			HitRate:   h.catalog.HitRate(),
		}
	}
	if !connected || health.BreakerState == "open" {
		health.Status = "degraded"
	}

	respondSuccess(w, r, health, start)
}
