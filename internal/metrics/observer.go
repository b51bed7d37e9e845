// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package metrics

import (
	"context"

	"github.com/tomtom215/coursepath/internal/recommend"
)

// RunObserver records engine runs as Prometheus metrics.
type RunObserver struct{}

// ObserveRun implements recommend.RunObserver.
func (RunObserver) ObserveRun(_ context.Context, rec *recommend.RunRecord) {
	RecommendRuns.WithLabelValues(rec.Operation, string(rec.Status)).Inc()
	RecommendRunDuration.WithLabelValues(rec.Operation).Observe(rec.Duration().Seconds())

	if rec.Status != recommend.RunSuccess {
		return
	}
	if p, ok := rec.Output.(*recommend.Payload); ok {
		RecommendationsReturned.Observe(float64(p.TotalRecommendations))
		PrerequisitesPrioritized.Observe(float64(len(p.PrerequisitesToPrioritize)))
	}
}
