// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package database

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/coursepath/internal/config"
	"github.com/tomtom215/coursepath/internal/logging"
	"github.com/tomtom215/coursepath/internal/metrics"
	"github.com/tomtom215/coursepath/internal/recommend"
)

// BreakerName labels the data-provider breaker in metrics.
const BreakerName = "data-provider"

// BreakerProvider wraps a DataProvider with a circuit breaker. Lookups for
// unknown students and bad catalog rows are answers, not outages, and do
// not count as failures.
type BreakerProvider struct {
	source recommend.DataProvider
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewBreakerProvider wraps source using the thresholds in cfg.
func NewBreakerProvider(source recommend.DataProvider, cfg *config.BreakerConfig) *BreakerProvider {
	name := BreakerName

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	minRequests := cfg.MinRequests
	failureRatio := cfg.FailureRatio

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			trip := ratio >= failureRatio
			if trip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return trip
		},

		IsSuccessful: isSuccessful,

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &BreakerProvider{source: source, cb: cb, name: name}
}

// isSuccessful reports whether err leaves the breaker counts untouched.
func isSuccessful(err error) bool {
	if err == nil {
		return true
	}
	var ce *recommend.ContractError
	return errors.Is(err, recommend.ErrStudentNotFound) ||
		errors.Is(err, context.Canceled) ||
		errors.As(err, &ce)
}

// State returns the breaker state as "closed", "half-open" or "open".
func (b *BreakerProvider) State() string {
	return stateToString(b.cb.State())
}

func (b *BreakerProvider) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		switch {
		case IsUnavailable(err):
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		case isSuccessful(err):
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
		default:
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
			counts := b.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return result, nil
}

// IsUnavailable reports whether err is a breaker rejection rather than a
// provider failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// castResult type-asserts a breaker result.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// GetStudentProfile implements recommend.DataProvider.
func (b *BreakerProvider) GetStudentProfile(ctx context.Context, studentID int) (*recommend.StudentProfile, error) {
	return castResult[*recommend.StudentProfile](b.execute(func() (interface{}, error) {
		return b.source.GetStudentProfile(ctx, studentID)
	}))
}

// GetCompletedCourses implements recommend.DataProvider.
func (b *BreakerProvider) GetCompletedCourses(ctx context.Context, studentID int) ([]string, error) {
	return castResult[[]string](b.execute(func() (interface{}, error) {
		return b.source.GetCompletedCourses(ctx, studentID)
	}))
}

// GetActiveCourses implements recommend.DataProvider.
func (b *BreakerProvider) GetActiveCourses(ctx context.Context) ([]recommend.Course, error) {
	return castResult[[]recommend.Course](b.execute(func() (interface{}, error) {
		return b.source.GetActiveCourses(ctx)
	}))
}

// GetPrerequisiteEdges implements recommend.DataProvider.
func (b *BreakerProvider) GetPrerequisiteEdges(ctx context.Context) ([]recommend.PrerequisiteEdge, error) {
	return castResult[[]recommend.PrerequisiteEdge](b.execute(func() (interface{}, error) {
		return b.source.GetPrerequisiteEdges(ctx)
	}))
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
