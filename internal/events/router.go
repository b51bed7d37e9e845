// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/tomtom215/coursepath/internal/logging"
)

// RouterConfig holds retry and shutdown settings for the event router.
type RouterConfig struct {
	CloseTimeout         time.Duration
	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
}

// DefaultRouterConfig returns production defaults.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CloseTimeout:         10 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 100 * time.Millisecond,
		RetryMaxInterval:     2 * time.Second,
	}
}

// Sinks are the stores the router writes to. A nil store disables its
// handler.
type Sinks struct {
	RunLog  RunLogStore
	Reports ReportStore
}

// Handler names.
const (
	handlerRunLogCompleted = "run_log.completed"
	handlerRunLogFailed    = "run_log.failed"
	handlerLatestReport    = "latest_report"
)

// NewRouter builds a Watermill router consuming run events from sub.
// A Watermill router runs once; build a new one to restart.
func NewRouter(cfg RouterConfig, sub message.Subscriber, sinks Sinks) (*message.Router, error) {
	logger := logging.NewWatermillLogger()

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	router.AddMiddleware(middleware.Recoverer)
	retry := middleware.Retry{
		MaxRetries:      cfg.RetryMaxRetries,
		InitialInterval: cfg.RetryInitialInterval,
		MaxInterval:     cfg.RetryMaxInterval,
		Multiplier:      2.0,
		Logger:          logger,
	}
	router.AddMiddleware(retry.Middleware)

	if sinks.RunLog != nil {
		h := RunLogHandler(sinks.RunLog)
		router.AddConsumerHandler(handlerRunLogCompleted, TopicCompleted, sub, h)
		router.AddConsumerHandler(handlerRunLogFailed, TopicFailed, sub, h)
	}
	if sinks.Reports != nil {
		router.AddConsumerHandler(handlerLatestReport, TopicCompleted, sub, ReportHandler(sinks.Reports))
	}
	return router, nil
}

// Service runs a fresh router on every Serve call, so a supervisor can
// restart it after a failure.
type Service struct {
	cfg    RouterConfig
	sub    message.Subscriber
	sinks  Sinks
	logger watermill.LoggerAdapter

	running     chan struct{}
	runningOnce sync.Once
}

// NewService creates the event router service.
func NewService(cfg RouterConfig, sub message.Subscriber, sinks Sinks) *Service {
	return &Service{
		cfg:     cfg,
		sub:     sub,
		sinks:   sinks,
		logger:  logging.NewWatermillLogger(),
		running: make(chan struct{}),
	}
}

// Running is closed once the first router has subscribed to its topics.
func (s *Service) Running() <-chan struct{} {
	return s.running
}

// Serve implements suture.Service.
func (s *Service) Serve(ctx context.Context) error {
	router, err := NewRouter(s.cfg, s.sub, s.sinks)
	if err != nil {
		return err
	}

	go func() {
		select {
		case <-router.Running():
			s.markRunning()
		case <-ctx.Done():
		}
	}()

	s.logger.Info("Event router starting", nil)
	if err := router.Run(ctx); err != nil {
		return fmt.Errorf("event router: %w", err)
	}
	return ctx.Err()
}

func (s *Service) markRunning() {
	s.runningOnce.Do(func() { close(s.running) })
}

// String implements fmt.Stringer for supervisor logs.
func (s *Service) String() string {
	return "event-router"
}
