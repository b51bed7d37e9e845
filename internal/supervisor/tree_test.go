// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package supervisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// stubService runs until canceled, failing the first failures starts.
type stubService struct {
	name     string
	failures int32
	starts   atomic.Int32
	running  chan struct{}
}

func newStubService(name string, failures int32) *stubService {
	return &stubService{name: name, failures: failures, running: make(chan struct{}, 8)}
}

func (s *stubService) Serve(ctx context.Context) error {
	n := s.starts.Add(1)
	if n <= s.failures {
		return errors.New("simulated failure")
	}
	s.running <- struct{}{}
	<-ctx.Done()
	return ctx.Err()
}

func (s *stubService) String() string { return s.name }

func waitRunning(t *testing.T, s *stubService) {
	t.Helper()
	select {
	case <-s.running:
	case <-time.After(5 * time.Second):
		t.Fatalf("%s did not start", s.name)
	}
}

func TestNewSupervisorTree_Defaults(t *testing.T) {
	t.Parallel()

	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}
	if tree.root == nil || tree.data == nil || tree.messaging == nil || tree.api == nil {
		t.Fatal("tree has a nil supervisor")
	}
	if tree.config != DefaultTreeConfig() {
		t.Errorf("config = %+v, want %+v", tree.config, DefaultTreeConfig())
	}

	custom := TreeConfig{FailureThreshold: 2, FailureDecay: 1, FailureBackoff: time.Second, ShutdownTimeout: time.Second}
	tree, err = NewSupervisorTree(quietLogger(), custom)
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}
	if tree.config != custom {
		t.Errorf("config = %+v, want %+v", tree.config, custom)
	}
}

func TestSupervisorTree_RunsEveryLayer(t *testing.T) {
	t.Parallel()

	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}

	data := newStubService("catalog-refresh", 0)
	messaging := newStubService("event-router", 0)
	api := newStubService("http-server", 0)
	tree.AddDataService(data)
	tree.AddMessagingService(messaging)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	waitRunning(t, data)
	waitRunning(t, messaging)
	waitRunning(t, api)

	cancel()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("ServeBackground() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("tree did not stop")
	}

	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatalf("UnstoppedServiceReport() error = %v", err)
	}
	if len(report) != 0 {
		t.Errorf("unstopped services = %v", report)
	}
}

func TestSupervisorTree_RestartsFailedService(t *testing.T) {
	t.Parallel()

	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}

	flaky := newStubService("flaky", 2)
	steady := newStubService("steady", 0)
	tree.AddMessagingService(flaky)
	tree.AddAPIService(steady)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	waitRunning(t, steady)
	waitRunning(t, flaky)
	if got := flaky.starts.Load(); got != 3 {
		t.Errorf("flaky starts = %d, want 3", got)
	}
	if got := steady.starts.Load(); got != 1 {
		t.Errorf("steady starts = %d, want 1 (failure isolation)", got)
	}

	cancel()
	<-errCh
}
