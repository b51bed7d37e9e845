// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// fakeHTTPServer blocks in ListenAndServe until Shutdown is called,
// unless listenErr is set.
type fakeHTTPServer struct {
	listenErr   error
	shutdownErr error

	listens   atomic.Int32
	shutdowns atomic.Int32
	started   chan struct{}
	stopOnce  sync.Once
	stop      chan struct{}
}

func newFakeHTTPServer() *fakeHTTPServer {
	return &fakeHTTPServer{
		started: make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
}

func (f *fakeHTTPServer) ListenAndServe() error {
	f.listens.Add(1)
	select {
	case f.started <- struct{}{}:
	default:
	}
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeHTTPServer) Shutdown(_ context.Context) error {
	f.shutdowns.Add(1)
	f.stopOnce.Do(func() { close(f.stop) })
	return f.shutdownErr
}

var _ suture.Service = (*HTTPServerService)(nil)

func TestNewHTTPServerService_DefaultTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{0, 10 * time.Second},
		{-time.Second, 10 * time.Second},
		{3 * time.Second, 3 * time.Second},
	}
	for _, tt := range tests {
		svc := NewHTTPServerService(newFakeHTTPServer(), tt.in)
		if svc.shutdownTimeout != tt.want {
			t.Errorf("NewHTTPServerService(%v).shutdownTimeout = %v, want %v", tt.in, svc.shutdownTimeout, tt.want)
		}
	}
	if got := NewHTTPServerService(newFakeHTTPServer(), 0).String(); got != "http-server" {
		t.Errorf("String() = %q", got)
	}
}

func TestHTTPServerService_Serve(t *testing.T) {
	t.Parallel()

	t.Run("graceful shutdown on cancel", func(t *testing.T) {
		t.Parallel()
		server := newFakeHTTPServer()
		svc := NewHTTPServerService(server, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- svc.Serve(ctx) }()

		<-server.started
		cancel()

		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() = %v, want context.Canceled", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return after cancel")
		}
		if server.shutdowns.Load() != 1 {
			t.Errorf("Shutdown called %d times, want 1", server.shutdowns.Load())
		}
	})

	t.Run("listen failure", func(t *testing.T) {
		t.Parallel()
		server := newFakeHTTPServer()
		server.listenErr = errors.New("address already in use")
		svc := NewHTTPServerService(server, time.Second)

		err := svc.Serve(context.Background())
		if err == nil || !errors.Is(err, server.listenErr) {
			t.Errorf("Serve() = %v, want wrapped listen error", err)
		}
	})

	t.Run("shutdown failure", func(t *testing.T) {
		t.Parallel()
		server := newFakeHTTPServer()
		server.shutdownErr = errors.New("connections still open")
		svc := NewHTTPServerService(server, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- svc.Serve(ctx) }()
		<-server.started
		cancel()

		if err := <-done; !errors.Is(err, server.shutdownErr) {
			t.Errorf("Serve() = %v, want wrapped shutdown error", err)
		}
	})
}

func TestHTTPServerService_WithSupervisor(t *testing.T) {
	t.Parallel()

	server := newFakeHTTPServer()
	sup := suture.NewSimple("test")
	sup.Add(NewHTTPServerService(server, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	select {
	case <-server.started:
	case <-time.After(2 * time.Second):
		t.Fatal("server was not started by the supervisor")
	}
	cancel()
	<-errCh

	if server.listens.Load() != 1 {
		t.Errorf("ListenAndServe called %d times, want 1", server.listens.Load())
	}
}
