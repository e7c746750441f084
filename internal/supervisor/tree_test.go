// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// mockService runs until cancelled, counting starts.
type mockService struct {
	name   string
	starts atomic.Int32
}

func (m *mockService) Serve(ctx context.Context) error {
	m.starts.Add(1)
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockService) String() string { return m.name }

func TestTreeConstruction(t *testing.T) {
	t.Run("builds tree from explicit config", func(t *testing.T) {
		tree := NewTree(testLogger(), TreeConfig{
			FailureThreshold: 5,
			FailureBackoff:   time.Second,
			ShutdownTimeout:  10 * time.Second,
		})
		if tree.root == nil || tree.api == nil || tree.jobs == nil {
			t.Fatal("supervisor layers should not be nil")
		}
	})

	t.Run("default config matches suture defaults", func(t *testing.T) {
		cfg := DefaultTreeConfig()
		if cfg.FailureThreshold != 5.0 {
			t.Errorf("expected FailureThreshold 5.0, got %f", cfg.FailureThreshold)
		}
		if cfg.FailureDecay != 30.0 {
			t.Errorf("expected FailureDecay 30.0, got %f", cfg.FailureDecay)
		}
		if cfg.FailureBackoff != 15*time.Second {
			t.Errorf("expected FailureBackoff 15s, got %v", cfg.FailureBackoff)
		}
		if cfg.ShutdownTimeout != 10*time.Second {
			t.Errorf("expected ShutdownTimeout 10s, got %v", cfg.ShutdownTimeout)
		}
	})
}

func TestTreeLifecycle(t *testing.T) {
	t.Run("starts services and stops on cancel", func(t *testing.T) {
		tree := NewTree(testLogger(), TreeConfig{
			FailureBackoff:  100 * time.Millisecond,
			ShutdownTimeout: time.Second,
		})

		apiSvc := &mockService{name: "mock-api"}
		jobSvc := &mockService{name: "mock-job"}
		tree.AddAPIService(apiSvc)
		tree.AddJobService(jobSvc)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := tree.ServeBackground(ctx)

		deadline := time.After(2 * time.Second)
		for apiSvc.starts.Load() == 0 || jobSvc.starts.Load() == 0 {
			select {
			case <-deadline:
				t.Fatal("services did not start in time")
			case <-time.After(10 * time.Millisecond):
			}
		}

		cancel()
		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, context.Canceled) {
				t.Errorf("unexpected error: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("tree did not shut down in time")
		}
	})

	t.Run("restarts a crashing job service", func(t *testing.T) {
		tree := NewTree(testLogger(), TreeConfig{
			FailureThreshold: 100,
			FailureBackoff:   10 * time.Millisecond,
			ShutdownTimeout:  time.Second,
		})

		var starts atomic.Int32
		tree.AddJobService(serveFunc(func(ctx context.Context) error {
			if starts.Add(1) < 3 {
				return errors.New("boom")
			}
			<-ctx.Done()
			return ctx.Err()
		}))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		errCh := tree.ServeBackground(ctx)

		deadline := time.After(2 * time.Second)
		for starts.Load() < 3 {
			select {
			case <-deadline:
				t.Fatalf("service restarted %d times, want at least 3", starts.Load())
			case <-time.After(10 * time.Millisecond):
			}
		}

		cancel()
		<-errCh
	})
}

// serveFunc adapts a function to suture.Service.
type serveFunc func(ctx context.Context) error

func (f serveFunc) Serve(ctx context.Context) error { return f(ctx) }
