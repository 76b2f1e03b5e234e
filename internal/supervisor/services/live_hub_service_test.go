// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// mockSessionHub is a test double for SessionHub.
type mockSessionHub struct {
	serveErr   error
	serveCount atomic.Int32
}

func (m *mockSessionHub) Serve(ctx context.Context) error {
	m.serveCount.Add(1)
	if m.serveErr != nil {
		return m.serveErr
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockSessionHub) SessionCount() int {
	return 0
}

func TestLiveHubService_Interface(t *testing.T) {
	var _ suture.Service = (*LiveHubService)(nil)
}

func TestNewLiveHubService(t *testing.T) {
	hub := &mockSessionHub{}
	svc := NewLiveHubService(hub)

	if svc.hub != hub {
		t.Error("hub not assigned correctly")
	}
	if svc.String() != "live-hub" {
		t.Errorf("expected name 'live-hub', got %q", svc.String())
	}
}

func TestLiveHubService_Serve(t *testing.T) {
	t.Run("returns context error on cancellation", func(t *testing.T) {
		hub := &mockSessionHub{}
		svc := NewLiveHubService(hub)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() {
			errCh <- svc.Serve(ctx)
		}()

		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		case <-time.After(time.Second):
			t.Fatal("Serve did not return after cancellation")
		}
	})

	t.Run("propagates hub error", func(t *testing.T) {
		want := errors.New("hub crashed")
		svc := NewLiveHubService(&mockSessionHub{serveErr: want})

		if err := svc.Serve(context.Background()); !errors.Is(err, want) {
			t.Errorf("expected %v, got %v", want, err)
		}
	})

	t.Run("restarted by supervisor after failure", func(t *testing.T) {
		hub := &mockSessionHub{serveErr: errors.New("boom")}
		sup := suture.New("test-sup", suture.Spec{
			FailureThreshold: 10,
			FailureBackoff:   10 * time.Millisecond,
			Timeout:          time.Second,
		})
		sup.Add(NewLiveHubService(hub))

		ctx, cancel := context.WithCancel(context.Background())
		errCh := sup.ServeBackground(ctx)

		deadline := time.Now().Add(2 * time.Second)
		for hub.serveCount.Load() < 2 && time.Now().Before(deadline) {
			time.Sleep(10 * time.Millisecond)
		}
		cancel()
		<-errCh

		if hub.serveCount.Load() < 2 {
			t.Errorf("expected restart, hub served %d times", hub.serveCount.Load())
		}
	})
}
