package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/guorg/liveview/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	tests := []struct {
		name     string
		failures int
		interval time.Duration
		want     time.Duration
	}{
		{"no failures", 0, time.Second, time.Second},
		{"one failure", 1, time.Second, 2 * time.Second},
		{"three failures", 3, time.Second, 8 * time.Second},
		{"capped", 10, time.Second, maxBackoff},
		{"large interval capped", 1, 20 * time.Second, maxBackoff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calculateBackoff(tt.failures, tt.interval); got != tt.want {
				t.Fatalf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, tt.interval, got, tt.want)
			}
		})
	}
}

func TestStartFeeder_StepsOnEveryTick(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := clockwork.NewFakeClock()
	steps := make(chan struct{}, 4)
	step := func(context.Context) error {
		steps <- struct{}{}
		return nil
	}
	store := &state.Store{}
	done := StartFeeder(ctx, clock, time.Second, step, store, nil)

	<-steps
	for range 2 {
		if err := clock.BlockUntilContext(ctx, 1); err != nil {
			t.Fatalf("feeder never waited: %v", err)
		}
		clock.Advance(time.Second)
		select {
		case <-steps:
		case <-ctx.Done():
			t.Fatal("step did not run after the tick")
		}
	}

	cancel()
	<-done
	if snap := store.Snapshot(); snap.ConsecutiveFailures != 0 || snap.LastUpdated.IsZero() {
		t.Fatalf("unexpected store state: %+v", snap)
	}
}

func TestStartFeeder_RecordsFailuresAndBacksOff(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := clockwork.NewFakeClock()
	steps := make(chan struct{}, 4)
	step := func(context.Context) error {
		steps <- struct{}{}
		return errors.New("boom")
	}
	store := &state.Store{}
	done := StartFeeder(ctx, clock, time.Second, step, store, nil)

	<-steps
	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("feeder never waited: %v", err)
	}
	snap := store.Snapshot()
	if snap.ConsecutiveFailures != 1 || snap.LastError == nil {
		t.Fatalf("failure not recorded: %+v", snap)
	}

	clock.Advance(2 * time.Second)
	<-steps
	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("feeder never waited: %v", err)
	}
	if snap := store.Snapshot(); !snap.IsStalled() {
		t.Fatalf("expected stalled after two failures: %+v", snap)
	}

	cancel()
	<-done
}
