package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/guorg/liveview/internal/state"
)

const (
	defaultFeedInterval = 500 * time.Millisecond
	maxBackoff          = 30 * time.Second
)

// Step produces the next batch of source changes.
type Step func(ctx context.Context) error

// StartFeeder runs step at a fixed cadence on a background goroutine until
// ctx is cancelled. Failures back off exponentially. The returned channel is
// closed when the goroutine exits.
func StartFeeder(ctx context.Context, clock clockwork.Clock, interval time.Duration, step Step, store *state.Store, log *slog.Logger) <-chan struct{} {
	if interval <= 0 {
		interval = defaultFeedInterval
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		failures := 0
		for {
			err := step(ctx)
			store.RecordStep(err)
			if err != nil {
				failures++
				log.Warn("feed step failed", "error", err, "failures", failures)
			} else {
				failures = 0
			}

			timer := clock.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.Chan():
			}
		}
	}()
	return done
}

// calculateBackoff doubles interval per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 {
		return interval
	}
	d := interval
	for range failures {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
