package views

import (
	"log/slog"
	"time"

	"github.com/guorg/liveview/internal/scheduler"
)

type options struct {
	scheduler  scheduler.Scheduler
	bufferTime time.Duration
	ownsSource bool
	logger     *slog.Logger
	triggers   []Trigger
}

// Option configures a view.
type Option func(*options)

// WithScheduler sets the scheduler used for buffered refreshes. Without one a
// buffered view uses the wall clock.
func WithScheduler(s scheduler.Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithBufferTime coalesces upstream changes arriving within d into a single
// refresh. Zero (the default) refreshes on every change.
func WithBufferTime(d time.Duration) Option {
	return func(o *options) {
		o.bufferTime = d
	}
}

// OwnsSource makes Close also close the upstream source when it implements
// io.Closer. By default the source is left open.
func OwnsSource() Option {
	return func(o *options) {
		o.ownsSource = true
	}
}

// WithLogger sets the logger for lifecycle and refresh diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTriggers adds signals that force a refresh, for example a property of
// a filter's parameters.
func WithTriggers(triggers ...Trigger) Option {
	return func(o *options) {
		o.triggers = append(o.triggers, triggers...)
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.bufferTime > 0 && o.scheduler == nil {
		o.scheduler = scheduler.NewClock(nil)
	}
	return o
}
