package views

import (
	"time"

	"github.com/guorg/liveview/internal/change"
)

// Throttled mirrors its source but publishes at most once per interval.
// Changes arriving within a window are folded into one difference.
type Throttled[T comparable] struct {
	snapshotView[T]
}

// NewThrottled returns a view of source that refreshes interval after the
// first upstream change of each window. Options may override the scheduler.
func NewThrottled[T comparable](source change.Observable[T], interval time.Duration, opts ...Option) (*Throttled[T], error) {
	if source == nil {
		return nil, ErrNilSource
	}
	t := &Throttled[T]{}
	t.start("throttled", source, nil, append([]Option{WithBufferTime(interval)}, opts...))
	return t, nil
}

// Interval returns the buffer window.
func (t *Throttled[T]) Interval() time.Duration {
	return t.opts.bufferTime
}
