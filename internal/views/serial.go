package views

import (
	"slices"

	"github.com/guorg/liveview/internal/change"
)

// Serial is a read-only view whose upstream can be replaced at runtime.
// Switching sources publishes the difference between the old and the new
// content rather than a blanket reset.
type Serial[T comparable] struct {
	snapshotView[T]
}

// NewSerial returns a view over source. source may be nil, in which case the
// view starts empty.
func NewSerial[T comparable](source change.Observable[T], opts ...Option) *Serial[T] {
	s := &Serial[T]{}
	s.start("serial", source, nil, opts)
	return s
}

// SetSource detaches the current upstream and follows source instead.
// With OwnsSource, only the source attached at Close time is closed.
func (s *Serial[T]) SetSource(source change.Observable[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrDisposed
	}
	s.static = nil
	s.attach(source)
	s.resync(s.sync, s.compute())
	return nil
}

// SetItems detaches the upstream and shows items until the next SetSource.
func (s *Serial[T]) SetItems(items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrDisposed
	}
	s.attach(nil)
	s.static = slices.Clone(items)
	s.resync(s.sync, s.compute())
	return nil
}
