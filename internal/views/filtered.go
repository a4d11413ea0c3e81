package views

import (
	"slices"

	"github.com/guorg/liveview/internal/change"
)

// Filtered shows the elements of its source that satisfy a predicate, in
// source order.
type Filtered[T comparable] struct {
	snapshotView[T]

	pred func(T) bool
}

// NewFiltered returns a view of the elements of source for which pred
// returns true. A nil pred keeps every element.
func NewFiltered[T comparable](source change.Observable[T], pred func(T) bool, opts ...Option) (*Filtered[T], error) {
	if source == nil {
		return nil, ErrNilSource
	}
	f := &Filtered[T]{pred: pred}
	f.start("filtered", source, f.filter, opts)
	return f, nil
}

func (f *Filtered[T]) filter(items []T) []T {
	if f.pred == nil {
		return items
	}
	return slices.DeleteFunc(items, func(item T) bool { return !f.pred(item) })
}

// SetFilter replaces the predicate and refreshes immediately.
func (f *Filtered[T]) SetFilter(pred func(T) bool) error {
	if f.closed.Load() {
		return ErrDisposed
	}
	f.mu.Lock()
	f.pred = pred
	f.mu.Unlock()
	return f.Refresh()
}
