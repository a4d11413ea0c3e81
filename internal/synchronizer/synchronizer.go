// Package synchronizer keeps a materialised snapshot in step with a live
// source and replays the difference to subscribers.
package synchronizer

import (
	"slices"

	"github.com/guorg/liveview/internal/change"
	"github.com/guorg/liveview/internal/diff"
)

// Strategy computes the changes that turn before into after.
type Strategy[T any] func(before, after []T) []change.Change[T]

// Synchronizer holds the current snapshot of a derived collection.
//
// Refresh is not safe for concurrent use; callers serialise it.
type Synchronizer[T any] struct {
	current  []T
	strategy Strategy[T]
}

// New returns a Synchronizer comparing elements with ==.
func New[T comparable](initial []T) *Synchronizer[T] {
	return NewWithStrategy(initial, diff.Changes[T])
}

// NewFunc returns a Synchronizer comparing elements with eq.
func NewFunc[T any](initial []T, eq func(a, b T) bool) *Synchronizer[T] {
	return NewWithStrategy(initial, func(before, after []T) []change.Change[T] {
		return diff.ChangesFunc(before, after, eq)
	})
}

// NewWithStrategy returns a Synchronizer using strategy to diff snapshots.
func NewWithStrategy[T any](initial []T, strategy Strategy[T]) *Synchronizer[T] {
	return &Synchronizer[T]{current: slices.Clone(initial), strategy: strategy}
}

// Current returns the snapshot. Callers must not modify it. The same slice is
// returned until a Refresh finds a difference.
func (s *Synchronizer[T]) Current() []T {
	return s.current
}

// Len returns the length of the snapshot.
func (s *Synchronizer[T]) Len() int {
	return len(s.current)
}

// Refresh diffs source against the snapshot. When they differ the snapshot
// is replaced by a copy of source and, for every change, onProperty receives
// Count (when the length changed) and Item[] before onCollection receives the
// change. When they are equal nothing is published and the snapshot keeps
// its identity. Either callback may be nil.
func (s *Synchronizer[T]) Refresh(source []T, onProperty func(string), onCollection func(change.Change[T])) []change.Change[T] {
	changes := s.strategy(s.current, source)
	if len(changes) == 0 {
		return nil
	}

	before := len(s.current)
	s.current = slices.Clone(source)
	if s.current == nil {
		s.current = []T{}
	}
	for _, c := range changes {
		publish(c, c.CountChanged(before), onProperty, onCollection)
	}
	return changes
}

// Reset replaces the snapshot with source and publishes a Reset regardless of
// the difference.
func (s *Synchronizer[T]) Reset(source []T, onProperty func(string), onCollection func(change.Change[T])) change.Change[T] {
	before := len(s.current)
	s.current = slices.Clone(source)
	if s.current == nil {
		s.current = []T{}
	}
	c := change.ResetWith(slices.Clone(s.current))
	publish(c, before != len(s.current), onProperty, onCollection)
	return c
}

// Apply replays externally computed changes onto the snapshot and publishes
// them. It is used by views that forward upstream changes instead of diffing.
func (s *Synchronizer[T]) Apply(changes []change.Change[T], onProperty func(string), onCollection func(change.Change[T])) error {
	for _, c := range changes {
		before := len(s.current)
		next, err := change.Apply(s.current, []change.Change[T]{c})
		if err != nil {
			return err
		}
		s.current = next
		publish(c, c.CountChanged(before), onProperty, onCollection)
	}
	return nil
}

func publish[T any](c change.Change[T], countChanged bool, onProperty func(string), onCollection func(change.Change[T])) {
	if onProperty != nil {
		if countChanged {
			onProperty(change.CountProperty)
		}
		onProperty(change.IndexerProperty)
	}
	if onCollection != nil {
		onCollection(c)
	}
}
