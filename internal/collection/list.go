package collection

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/guorg/liveview/internal/change"
	"github.com/guorg/liveview/internal/diff"
)

// ErrCollectionModified is returned by Range when the list changes while it
// is being enumerated.
var ErrCollectionModified = errors.New("collection was modified during enumeration")

// List is an observable, mutable list. The zero value is an empty list.
type List[T comparable] struct {
	change.Notifier[T]

	mu      sync.RWMutex
	items   []T
	version uint64
}

// NewList returns a List holding items.
func NewList[T comparable](items ...T) *List[T] {
	return &List[T]{items: slices.Clone(items)}
}

// Snapshot returns a copy of the content.
func (l *List[T]) Snapshot() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.items)
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// At returns the element at index.
func (l *List[T]) At(index int) (T, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if index < 0 || index >= len(l.items) {
		var zero T
		return zero, indexError(index, len(l.items))
	}
	return l.items[index], nil
}

// IndexOf returns the index of the first occurrence of item, or -1.
func (l *List[T]) IndexOf(item T) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Index(l.items, item)
}

// Range calls fn for each element in order until fn returns false. It
// returns ErrCollectionModified if the list is mutated before the
// enumeration completes.
func (l *List[T]) Range(fn func(index int, item T) bool) error {
	l.mu.RLock()
	version := l.version
	l.mu.RUnlock()

	for i := 0; ; i++ {
		l.mu.RLock()
		if l.version != version {
			l.mu.RUnlock()
			return ErrCollectionModified
		}
		if i >= len(l.items) {
			l.mu.RUnlock()
			return nil
		}
		item := l.items[i]
		l.mu.RUnlock()

		if !fn(i, item) {
			return nil
		}
	}
}

// Add appends item.
func (l *List[T]) Add(item T) {
	l.mu.Lock()
	index := len(l.items)
	l.items = append(l.items, item)
	l.version++
	l.mu.Unlock()

	l.Publish(change.Added(item, index), true)
}

// Insert inserts item at index.
func (l *List[T]) Insert(index int, item T) error {
	l.mu.Lock()
	if index < 0 || index > len(l.items) {
		n := len(l.items)
		l.mu.Unlock()
		return indexError(index, n)
	}
	l.items = slices.Insert(l.items, index, item)
	l.version++
	l.mu.Unlock()

	l.Publish(change.Added(item, index), true)
	return nil
}

// Set replaces the element at index.
func (l *List[T]) Set(index int, item T) error {
	l.mu.Lock()
	if index < 0 || index >= len(l.items) {
		n := len(l.items)
		l.mu.Unlock()
		return indexError(index, n)
	}
	old := l.items[index]
	l.items[index] = item
	l.version++
	l.mu.Unlock()

	l.Publish(change.Replaced(old, item, index), false)
	return nil
}

// RemoveAt removes the element at index.
func (l *List[T]) RemoveAt(index int) error {
	l.mu.Lock()
	if index < 0 || index >= len(l.items) {
		n := len(l.items)
		l.mu.Unlock()
		return indexError(index, n)
	}
	old := l.items[index]
	l.items = slices.Delete(l.items, index, index+1)
	l.version++
	l.mu.Unlock()

	l.Publish(change.Removed(old, index), true)
	return nil
}

// Remove removes the first occurrence of item and reports whether it was
// present.
func (l *List[T]) Remove(item T) bool {
	l.mu.Lock()
	index := slices.Index(l.items, item)
	if index < 0 {
		l.mu.Unlock()
		return false
	}
	l.items = slices.Delete(l.items, index, index+1)
	l.version++
	l.mu.Unlock()

	l.Publish(change.Removed(item, index), true)
	return true
}

// Move relocates the element at from to index to.
func (l *List[T]) Move(from, to int) error {
	l.mu.Lock()
	n := len(l.items)
	if from < 0 || from >= n {
		l.mu.Unlock()
		return indexError(from, n)
	}
	if to < 0 || to >= n {
		l.mu.Unlock()
		return indexError(to, n)
	}
	if from == to {
		l.mu.Unlock()
		return nil
	}
	item := l.items[from]
	l.items = slices.Delete(l.items, from, from+1)
	l.items = slices.Insert(l.items, to, item)
	l.version++
	l.mu.Unlock()

	l.Publish(change.Moved(item, from, to), false)
	return nil
}

// Clear removes every element. Clearing a single element publishes a Remove,
// clearing more publishes a Reset.
func (l *List[T]) Clear() {
	l.ResetTo(nil)
}

// AddRange appends items.
func (l *List[T]) AddRange(items ...T) {
	if len(items) == 0 {
		return
	}
	l.mu.RLock()
	next := slices.Concat(l.items, items)
	l.mu.RUnlock()
	l.ResetTo(next)
}

// RemoveAll removes every element matching pred and returns how many were
// removed.
func (l *List[T]) RemoveAll(pred func(T) bool) int {
	l.mu.RLock()
	next := slices.DeleteFunc(slices.Clone(l.items), pred)
	removed := len(l.items) - len(next)
	l.mu.RUnlock()

	if removed > 0 {
		l.ResetTo(next)
	}
	return removed
}

// ResetTo replaces the content with items, publishing the minimal change set.
func (l *List[T]) ResetTo(items []T) {
	l.mu.Lock()
	before := len(l.items)
	changes := diff.Changes(l.items, items)
	if len(changes) == 0 {
		l.mu.Unlock()
		return
	}
	l.items = slices.Clone(items)
	l.version++
	l.mu.Unlock()

	for _, c := range changes {
		l.Publish(c, c.CountChanged(before))
	}
}

// Close detaches every subscriber.
func (l *List[T]) Close() error {
	l.Notifier.Close()
	return nil
}

func indexError(index, n int) error {
	return fmt.Errorf("index %d with length %d: %w", index, n, change.ErrIndexOutOfRange)
}
