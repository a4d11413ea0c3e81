package collection

import (
	"fmt"

	"github.com/guorg/liveview/internal/change"
	"github.com/guorg/liveview/internal/notify"
)

// FixedSizeQueue is an observable FIFO holding at most Capacity elements.
type FixedSizeQueue[T comparable] struct {
	list     *List[T]
	capacity int
}

// NewFixedSizeQueue returns an empty queue. capacity must be positive.
func NewFixedSizeQueue[T comparable](capacity int) (*FixedSizeQueue[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("queue capacity must be positive, got %d", capacity)
	}
	return &FixedSizeQueue[T]{list: NewList[T](), capacity: capacity}, nil
}

// Capacity returns the maximum number of elements.
func (q *FixedSizeQueue[T]) Capacity() int {
	return q.capacity
}

// Enqueue appends item, first dropping the oldest elements while the queue is
// full. It returns the dropped elements.
func (q *FixedSizeQueue[T]) Enqueue(item T) []T {
	var dropped []T
	for q.list.Len() >= q.capacity {
		oldest, err := q.list.At(0)
		if err != nil {
			break
		}
		if err := q.list.RemoveAt(0); err != nil {
			break
		}
		dropped = append(dropped, oldest)
	}
	q.list.Add(item)
	return dropped
}

// Dequeue removes and returns the oldest element.
func (q *FixedSizeQueue[T]) Dequeue() (T, bool) {
	item, err := q.list.At(0)
	if err != nil {
		return item, false
	}
	if err := q.list.RemoveAt(0); err != nil {
		var zero T
		return zero, false
	}
	return item, true
}

// Peek returns the oldest element without removing it.
func (q *FixedSizeQueue[T]) Peek() (T, bool) {
	item, err := q.list.At(0)
	return item, err == nil
}

// Len returns the number of queued elements.
func (q *FixedSizeQueue[T]) Len() int {
	return q.list.Len()
}

// Clear removes every element.
func (q *FixedSizeQueue[T]) Clear() {
	q.list.Clear()
}

// Snapshot returns the elements oldest first.
func (q *FixedSizeQueue[T]) Snapshot() []T {
	return q.list.Snapshot()
}

// Range enumerates the elements oldest first.
func (q *FixedSizeQueue[T]) Range(fn func(index int, item T) bool) error {
	return q.list.Range(fn)
}

// OnCollectionChanged subscribes fn to collection changes.
func (q *FixedSizeQueue[T]) OnCollectionChanged(fn func(change.Change[T])) *notify.Subscription {
	return q.list.OnCollectionChanged(fn)
}

// OnPropertyChanged subscribes fn to property changes.
func (q *FixedSizeQueue[T]) OnPropertyChanged(fn func(name string)) *notify.Subscription {
	return q.list.OnPropertyChanged(fn)
}

// Close detaches every subscriber.
func (q *FixedSizeQueue[T]) Close() error {
	return q.list.Close()
}
