// Package aggregate maintains running aggregates over observable collections.
package aggregate

import (
	"cmp"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/guorg/liveview/internal/change"
	"github.com/guorg/liveview/internal/collection"
	"github.com/guorg/liveview/internal/notify"
)

// maxAttempts bounds full rescans that keep colliding with concurrent
// mutation of the source.
const maxAttempts = 3

// ErrDisposed is returned after Close.
var ErrDisposed = errors.New("aggregate: tracker is closed")

// Source is an observable collection that can be enumerated in place.
type Source[T any] interface {
	change.Observable[T]
	Range(fn func(index int, item T) bool) error
}

// Extremes is the state published by MinMax.
type Extremes[T any] struct {
	Min, Max T
	// HasValue is false while the source is empty.
	HasValue bool
	// Err is set when the last rescan gave up.
	Err error
}

// MinMax tracks the smallest and largest element of a source.
type MinMax[T cmp.Ordered] struct {
	src     Source[T]
	sub     *notify.Subscription
	changed notify.Emitter[Extremes[T]]
	closed  atomic.Bool

	mu    sync.Mutex
	state Extremes[T]
}

// TrackMinMax scans src and follows its changes. The initial scan error, if
// any, is returned together with the tracker.
func TrackMinMax[T cmp.Ordered](src Source[T]) (*MinMax[T], error) {
	m := &MinMax[T]{src: src}
	m.mu.Lock()
	m.rescan()
	err := m.state.Err
	m.mu.Unlock()

	m.sub = src.OnCollectionChanged(m.onChange)
	return m, err
}

// Value returns the current extremes.
func (m *MinMax[T]) Value() (Extremes[T], error) {
	if m.closed.Load() {
		return Extremes[T]{}, ErrDisposed
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, nil
}

// OnChanged subscribes fn to changes of the extremes.
func (m *MinMax[T]) OnChanged(fn func(Extremes[T])) *notify.Subscription {
	return m.changed.Subscribe(fn)
}

// Close stops tracking. It is safe to call more than once.
func (m *MinMax[T]) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}
	m.sub.Close()
	m.changed.Close()
	return nil
}

func (m *MinMax[T]) onChange(c change.Change[T]) {
	if m.closed.Load() {
		return
	}

	m.mu.Lock()
	before := m.state
	switch c.Action {
	case change.Add:
		m.include(c.Item)
	case change.Replace:
		if m.isExtreme(c.OldItem) {
			m.rescan()
		} else {
			m.include(c.Item)
		}
	case change.Remove:
		if m.isExtreme(c.Item) {
			m.rescan()
		}
	case change.Reset:
		m.rescan()
	}
	after := m.state
	m.mu.Unlock()

	if !sameExtremes(before, after) {
		m.changed.Emit(after)
	}
}

func sameExtremes[T cmp.Ordered](a, b Extremes[T]) bool {
	return a.HasValue == b.HasValue && a.Min == b.Min && a.Max == b.Max && a.Err == b.Err
}

func (m *MinMax[T]) isExtreme(v T) bool {
	return m.state.HasValue && (v == m.state.Min || v == m.state.Max)
}

func (m *MinMax[T]) include(v T) {
	if m.state.Err != nil {
		// The last rescan gave up, so the extremes are not trustworthy.
		m.rescan()
		return
	}
	if !m.state.HasValue {
		m.state = Extremes[T]{Min: v, Max: v, HasValue: true}
		return
	}
	m.state.Min = min(m.state.Min, v)
	m.state.Max = max(m.state.Max, v)
}

// rescan recomputes from scratch, retrying when the source reports a
// concurrent modification.
func (m *MinMax[T]) rescan() {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var next Extremes[T]
		err = m.src.Range(func(_ int, v T) bool {
			if !next.HasValue {
				next = Extremes[T]{Min: v, Max: v, HasValue: true}
				return true
			}
			next.Min = min(next.Min, v)
			next.Max = max(next.Max, v)
			return true
		})
		if err == nil {
			m.state = next
			return
		}
		if !errors.Is(err, collection.ErrCollectionModified) {
			break
		}
	}
	m.state.Err = fmt.Errorf("rescan min/max: %w", err)
}
