package propertypath

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/guorg/liveview/internal/notify"
)

type node struct {
	source any
	sub    *notify.Subscription
	value  any
	bound  bool
	gen    uint64
}

type result[V any] struct {
	value V
	ok    bool
}

// Tracker is a live view of the value at the end of a Path.
type Tracker[S, V any] struct {
	path    Path[S, V]
	changed notify.Emitter[result[V]]
	closed  atomic.Bool

	mu    sync.Mutex
	nodes []node
	gen   uint64
}

// Track binds path to root.
func Track[S, V any](root S, path Path[S, V]) (*Tracker[S, V], error) {
	if path.err != nil {
		return nil, path.err
	}
	if len(path.links) == 0 {
		return nil, fmt.Errorf("empty path: %w", ErrMalformedPath)
	}

	t := &Tracker[S, V]{path: path, nodes: make([]node, len(path.links))}
	t.mu.Lock()
	t.bind(0, root)
	t.mu.Unlock()
	return t, nil
}

// Path returns the dotted path being tracked.
func (t *Tracker[S, V]) Path() string {
	return t.path.String()
}

// Value returns the value at the end of the path. ok is false when an
// intermediate link is nil.
func (t *Tracker[S, V]) Value() (value V, ok bool, err error) {
	if t.closed.Load() {
		return value, false, ErrDisposed
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	value, ok = t.current()
	return value, ok, nil
}

// OnChanged subscribes fn to changes of the value at the end of the path.
// On a closed tracker the returned subscription is already closed and Value
// reports ErrDisposed.
func (t *Tracker[S, V]) OnChanged(fn func(value V, ok bool)) *notify.Subscription {
	return t.changed.Subscribe(func(r result[V]) { fn(r.value, r.ok) })
}

// Close drops every subscription along the path. It is safe to call more
// than once.
func (t *Tracker[S, V]) Close() error {
	if !t.closed.CompareAndSwap(false, true) {
		return nil
	}
	t.mu.Lock()
	t.unbindFrom(0)
	t.mu.Unlock()
	t.changed.Close()
	return nil
}

// bind attaches node i to src and cascades to the following nodes.
func (t *Tracker[S, V]) bind(i int, src any) {
	t.unbindFrom(i)
	if isNil(src) {
		return
	}

	l := t.path.links[i]
	t.gen++
	gen := t.gen
	n := &t.nodes[i]
	n.source = src
	n.gen = gen
	n.bound = true
	n.sub = src.(notify.PropertyNotifier).OnPropertyChanged(func(name string) {
		if name == l.name || name == "" {
			t.onPropertyChanged(i, gen)
		}
	})
	n.value = l.get(src)

	if i+1 < len(t.nodes) {
		t.bind(i+1, n.value)
	}
}

// unbindFrom clears node i and every node after it.
func (t *Tracker[S, V]) unbindFrom(i int) {
	for j := i; j < len(t.nodes); j++ {
		t.nodes[j].sub.Close()
		t.nodes[j] = node{}
	}
}

func (t *Tracker[S, V]) onPropertyChanged(i int, gen uint64) {
	if t.closed.Load() {
		return
	}

	t.mu.Lock()
	n := &t.nodes[i]
	if !n.bound || n.gen != gen {
		t.mu.Unlock()
		return
	}

	old := n.value
	n.value = t.path.links[i].get(n.source)
	if i+1 < len(t.nodes) {
		if isNil(old) && isNil(n.value) {
			t.mu.Unlock()
			return
		}
		t.bind(i+1, n.value)
	}
	value, ok := t.current()
	t.mu.Unlock()

	t.changed.Emit(result[V]{value: value, ok: ok})
}

func (t *Tracker[S, V]) current() (V, bool) {
	last := t.nodes[len(t.nodes)-1]
	if !last.bound {
		var zero V
		return zero, false
	}
	v, _ := last.value.(V)
	return v, true
}

// Observe calls fn whenever source raises name (or the all-properties
// empty name).
func Observe(source notify.PropertyNotifier, name string, fn func()) *notify.Subscription {
	return source.OnPropertyChanged(func(raised string) {
		if raised == name || raised == "" {
			fn()
		}
	})
}
