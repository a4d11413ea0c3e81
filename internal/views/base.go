package views

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/guorg/liveview/internal/change"
	"github.com/guorg/liveview/internal/notify"
	"github.com/guorg/liveview/internal/scheduler"
	"github.com/guorg/liveview/internal/synchronizer"
)

var (
	// ErrDisposed is returned by every operation on a closed view.
	ErrDisposed = errors.New("view is closed")
	// ErrNilSource is returned when a view is built without an upstream.
	ErrNilSource = errors.New("view source is nil")
)

// base carries what every view shares: publishing, the published snapshot,
// buffering and teardown.
type base[T any] struct {
	change.Notifier[T]

	kind   string
	opts   options
	closed atomic.Bool

	// mu serialises refreshes and the publishing they do.
	mu   sync.Mutex
	subs []*notify.Subscription

	snap atomic.Pointer[[]T]

	pendingMu sync.Mutex
	pending   bool
	round     uint64
	cancel    scheduler.Cancel
	deferred  int
	dirty     bool

	owned any
}

func (b *base[T]) init(kind string, owned any, opts []Option) {
	b.kind = kind
	b.owned = owned
	b.opts = buildOptions(opts)
	empty := []T{}
	b.snap.Store(&empty)
}

// store publishes items as the snapshot readers see. items must not be
// modified afterwards.
func (b *base[T]) store(items []T) {
	b.snap.Store(&items)
}

// Items returns a copy of the view's content.
func (b *base[T]) Items() ([]T, error) {
	if b.closed.Load() {
		return nil, ErrDisposed
	}
	return slices.Clone(*b.snap.Load()), nil
}

// Snapshot returns a copy of the view's content. Once closed it returns nil;
// Items reports ErrDisposed instead.
func (b *base[T]) Snapshot() []T {
	items, err := b.Items()
	if err != nil {
		b.closedAccess("Snapshot")
	}
	return items
}

// Len returns the number of elements, or zero once closed.
func (b *base[T]) Len() int {
	if b.closed.Load() {
		b.closedAccess("Len")
		return 0
	}
	return len(*b.snap.Load())
}

// OnCollectionChanged subscribes fn to collection changes. On a closed view
// the returned subscription is already closed.
func (b *base[T]) OnCollectionChanged(fn func(change.Change[T])) *notify.Subscription {
	if b.closed.Load() {
		b.closedAccess("OnCollectionChanged")
	}
	return b.Notifier.OnCollectionChanged(fn)
}

// OnPropertyChanged subscribes fn to property changes. On a closed view the
// returned subscription is already closed.
func (b *base[T]) OnPropertyChanged(fn func(name string)) *notify.Subscription {
	if b.closed.Load() {
		b.closedAccess("OnPropertyChanged")
	}
	return b.Notifier.OnPropertyChanged(fn)
}

// closedAccess records a lenient call on a closed view, the ones that have
// no error result to report ErrDisposed through.
func (b *base[T]) closedAccess(op string) {
	b.opts.logger.Debug("access to closed view", "view", b.kind, "op", op, "error", ErrDisposed)
}

// At returns the element at index.
func (b *base[T]) At(index int) (T, error) {
	var zero T
	if b.closed.Load() {
		return zero, ErrDisposed
	}
	items := *b.snap.Load()
	if index < 0 || index >= len(items) {
		return zero, fmt.Errorf("index %d with length %d: %w", index, len(items), change.ErrIndexOutOfRange)
	}
	return items[index], nil
}

// Range calls fn for each element of the current content until fn returns
// false. It never observes a half-applied refresh.
func (b *base[T]) Range(fn func(index int, item T) bool) error {
	if b.closed.Load() {
		return ErrDisposed
	}
	for i, item := range *b.snap.Load() {
		if !fn(i, item) {
			break
		}
	}
	return nil
}

// Closed reports whether Close has been called.
func (b *base[T]) Closed() bool {
	return b.closed.Load()
}

// watch records a subscription to release on Close. Callers hold mu.
func (b *base[T]) watch(sub *notify.Subscription) {
	b.subs = append(b.subs, sub)
}

func (b *base[T]) attachTriggers(flush func()) {
	for _, t := range b.opts.triggers {
		b.watch(t.Subscribe(func() { b.signal(flush) }))
	}
}

// signal runs flush now, or schedules it once per buffer window.
func (b *base[T]) signal(flush func()) {
	if b.closed.Load() {
		return
	}

	b.pendingMu.Lock()
	if b.deferred > 0 {
		b.dirty = true
		b.pendingMu.Unlock()
		return
	}
	if b.opts.bufferTime <= 0 {
		b.pendingMu.Unlock()
		flush()
		return
	}
	if b.pending {
		b.pendingMu.Unlock()
		return
	}
	b.pending = true
	b.round++
	round := b.round
	b.pendingMu.Unlock()

	cancel := b.opts.scheduler.Schedule(b.opts.bufferTime, func() {
		b.pendingMu.Lock()
		if b.round != round || !b.pending {
			b.pendingMu.Unlock()
			return
		}
		b.pending = false
		b.cancel = nil
		if b.deferred > 0 {
			// Picked up by the outermost resume.
			b.dirty = true
			b.pendingMu.Unlock()
			return
		}
		b.pendingMu.Unlock()

		if b.closed.Load() {
			return
		}
		flush()
	})

	b.pendingMu.Lock()
	if b.pending && b.round == round {
		b.cancel = cancel
	}
	b.pendingMu.Unlock()
}

// deferRefresh holds back refreshes until the returned resume function has
// been called. Nested calls are allowed; the outermost resume runs a single
// flush when anything arrived in between.
func (b *base[T]) deferRefresh(flush func()) (resume func()) {
	b.pendingMu.Lock()
	b.deferred++
	b.pendingMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.pendingMu.Lock()
			b.deferred--
			run := b.deferred == 0 && b.dirty
			if run {
				b.dirty = false
			}
			b.pendingMu.Unlock()

			if run && !b.closed.Load() {
				flush()
			}
		})
	}
}

// closeWith tears the view down once. release runs under mu after upstream
// subscriptions are dropped.
func (b *base[T]) closeWith(release func()) error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	b.pendingMu.Lock()
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	b.pending = false
	b.round++
	b.pendingMu.Unlock()

	func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, sub := range b.subs {
			sub.Close()
		}
		b.subs = nil
		if release != nil {
			release()
		}
	}()

	b.Notifier.Close()

	var err error
	if b.opts.ownsSource {
		if c, ok := b.owned.(io.Closer); ok {
			err = c.Close()
		}
	}
	b.opts.logger.Debug("view closed", "view", b.kind, "owns_source", b.opts.ownsSource)
	if err != nil {
		return fmt.Errorf("close %s source: %w", b.kind, err)
	}
	return nil
}

// resync diffs items against s and publishes the result. The new snapshot
// is visible to readers before the first notification goes out.
func (b *base[T]) resync(s *synchronizer.Synchronizer[T], items []T) int {
	stored := false
	storeOnce := func() {
		if !stored {
			b.store(s.Current())
			stored = true
		}
	}
	changes := s.Refresh(items,
		func(name string) {
			storeOnce()
			b.RaiseProperty(name)
		},
		func(c change.Change[T]) {
			storeOnce()
			b.RaiseCollection(c)
		},
	)
	recordRefresh(b.kind, len(changes))
	if len(changes) > 0 {
		b.opts.logger.Debug("view refreshed", "view", b.kind, "change", changes[0].Action.String(), "len", s.Len())
	}
	return len(changes)
}

func (b *base[T]) holding() bool {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()
	return b.deferred > 0 || b.pending
}
