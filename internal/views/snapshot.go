package views

import (
	"github.com/guorg/liveview/internal/change"
	"github.com/guorg/liveview/internal/notify"
	"github.com/guorg/liveview/internal/synchronizer"
)

// snapshotView re-reads its upstream on every signal and publishes the
// difference to its previous content. Filtered, Throttled and Serial are
// built on it.
type snapshotView[T comparable] struct {
	base[T]

	source   change.Observable[T]
	static   []T
	upstream *notify.Subscription
	sync     *synchronizer.Synchronizer[T]
	shape    func(items []T) []T
}

func (v *snapshotView[T]) start(kind string, source change.Observable[T], shape func([]T) []T, opts []Option) {
	v.init(kind, source, opts)
	v.shape = shape

	v.mu.Lock()
	defer v.mu.Unlock()

	v.attach(source)
	v.sync = synchronizer.New(v.compute())
	v.store(v.sync.Current())
	v.attachTriggers(v.flush)
}

// attach switches the upstream. Callers hold mu.
func (v *snapshotView[T]) attach(source change.Observable[T]) {
	if v.upstream != nil {
		v.upstream.Close()
		v.upstream = nil
	}
	v.source = source
	v.owned = source
	if source == nil {
		return
	}
	v.upstream = source.OnCollectionChanged(func(change.Change[T]) {
		v.signal(v.flush)
	})
}

// compute returns the content the view should hold now. Callers hold mu.
func (v *snapshotView[T]) compute() []T {
	items := v.static
	if v.source != nil {
		items = v.source.Snapshot()
	}
	if v.shape != nil {
		items = v.shape(items)
	}
	return items
}

func (v *snapshotView[T]) flush() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed.Load() {
		return
	}
	v.resync(v.sync, v.compute())
}

// Refresh re-reads the upstream now, ignoring any buffer time.
func (v *snapshotView[T]) Refresh() error {
	if v.closed.Load() {
		return ErrDisposed
	}
	v.flush()
	return nil
}

// DeferRefresh suspends refreshes until resume is called. Upstream changes
// arriving in between are published as one difference on resume.
func (v *snapshotView[T]) DeferRefresh() (resume func(), err error) {
	if v.closed.Load() {
		return func() {}, ErrDisposed
	}
	return v.deferRefresh(v.flush), nil
}

// Close detaches the view from its upstream. Closing twice is a no-op.
func (v *snapshotView[T]) Close() error {
	return v.closeWith(func() {
		if v.upstream != nil {
			v.upstream.Close()
			v.upstream = nil
		}
	})
}
