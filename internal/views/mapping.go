package views

import (
	"errors"
	"fmt"
	"slices"

	"github.com/guorg/liveview/internal/change"
	"github.com/guorg/liveview/internal/diff"
	"github.com/guorg/liveview/internal/identity"
	"github.com/guorg/liveview/internal/notify"
)

// ErrNilProjection is returned when a mapping view has no projection.
var ErrNilProjection = errors.New("mapping projection is nil")

// Mapping projects every element of its source through an identity cache.
// Upstream changes are forwarded one to one: an Add upstream is an Add here
// at the same index. Duplicate source references share one derived
// instance, and a derived instance is disposed once no occurrence of its
// source remains.
type Mapping[S comparable, D any] struct {
	base[D]

	source   change.Observable[S]
	upstream *notify.Subscription
	cache    *identity.Cache[S, D]

	// sources mirrors the upstream content the view was last synced to.
	sources []S
	items   []D
}

// NewMapping returns a view of source projected with opts.Project.
//
// Without a buffer time upstream changes are translated as they arrive.
// With one, the view diffs the upstream snapshot against the content it last
// saw once per window.
func NewMapping[S comparable, D any](source change.Observable[S], projection identity.Options[S, D], opts ...Option) (*Mapping[S, D], error) {
	if source == nil {
		return nil, ErrNilSource
	}
	if projection.Project == nil {
		return nil, ErrNilProjection
	}

	m := &Mapping[S, D]{
		source: source,
		cache:  identity.New(projection),
	}
	m.init("mapping", source, opts)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sources = source.Snapshot()
	m.items = m.cache.Reset(m.sources, nil)
	m.store(m.items)
	m.upstream = source.OnCollectionChanged(m.onSourceChanged)
	m.attachTriggers(m.flush)
	return m, nil
}

// Map is NewMapping for a plain projection without update or dispose hooks.
func Map[S comparable, D any](source change.Observable[S], project func(S) D, opts ...Option) (*Mapping[S, D], error) {
	if project == nil {
		return nil, ErrNilProjection
	}
	return NewMapping(source, identity.Options[S, D]{
		Project: func(s S, _ int) D { return project(s) },
	}, opts...)
}

// Cached returns the number of distinct source references with a cached
// derived instance. It must not be called from a notification handler.
func (m *Mapping[S, D]) Cached() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache.Len()
}

func (m *Mapping[S, D]) onSourceChanged(c change.Change[S]) {
	if m.opts.bufferTime > 0 || m.holding() {
		m.signal(m.flush)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed.Load() {
		return
	}
	if err := m.apply(c); err != nil {
		m.opts.logger.Warn("mapping out of step with source, resyncing",
			"change", c.String(),
			"error", err,
		)
		m.sync()
		return
	}
	recordRefresh(m.kind, 1)
}

func (m *Mapping[S, D]) flush() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed.Load() {
		return
	}
	m.sync()
}

// sync brings the view in line with the upstream snapshot. Callers hold mu.
func (m *Mapping[S, D]) sync() {
	after := m.source.Snapshot()
	changes := diff.Changes(m.sources, after)
	for _, c := range changes {
		if err := m.apply(c); err != nil {
			// A Reset always applies.
			m.opts.logger.Error("mapping resync failed", "error", err)
			_ = m.apply(change.ResetWith(after))
			break
		}
	}
	recordRefresh(m.kind, len(changes))
}

// apply translates one upstream change and publishes it. Derived instances
// that leave the view are released after the notification went out.
// Callers hold mu.
func (m *Mapping[S, D]) apply(c change.Change[S]) error {
	sources, err := change.Apply(m.sources, []change.Change[S]{c})
	if err != nil {
		return fmt.Errorf("mapping %s: %w", c.Action, err)
	}

	before := len(m.items)
	var (
		out     change.Change[D]
		release func()
	)
	switch c.Action {
	case change.Add:
		out = change.Added(m.cache.Add(c.Item, c.Index), c.Index)
	case change.Remove:
		d := m.items[c.Index]
		out = change.Removed(d, c.Index)
		release = func() { m.cache.Remove(c.Item, d) }
	case change.Replace:
		old := m.items[c.Index]
		out = change.Replaced(old, m.cache.Add(c.Item, c.Index), c.Index)
		release = func() { m.cache.Remove(c.OldItem, old) }
	case change.Move:
		out = change.Moved(m.items[c.OldIndex], c.OldIndex, c.Index)
	case change.Reset:
		out = change.ResetWith(m.cache.Reset(c.Items, m.items))
	}

	items, err := change.Apply(m.items, []change.Change[D]{out})
	if err != nil {
		return fmt.Errorf("mapping %s: %w", c.Action, err)
	}
	m.reindex(items, c)
	switch out.Action {
	case change.Add, change.Replace, change.Move:
		out.Item = items[out.Index]
	case change.Reset:
		out.Items = slices.Clone(items)
	}

	m.sources = sources
	m.items = items
	m.store(items)
	m.Publish(out, out.CountChanged(before))

	if release != nil {
		release()
	}
	return nil
}

// reindex runs the Update hook on every element whose position c may have
// shifted. Callers hold mu.
func (m *Mapping[S, D]) reindex(items []D, c change.Change[S]) {
	lo, hi := 0, len(items)
	switch c.Action {
	case change.Add, change.Remove:
		lo = c.Index
	case change.Replace:
		lo, hi = c.Index, c.Index+1
	case change.Move:
		lo, hi = min(c.OldIndex, c.Index), max(c.OldIndex, c.Index)+1
	}
	for i := lo; i < hi; i++ {
		items[i] = m.cache.UpdateIndex(items[i], i)
	}
}

// Refresh resynchronises with the upstream now, ignoring any buffer time.
func (m *Mapping[S, D]) Refresh() error {
	if m.closed.Load() {
		return ErrDisposed
	}
	m.flush()
	return nil
}

// DeferRefresh suspends forwarding until resume is called. Upstream changes
// arriving in between are published as one difference on resume.
func (m *Mapping[S, D]) DeferRefresh() (resume func(), err error) {
	if m.closed.Load() {
		return func() {}, ErrDisposed
	}
	return m.deferRefresh(m.flush), nil
}

// Close detaches the view and disposes every cached derived instance exactly
// once. Closing twice is a no-op.
func (m *Mapping[S, D]) Close() error {
	return m.closeWith(func() {
		m.upstream.Close()
		items := m.items
		m.items = nil
		m.sources = nil
		m.cache.Clear(items)
	})
}
