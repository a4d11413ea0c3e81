package identity

import (
	"reflect"
)

// Options configure a Cache.
type Options[S comparable, D any] struct {
	// Project creates the derived instance for a source element at index.
	Project func(s S, index int) D
	// Update refreshes a derived instance whose index changed. Optional.
	Update func(d D, index int) D
	// Dispose releases a derived instance leaving the cache. Optional.
	Dispose func(d D)
}

type entry[D any] struct {
	value D
	refs  int
}

// Cache maps source references to derived instances.
//
// Cache is not safe for concurrent use; views serialise access.
type Cache[S comparable, D any] struct {
	opts    Options[S, D]
	byRef   bool
	entries map[S]*entry[D]
}

// New returns a Cache. Project is required.
func New[S comparable, D any](opts Options[S, D]) *Cache[S, D] {
	if opts.Project == nil {
		panic("identity: Options.Project is required")
	}
	return &Cache[S, D]{
		opts:    opts,
		byRef:   isReference(reflect.TypeFor[S]()),
		entries: make(map[S]*entry[D]),
	}
}

func isReference(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer, reflect.Interface:
		return true
	default:
		return false
	}
}

// Caching reports whether S is cached. It is decided from the static kind of
// S: an interface type is cached even when it holds plain values, which are
// then keyed by ==.
func (c *Cache[S, D]) Caching() bool {
	return c.byRef
}

// Len returns the number of distinct cached references.
func (c *Cache[S, D]) Len() int {
	return len(c.entries)
}

// Contains reports whether s has a cached instance.
func (c *Cache[S, D]) Contains(s S) bool {
	_, ok := c.entries[s]
	return ok
}

// Refs returns how many occurrences of s the cache accounts for.
func (c *Cache[S, D]) Refs(s S) int {
	if e, ok := c.entries[s]; ok {
		return e.refs
	}
	return 0
}

// Add returns the derived instance for an occurrence of s inserted at index.
func (c *Cache[S, D]) Add(s S, index int) D {
	if !c.byRef {
		recordMiss()
		return c.opts.Project(s, index)
	}
	if e, ok := c.entries[s]; ok {
		e.refs++
		recordHit()
		return e.value
	}
	recordMiss()
	d := c.opts.Project(s, index)
	c.entries[s] = &entry[D]{value: d, refs: 1}
	return d
}

// Remove accounts for one occurrence of s, holding d, leaving the source.
// d is disposed when it is no longer referenced.
func (c *Cache[S, D]) Remove(s S, d D) {
	if !c.byRef {
		c.dispose(d)
		return
	}
	e, ok := c.entries[s]
	if !ok {
		return
	}
	e.refs--
	if e.refs > 0 {
		return
	}
	delete(c.entries, s)
	recordEvictions(1)
	c.dispose(e.value)
}

// UpdateIndex applies Update to a derived instance now living at index.
func (c *Cache[S, D]) UpdateIndex(d D, index int) D {
	if c.opts.Update == nil {
		return d
	}
	return c.opts.Update(d, index)
}

// Reset re-derives the whole collection from sources. Cached references
// missing from sources are evicted and disposed; surviving references keep
// their instance. previous is the derived content being replaced; it is only
// consulted for value-typed sources, whose instances are all disposed.
func (c *Cache[S, D]) Reset(sources []S, previous []D) []D {
	out := make([]D, len(sources))
	if !c.byRef {
		for _, d := range previous {
			c.dispose(d)
		}
		for i, s := range sources {
			recordMiss()
			out[i] = c.opts.Project(s, i)
		}
		return out
	}

	counts := make(map[S]int, len(sources))
	for _, s := range sources {
		counts[s]++
	}

	var evicted []D
	for s, e := range c.entries {
		if counts[s] == 0 {
			delete(c.entries, s)
			evicted = append(evicted, e.value)
		}
	}
	recordEvictions(len(evicted))

	for i, s := range sources {
		if e, ok := c.entries[s]; ok {
			e.refs = counts[s]
			recordHit()
			out[i] = e.value
			continue
		}
		recordMiss()
		d := c.opts.Project(s, i)
		c.entries[s] = &entry[D]{value: d, refs: counts[s]}
		out[i] = d
	}

	for _, d := range evicted {
		c.dispose(d)
	}
	return out
}

// Clear evicts every cached instance and disposes each exactly once.
// previous is disposed instead for value-typed sources.
func (c *Cache[S, D]) Clear(previous []D) {
	if !c.byRef {
		for _, d := range previous {
			c.dispose(d)
		}
		return
	}
	evicted := make([]D, 0, len(c.entries))
	for s, e := range c.entries {
		delete(c.entries, s)
		evicted = append(evicted, e.value)
	}
	recordEvictions(len(evicted))
	for _, d := range evicted {
		c.dispose(d)
	}
}

func (c *Cache[S, D]) dispose(d D) {
	if c.opts.Dispose != nil {
		c.opts.Dispose(d)
	}
}
