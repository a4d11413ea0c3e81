package diff

import (
	"slices"

	"github.com/guorg/liveview/internal/change"
)

// Changes returns the changes that turn before into after, comparing elements
// with ==. The result is nil when the snapshots are equal.
func Changes[T comparable](before, after []T) []change.Change[T] {
	return ChangesFunc(before, after, func(a, b T) bool { return a == b })
}

// ChangesFunc is Changes with a caller-supplied equality.
func ChangesFunc[T any](before, after []T, eq func(a, b T) bool) []change.Change[T] {
	switch {
	case len(after) == len(before)+1:
		if i, ok := singleInsert(before, after, eq); ok {
			return one(change.Added(after[i], i))
		}
	case len(after)+1 == len(before):
		if i, ok := singleInsert(after, before, eq); ok {
			return one(change.Removed(before[i], i))
		}
	case len(after) == len(before):
		first := firstMismatch(before, after, eq)
		if first == len(before) {
			return nil
		}
		last := lastMismatch(before, after, eq)
		if first == last {
			return one(change.Replaced(before[first], after[first], first))
		}
		if c, ok := singleMove(before, after, first, last, eq); ok {
			return one(c)
		}
	}
	return one(change.ResetWith(slices.Clone(after)))
}

// Equal reports whether a and b are element-wise equal under eq.
func Equal[T any](a, b []T, eq func(a, b T) bool) bool {
	return len(a) == len(b) && firstMismatch(a, b, eq) == len(a)
}

func one[T any](c change.Change[T]) []change.Change[T] {
	return []change.Change[T]{c}
}

// singleInsert reports whether long is short with exactly one element
// inserted, and where.
func singleInsert[T any](short, long []T, eq func(a, b T) bool) (int, bool) {
	i := firstMismatch(short, long[:len(short)], eq)
	for j := i; j < len(short); j++ {
		if !eq(short[j], long[j+1]) {
			return 0, false
		}
	}
	return i, true
}

// singleMove checks whether the window [first, last] differs only by one
// element travelling from one end to the other.
func singleMove[T any](before, after []T, first, last int, eq func(a, b T) bool) (change.Change[T], bool) {
	// before[first] travelled forward to last.
	if eq(before[first], after[last]) && rangeEqual(before[first+1:last+1], after[first:last], eq) {
		return change.Moved(before[first], first, last), true
	}
	// before[last] travelled back to first.
	if eq(before[last], after[first]) && rangeEqual(before[first:last], after[first+1:last+1], eq) {
		return change.Moved(before[last], last, first), true
	}
	return change.Change[T]{}, false
}

func rangeEqual[T any](a, b []T, eq func(a, b T) bool) bool {
	for i := range a {
		if !eq(a[i], b[i]) {
			return false
		}
	}
	return true
}

// firstMismatch returns the first index at which a and b differ, or len(a)
// when b starts with all of a.
func firstMismatch[T any](a, b []T, eq func(a, b T) bool) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if !eq(a[i], b[i]) {
			return i
		}
	}
	return n
}

// lastMismatch returns the last differing index of two equal-length slices.
func lastMismatch[T any](a, b []T, eq func(a, b T) bool) int {
	for i := len(a) - 1; i >= 0; i-- {
		if !eq(a[i], b[i]) {
			return i
		}
	}
	return -1
}
