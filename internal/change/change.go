// Package change defines collection change notifications and the Observable
// contract shared by sources and views.
package change

import (
	"errors"
	"fmt"
	"slices"

	"github.com/guorg/liveview/internal/notify"
)

// Action identifies the kind of a collection change.
type Action int

const (
	Add Action = iota
	Remove
	Replace
	Move
	Reset
)

// Property names raised ahead of collection changes.
const (
	CountProperty   = "Count"
	IndexerProperty = "Item[]"
)

// ErrIndexOutOfRange is returned by Apply when a change does not fit the
// snapshot it is replayed against.
var ErrIndexOutOfRange = errors.New("change index out of range")

func (a Action) String() string {
	switch a {
	case Add:
		return "Add"
	case Remove:
		return "Remove"
	case Replace:
		return "Replace"
	case Move:
		return "Move"
	case Reset:
		return "Reset"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Change is a single collection change.
//
//   - Add: Item inserted at Index.
//   - Remove: Item removed from Index.
//   - Replace: OldItem at Index replaced by Item.
//   - Move: Item moved from OldIndex to Index.
//   - Reset: structure changed arbitrarily; Items is the new content.
type Change[T any] struct {
	Action   Action
	Item     T
	OldItem  T
	Index    int
	OldIndex int
	Items    []T
}

// Added returns an Add change.
func Added[T any](item T, index int) Change[T] {
	return Change[T]{Action: Add, Item: item, Index: index, OldIndex: -1}
}

// Removed returns a Remove change.
func Removed[T any](item T, index int) Change[T] {
	return Change[T]{Action: Remove, Item: item, Index: index, OldIndex: index}
}

// Replaced returns a Replace change.
func Replaced[T any](oldItem, newItem T, index int) Change[T] {
	return Change[T]{Action: Replace, Item: newItem, OldItem: oldItem, Index: index, OldIndex: index}
}

// Moved returns a Move change.
func Moved[T any](item T, from, to int) Change[T] {
	return Change[T]{Action: Move, Item: item, Index: to, OldIndex: from}
}

// ResetWith returns a Reset change carrying the new content.
func ResetWith[T any](items []T) Change[T] {
	return Change[T]{Action: Reset, Items: items, Index: -1, OldIndex: -1}
}

// CountChanged reports whether applying c alters the collection length,
// given the length before the change.
func (c Change[T]) CountChanged(before int) bool {
	switch c.Action {
	case Add, Remove:
		return true
	case Reset:
		return len(c.Items) != before
	default:
		return false
	}
}

func (c Change[T]) String() string {
	switch c.Action {
	case Add, Remove:
		return fmt.Sprintf("%s(%v, %d)", c.Action, c.Item, c.Index)
	case Replace:
		return fmt.Sprintf("Replace(%v -> %v, %d)", c.OldItem, c.Item, c.Index)
	case Move:
		return fmt.Sprintf("Move(%v, %d -> %d)", c.Item, c.OldIndex, c.Index)
	default:
		return fmt.Sprintf("Reset(%d items)", len(c.Items))
	}
}

// Map converts a change over S into a change over D. Reset content is mapped
// element-wise.
func Map[S, D any](c Change[S], fn func(S) D) Change[D] {
	out := Change[D]{Action: c.Action, Index: c.Index, OldIndex: c.OldIndex}
	switch c.Action {
	case Add, Remove, Move:
		out.Item = fn(c.Item)
	case Replace:
		out.Item = fn(c.Item)
		out.OldItem = fn(c.OldItem)
	case Reset:
		out.Items = make([]D, len(c.Items))
		for i, item := range c.Items {
			out.Items[i] = fn(item)
		}
	}
	return out
}

// Apply replays changes against before and returns the resulting snapshot.
// before is not modified.
func Apply[T any](before []T, changes []Change[T]) ([]T, error) {
	out := slices.Clone(before)
	for i, c := range changes {
		var err error
		out, err = applyOne(out, c)
		if err != nil {
			return nil, fmt.Errorf("apply change %d (%s): %w", i, c.Action, err)
		}
	}
	return out, nil
}

func applyOne[T any](items []T, c Change[T]) ([]T, error) {
	switch c.Action {
	case Add:
		if c.Index < 0 || c.Index > len(items) {
			return nil, ErrIndexOutOfRange
		}
		return slices.Insert(items, c.Index, c.Item), nil
	case Remove:
		if c.Index < 0 || c.Index >= len(items) {
			return nil, ErrIndexOutOfRange
		}
		return slices.Delete(items, c.Index, c.Index+1), nil
	case Replace:
		if c.Index < 0 || c.Index >= len(items) {
			return nil, ErrIndexOutOfRange
		}
		items[c.Index] = c.Item
		return items, nil
	case Move:
		if c.OldIndex < 0 || c.OldIndex >= len(items) || c.Index < 0 || c.Index >= len(items) {
			return nil, ErrIndexOutOfRange
		}
		// The moved element is taken from the change, which may carry an
		// updated value.
		items = slices.Delete(items, c.OldIndex, c.OldIndex+1)
		return slices.Insert(items, c.Index, c.Item), nil
	case Reset:
		return slices.Clone(c.Items), nil
	default:
		return nil, fmt.Errorf("unknown action %d", int(c.Action))
	}
}

// Observable is a collection that announces its changes.
type Observable[T any] interface {
	// Snapshot returns a copy of the current content.
	Snapshot() []T
	OnCollectionChanged(fn func(Change[T])) *notify.Subscription
	OnPropertyChanged(fn func(name string)) *notify.Subscription
}
