package views

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guorg/liveview/internal/change"
	"github.com/guorg/liveview/internal/collection"
	"github.com/guorg/liveview/internal/identity"
	"github.com/guorg/liveview/internal/scheduler"
)

type row struct{ name string }

type rowView struct {
	row      *row
	index    int
	disposed int
}

func rowProjection() identity.Options[*row, *rowView] {
	return identity.Options[*row, *rowView]{
		Project: func(r *row, index int) *rowView { return &rowView{row: r, index: index} },
		Update: func(v *rowView, index int) *rowView {
			v.index = index
			return v
		},
		Dispose: func(v *rowView) { v.disposed++ },
	}
}

func TestMapping_DuplicateReferencesShareInstance(t *testing.T) {
	a := &row{"a"}
	src := collection.NewList(a)
	m, err := NewMapping[*row](src, rowProjection())
	require.NoError(t, err)

	src.Add(a)
	items, err := m.Items()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Same(t, items[0], items[1])
	assert.Equal(t, 1, m.Cached())

	shared := items[0]
	require.NoError(t, src.RemoveAt(0))
	assert.Equal(t, 0, shared.disposed, "another occurrence is still present")

	require.NoError(t, src.RemoveAt(0))
	assert.Equal(t, 1, shared.disposed)
	assert.Equal(t, 0, m.Cached())
}

func TestMapping_ForwardsChangeShapes(t *testing.T) {
	a, b, c := &row{"a"}, &row{"b"}, &row{"c"}
	src := collection.NewList(a, b)
	m, err := NewMapping[*row](src, rowProjection())
	require.NoError(t, err)
	r := record[*rowView](m)

	var disposedAtRemove int
	m.OnCollectionChanged(func(ch change.Change[*rowView]) {
		if ch.Action == change.Remove {
			disposedAtRemove = ch.Item.disposed
		}
	})

	src.Add(c)
	require.NoError(t, src.Move(2, 0))
	require.NoError(t, src.RemoveAt(2))

	require.Len(t, r.changes, 3)
	assert.Equal(t, change.Add, r.changes[0].Action)
	assert.Equal(t, 2, r.changes[0].Index)
	assert.Same(t, c, r.changes[0].Item.row)

	assert.Equal(t, change.Move, r.changes[1].Action)
	assert.Equal(t, 2, r.changes[1].OldIndex)
	assert.Equal(t, 0, r.changes[1].Index)
	assert.Equal(t, 0, r.changes[1].Item.index, "moved instance is updated with its new index")

	assert.Equal(t, change.Remove, r.changes[2].Action)
	assert.Same(t, b, r.changes[2].Item.row)
	assert.Equal(t, 0, disposedAtRemove, "dispose runs after the notification")
	assert.Equal(t, 1, r.changes[2].Item.disposed)

	assert.Equal(t, []string{
		"prop:Count", "prop:Item[]", r.changes[0].String(),
		"prop:Item[]", r.changes[1].String(),
		"prop:Count", "prop:Item[]", r.changes[2].String(),
	}, r.events)
}

func TestMapping_ReplaceDisposesOldInstance(t *testing.T) {
	a, b := &row{"a"}, &row{"b"}
	src := collection.NewList(a)
	m, err := NewMapping[*row](src, rowProjection())
	require.NoError(t, err)

	old := m.Snapshot()[0]
	require.NoError(t, src.Set(0, b))

	assert.Equal(t, 1, old.disposed)
	assert.Same(t, b, m.Snapshot()[0].row)
}

func TestMapping_ResetReusesSurvivors(t *testing.T) {
	a, b, c := &row{"a"}, &row{"b"}, &row{"c"}
	src := collection.NewList(a, b)
	m, err := NewMapping[*row](src, rowProjection())
	require.NoError(t, err)
	before := m.Snapshot()

	src.ResetTo([]*row{c, a, c})

	after := m.Snapshot()
	require.Len(t, after, 3)
	assert.Same(t, before[0], after[1])
	assert.Same(t, after[0], after[2])
	assert.Equal(t, 1, before[1].disposed)
	assert.Equal(t, 0, before[0].disposed)
	assert.Equal(t, 2, m.Cached())
}

func TestMapping_CloseDisposesEachInstanceOnce(t *testing.T) {
	a, b := &row{"a"}, &row{"b"}
	src := collection.NewList(a, b, a)
	m, err := NewMapping[*row](src, rowProjection())
	require.NoError(t, err)
	items := m.Snapshot()

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	assert.Equal(t, 1, items[0].disposed)
	assert.Equal(t, 1, items[1].disposed)
	assert.Equal(t, 0, src.Subscribers())

	_, err = m.Items()
	assert.ErrorIs(t, err, ErrDisposed)
	assert.ErrorIs(t, m.Refresh(), ErrDisposed)

	src.Add(b)
	assert.Equal(t, 1, items[1].disposed)
}

func TestMapping_ValueSourcesAreNotCached(t *testing.T) {
	var disposed []string
	src := collection.NewList(1, 1)
	m, err := NewMapping[int](src, identity.Options[int, string]{
		Project: func(n, index int) string { return strconv.Itoa(n) + "@" + strconv.Itoa(index) },
		Dispose: func(s string) { disposed = append(disposed, s) },
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1@0", "1@1"}, m.Snapshot())
	assert.Equal(t, 0, m.Cached())

	require.NoError(t, src.RemoveAt(0))
	assert.Equal(t, []string{"1@0"}, disposed)
	assert.Equal(t, []string{"1@1"}, m.Snapshot())
}

func TestMap_Buffered(t *testing.T) {
	v := scheduler.NewVirtual()
	src := collection.NewList(1, 2, 3)
	m, err := Map[int](src, strconv.Itoa, WithScheduler(v), WithBufferTime(10*time.Millisecond))
	require.NoError(t, err)
	r := record[string](m)

	src.Add(4)
	require.NoError(t, src.RemoveAt(0))
	assert.Empty(t, r.events)

	v.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"2", "3", "4"}, m.Snapshot())
	require.Len(t, r.changes, 1)
	assert.Equal(t, change.Reset, r.changes[0].Action)

	src.Add(5)
	v.Advance(10 * time.Millisecond)
	assert.Equal(t, change.Added("5", 3), r.changes[1])
}

func TestMapping_DeferRefresh(t *testing.T) {
	src := collection.NewList(1)
	m, err := Map[int](src, strconv.Itoa)
	require.NoError(t, err)
	r := record[string](m)

	resume, err := m.DeferRefresh()
	require.NoError(t, err)
	src.Add(2)
	require.NoError(t, src.Set(0, 7))
	assert.Empty(t, r.events)
	assert.Equal(t, []string{"1"}, m.Snapshot())

	resume()
	assert.Equal(t, []string{"7", "2"}, m.Snapshot())
	assert.Len(t, r.changes, 1)
}

func TestNewMapping_Errors(t *testing.T) {
	_, err := Map[int, string](nil, strconv.Itoa)
	assert.ErrorIs(t, err, ErrNilSource)

	_, err = Map[int, string](collection.NewList(1), nil)
	assert.ErrorIs(t, err, ErrNilProjection)

	_, err = NewMapping[int](collection.NewList(1), identity.Options[int, string]{})
	assert.ErrorIs(t, err, ErrNilProjection)
}

func indices(items []*rowView) []int {
	out := make([]int, len(items))
	for i, v := range items {
		out[i] = v.index
	}
	return out
}

func TestMapping_ReindexesShiftedItems(t *testing.T) {
	a, b, c, d, e := &row{"a"}, &row{"b"}, &row{"c"}, &row{"d"}, &row{"e"}
	src := collection.NewList(a, b, c)
	m, err := NewMapping[*row](src, rowProjection())
	require.NoError(t, err)

	require.NoError(t, src.RemoveAt(0))
	assert.Equal(t, []int{0, 1}, indices(m.Snapshot()), "remove at 0")

	require.NoError(t, src.Insert(0, d))
	assert.Equal(t, []int{0, 1, 2}, indices(m.Snapshot()), "insert at 0")

	require.NoError(t, src.Move(0, 2))
	items := m.Snapshot()
	assert.Equal(t, []int{0, 1, 2}, indices(items), "move")
	assert.Same(t, d, items[2].row)

	survivor := items[2]
	src.ResetTo([]*row{e, d})
	items = m.Snapshot()
	assert.Equal(t, []int{0, 1}, indices(items), "reset")
	assert.Same(t, survivor, items[1])
}

type slot struct {
	name  string
	index int
}

func TestMapping_MoveCarriesUpdatedValue(t *testing.T) {
	src := collection.NewList("a", "b", "c")
	m, err := NewMapping[string](src, identity.Options[string, slot]{
		Project: func(s string, index int) slot { return slot{s, index} },
		Update: func(v slot, index int) slot {
			v.index = index
			return v
		},
	})
	require.NoError(t, err)
	r := record[slot](m)

	require.NoError(t, src.Move(0, 2))

	got, err := m.At(2)
	require.NoError(t, err)
	assert.Equal(t, slot{"a", 2}, got)
	assert.Equal(t, []slot{{"b", 0}, {"c", 1}, {"a", 2}}, m.Snapshot())
	require.Len(t, r.changes, 1)
	assert.Equal(t, change.Moved(slot{"a", 2}, 0, 2), r.changes[0])
}
