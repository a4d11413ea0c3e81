package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guorg/liveview/internal/change"
)

func TestChanges(t *testing.T) {
	tests := []struct {
		name   string
		before []int
		after  []int
		want   []change.Change[int]
	}{
		{"empty to empty", nil, []int{}, nil},
		{"equal", []int{1, 2, 3}, []int{1, 2, 3}, nil},
		{"append", []int{1, 2}, []int{1, 2, 3}, []change.Change[int]{change.Added(3, 2)}},
		{"add to empty", nil, []int{7}, []change.Change[int]{change.Added(7, 0)}},
		{"insert middle", []int{1, 3}, []int{1, 2, 3}, []change.Change[int]{change.Added(2, 1)}},
		{"insert duplicate", []int{1, 1}, []int{1, 1, 1}, []change.Change[int]{change.Added(1, 2)}},
		{"remove first", []int{1, 2, 3}, []int{2, 3}, []change.Change[int]{change.Removed(1, 0)}},
		{"remove last", []int{1, 2, 3}, []int{1, 2}, []change.Change[int]{change.Removed(3, 2)}},
		{"clear single item", []int{5}, []int{}, []change.Change[int]{change.Removed(5, 0)}},
		{"replace", []int{1, 2, 3}, []int{1, 9, 3}, []change.Change[int]{change.Replaced(2, 9, 1)}},
		{"move forward", []int{1, 2, 3, 4}, []int{2, 3, 1, 4}, []change.Change[int]{change.Moved(1, 0, 2)}},
		{"move back", []int{1, 2, 3, 4}, []int{1, 4, 2, 3}, []change.Change[int]{change.Moved(4, 3, 1)}},
		{"swap adjacent", []int{1, 2}, []int{2, 1}, []change.Change[int]{change.Moved(1, 0, 1)}},
		{"clear many", []int{1, 2}, []int{}, []change.Change[int]{change.ResetWith([]int{})}},
		{"two adds", []int{1}, []int{1, 2, 3}, []change.Change[int]{change.ResetWith([]int{1, 2, 3})}},
		{"two replaces", []int{1, 2, 3}, []int{9, 2, 8}, []change.Change[int]{change.ResetWith([]int{9, 2, 8})}},
		{"add and remove", []int{1, 2, 3}, []int{2, 3, 4}, []change.Change[int]{change.ResetWith([]int{2, 3, 4})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Changes(tt.before, tt.after)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChanges_RoundTrip(t *testing.T) {
	snapshots := [][]int{
		nil,
		{1},
		{1, 2},
		{2, 1},
		{1, 2, 3},
		{3, 2, 1},
		{1, 1, 2},
		{1, 2, 2, 3},
		{4, 5, 6, 7, 8},
		{4, 6, 7, 8, 5},
	}

	for _, before := range snapshots {
		for _, after := range snapshots {
			got, err := change.Apply(before, Changes(before, after))
			require.NoError(t, err)
			if len(after) == 0 {
				assert.Empty(t, got, "before=%v after=%v", before, after)
				continue
			}
			assert.Equal(t, after, got, "before=%v after=%v", before, after)
		}
	}
}

func TestChanges_SelfIsEmpty(t *testing.T) {
	for _, s := range [][]string{nil, {}, {"a"}, {"a", "b", "a"}} {
		assert.Empty(t, Changes(s, s))
	}
}

func TestChanges_PointersCompareByReference(t *testing.T) {
	type item struct{ v int }
	a, b := &item{1}, &item{1}

	got := Changes([]*item{a}, []*item{b})
	require.Len(t, got, 1)
	assert.Equal(t, change.Replace, got[0].Action)
	assert.Same(t, a, got[0].OldItem)
	assert.Same(t, b, got[0].Item)
}

func TestChangesFunc_CustomEquality(t *testing.T) {
	type row struct {
		id   int
		tags []string
	}
	eq := func(a, b row) bool { return a.id == b.id }

	before := []row{{id: 1}, {id: 2}}
	after := []row{{id: 1, tags: []string{"x"}}, {id: 2}, {id: 3}}

	got := ChangesFunc(before, after, eq)
	require.Len(t, got, 1)
	assert.Equal(t, change.Add, got[0].Action)
	assert.Equal(t, 2, got[0].Index)
	assert.Equal(t, 3, got[0].Item.id)
}

func TestChanges_ResetDoesNotAliasInput(t *testing.T) {
	after := []int{9, 8, 7}
	got := Changes([]int{1, 2, 3}, after)
	require.Len(t, got, 1)

	after[0] = 0
	assert.Equal(t, []int{9, 8, 7}, got[0].Items)
}
