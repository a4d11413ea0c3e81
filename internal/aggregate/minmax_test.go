package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guorg/liveview/internal/collection"
)

// flakySource fails the first n enumerations with a concurrent modification.
type flakySource struct {
	*collection.List[int]
	failures int
	calls    int
}

func (f *flakySource) Range(fn func(int, int) bool) error {
	f.calls++
	if f.calls <= f.failures {
		return collection.ErrCollectionModified
	}
	return f.List.Range(fn)
}

func TestMinMax_TracksIncrementally(t *testing.T) {
	l := collection.NewList(5, 3, 8)
	m, err := TrackMinMax[int](l)
	require.NoError(t, err)

	var published []Extremes[int]
	m.OnChanged(func(e Extremes[int]) { published = append(published, e) })

	got, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, Extremes[int]{Min: 3, Max: 8, HasValue: true}, got)

	l.Add(1)
	l.Add(4)
	require.NoError(t, l.RemoveAt(2)) // removes 8
	l.Clear()

	assert.Equal(t, []Extremes[int]{
		{Min: 1, Max: 8, HasValue: true},
		{Min: 1, Max: 5, HasValue: true},
		{},
	}, published)
}

func TestMinMax_ReplaceOfExtremeRescans(t *testing.T) {
	l := collection.NewList(1, 5, 9)
	m, err := TrackMinMax[int](l)
	require.NoError(t, err)

	require.NoError(t, l.Set(2, 6))

	got, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, 1, got.Min)
	assert.Equal(t, 6, got.Max)
}

func TestMinMax_RetriesConcurrentModification(t *testing.T) {
	src := &flakySource{List: collection.NewList(4, 2), failures: maxAttempts - 1}

	m, err := TrackMinMax[int](src)
	require.NoError(t, err)

	got, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, Extremes[int]{Min: 2, Max: 4, HasValue: true}, got)
	assert.Equal(t, maxAttempts, src.calls)
}

func TestMinMax_GivesUpAfterBoundedAttempts(t *testing.T) {
	src := &flakySource{List: collection.NewList(4, 2), failures: maxAttempts}

	_, err := TrackMinMax[int](src)

	assert.ErrorIs(t, err, collection.ErrCollectionModified)
	assert.Equal(t, maxAttempts, src.calls)
}

func TestMinMax_CloseIsIdempotent(t *testing.T) {
	l := collection.NewList(1)
	m, err := TrackMinMax[int](l)
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	_, err = m.Value()
	assert.ErrorIs(t, err, ErrDisposed)
	assert.Equal(t, 0, l.Subscribers())
}

func TestMinMax_AddAfterFailedRescanRecovers(t *testing.T) {
	src := &flakySource{List: collection.NewList(1, 5, 9)}
	m, err := TrackMinMax[int](src)
	require.NoError(t, err)

	src.failures = src.calls + maxAttempts
	require.NoError(t, src.RemoveAt(2))
	got, err := m.Value()
	require.NoError(t, err)
	require.ErrorIs(t, got.Err, collection.ErrCollectionModified)

	src.Add(3)
	got, err = m.Value()
	require.NoError(t, err)
	assert.Equal(t, Extremes[int]{Min: 1, Max: 5, HasValue: true}, got)
}
