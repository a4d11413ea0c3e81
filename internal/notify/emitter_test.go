package notify

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitter_DeliversInSubscriptionOrder(t *testing.T) {
	var e Emitter[int]
	var got []string

	e.Subscribe(func(n int) { got = append(got, "a") })
	e.Subscribe(func(n int) { got = append(got, "b") })
	e.Emit(1)

	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 2, e.Len())
}

func TestSubscription_CloseIsIdempotent(t *testing.T) {
	var e Emitter[string]
	calls := 0
	sub := e.Subscribe(func(string) { calls++ })
	require.NotEmpty(t, sub.ID())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub.Close()
		}()
	}
	wg.Wait()

	e.Emit("x")
	assert.Equal(t, 0, calls)
	assert.True(t, sub.Closed())
	assert.Equal(t, 0, e.Len())
}

func TestSubscription_ClosedDuringEmitSkipsHandler(t *testing.T) {
	var e Emitter[int]
	var second *Subscription
	calls := 0

	e.Subscribe(func(int) { second.Close() })
	second = e.Subscribe(func(int) { calls++ })
	e.Emit(1)

	assert.Equal(t, 0, calls)
}

func TestEmitter_Close(t *testing.T) {
	var e Emitter[int]
	sub := e.Subscribe(func(int) {})
	e.Close()

	assert.True(t, sub.Closed())
	assert.Equal(t, 0, e.Len())

	late := e.Subscribe(func(int) { t.Fatal("closed emitter delivered") })
	assert.True(t, late.Closed())
	e.Emit(1)
}

func TestEmitter_NilHandler(t *testing.T) {
	var e Emitter[int]
	assert.True(t, e.Subscribe(nil).Closed())
	assert.Equal(t, 0, e.Len())
}

func TestSubscription_NilIsClosed(t *testing.T) {
	var sub *Subscription
	sub.Close()
	assert.True(t, sub.Closed())
	assert.Empty(t, sub.ID())
}

func TestProperties_Raise(t *testing.T) {
	var p Properties
	var got []string
	sub := p.OnPropertyChanged(func(name string) { got = append(got, name) })

	p.Raise("Name")
	sub.Close()
	p.Raise("Age")

	assert.Equal(t, []string{"Name"}, got)
	assert.Equal(t, 0, p.Subscribers())
}
