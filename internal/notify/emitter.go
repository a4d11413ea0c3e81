package notify

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Subscription is the token returned by Subscribe. The zero value is an
// already-detached subscription.
type Subscription struct {
	id      string
	closed  atomic.Bool
	release func()
}

// ID returns the unique identifier of the subscription.
func (s *Subscription) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Close detaches the handler. Calling Close more than once, or from several
// goroutines, is safe; only the first call has an effect.
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	if s.closed.CompareAndSwap(false, true) && s.release != nil {
		s.release()
	}
}

// Closed reports whether Close has been called.
func (s *Subscription) Closed() bool {
	return s == nil || s.closed.Load()
}

func closedSubscription() *Subscription {
	sub := &Subscription{id: uuid.NewString()}
	sub.closed.Store(true)
	return sub
}

type handler[E any] struct {
	sub *Subscription
	fn  func(E)
}

// Emitter delivers events of type E to subscribers in subscription order.
// The zero value is ready to use.
//
// Thread Safety: Subscribe, Close and Subscription.Close are safe for
// concurrent use. Emit may run concurrently with them.
type Emitter[E any] struct {
	mu       sync.RWMutex
	handlers []handler[E]
	closed   bool
}

// Subscribe registers fn and returns its token. Subscribing to a closed
// emitter returns an already-closed token.
func (e *Emitter[E]) Subscribe(fn func(E)) *Subscription {
	if fn == nil {
		return closedSubscription()
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return closedSubscription()
	}

	sub := &Subscription{id: uuid.NewString()}
	sub.release = func() { e.remove(sub.id) }
	e.handlers = append(e.handlers, handler[E]{sub: sub, fn: fn})
	return sub
}

func (e *Emitter[E]) remove(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.handlers = slices.DeleteFunc(e.handlers, func(h handler[E]) bool {
		return h.sub.id == id
	})
}

// Emit delivers ev to every live subscriber.
func (e *Emitter[E]) Emit(ev E) {
	e.mu.RLock()
	if len(e.handlers) == 0 {
		e.mu.RUnlock()
		return
	}
	handlers := slices.Clone(e.handlers)
	e.mu.RUnlock()

	for _, h := range handlers {
		if h.sub.Closed() {
			continue
		}
		h.fn(ev)
	}
}

// Len returns the number of live subscribers.
func (e *Emitter[E]) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.handlers)
}

// Close detaches every subscriber. Later Subscribe calls return closed tokens.
func (e *Emitter[E]) Close() {
	e.mu.Lock()
	handlers := e.handlers
	e.handlers = nil
	e.closed = true
	e.mu.Unlock()

	for _, h := range handlers {
		h.sub.closed.Store(true)
	}
}
