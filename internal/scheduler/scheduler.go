// Package scheduler defers work for buffered views.
//
// Views never start goroutines or timers of their own. A buffered view asks
// its Scheduler to run a flush later; production code uses a Clock backed by
// the wall clock, tests use Virtual and advance time by hand.
package scheduler

import (
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Cancel stops scheduled work that has not started yet.
type Cancel func()

// Scheduler runs functions after a delay.
type Scheduler interface {
	Now() time.Time
	Schedule(delay time.Duration, fn func()) Cancel
}

// Clock schedules work on timers of a clockwork.Clock. Work runs on the
// timer's goroutine.
type Clock struct {
	clock clockwork.Clock
}

// NewClock returns a Clock scheduler. A nil clock means the real clock.
func NewClock(c clockwork.Clock) *Clock {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	return &Clock{clock: c}
}

// Now returns the clock's current time.
func (c *Clock) Now() time.Time {
	return c.clock.Now()
}

// Schedule runs fn after delay.
func (c *Clock) Schedule(delay time.Duration, fn func()) Cancel {
	t := c.clock.AfterFunc(delay, fn)
	return func() { t.Stop() }
}

// Immediate runs work inline, ignoring the delay.
type Immediate struct{}

// Now returns the wall-clock time.
func (Immediate) Now() time.Time {
	return time.Now()
}

// Schedule runs fn before returning.
func (Immediate) Schedule(_ time.Duration, fn func()) Cancel {
	fn()
	return func() {}
}

type fakeClock interface {
	clockwork.Clock
	Advance(d time.Duration)
}

type work struct {
	due       time.Time
	seq       uint64
	fn        func()
	cancelled bool
}

// Virtual is a deterministic scheduler. Scheduled work runs only inside
// Advance, on the goroutine calling it, in due-time order (ties in schedule
// order).
type Virtual struct {
	mu    sync.Mutex
	clock fakeClock
	queue []*work
	seq   uint64
}

// NewVirtual returns a Virtual scheduler starting at the fake clock's epoch.
func NewVirtual() *Virtual {
	return &Virtual{clock: clockwork.NewFakeClock()}
}

// Now returns the virtual time.
func (v *Virtual) Now() time.Time {
	return v.clock.Now()
}

// Schedule queues fn to run once virtual time reaches Now()+delay.
func (v *Virtual) Schedule(delay time.Duration, fn func()) Cancel {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.seq++
	w := &work{due: v.clock.Now().Add(max(delay, 0)), seq: v.seq, fn: fn}
	i, _ := slices.BinarySearchFunc(v.queue, w, func(a, b *work) int {
		if c := a.due.Compare(b.due); c != 0 {
			return c
		}
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})
	v.queue = slices.Insert(v.queue, i, w)

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		w.cancelled = true
	}
}

// Advance moves virtual time forward by d, running every piece of work that
// falls due, including work scheduled by work running during this call.
func (v *Virtual) Advance(d time.Duration) {
	target := v.clock.Now().Add(d)
	for {
		w := v.next(target)
		if w == nil {
			break
		}
		w.fn()
	}
	if now := v.clock.Now(); now.Before(target) {
		v.clock.Advance(target.Sub(now))
	}
}

func (v *Virtual) next(target time.Time) *work {
	v.mu.Lock()
	defer v.mu.Unlock()

	for len(v.queue) > 0 {
		w := v.queue[0]
		if w.due.After(target) {
			return nil
		}
		v.queue = v.queue[1:]
		if w.cancelled {
			continue
		}
		if now := v.clock.Now(); w.due.After(now) {
			v.clock.Advance(w.due.Sub(now))
		}
		return w
	}
	return nil
}

// Pending returns the number of queued, uncancelled work items.
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	n := 0
	for _, w := range v.queue {
		if !w.cancelled {
			n++
		}
	}
	return n
}
