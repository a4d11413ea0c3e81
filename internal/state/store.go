package state

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

// MaxEvents bounds the notification log kept by the store.
const MaxEvents = 200

// Event is one notification raised by a live view.
type Event struct {
	At   time.Time
	View string
	Text string
}

// Extremes is the running range of the source values.
type Extremes struct {
	Min, Max int
	HasValue bool
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Source   []int
	Filtered []int
	Rows     []string
	Events   []Event // oldest first

	Range  Extremes
	Filter string

	Cached   int // distinct readings with a cached row
	Disposed int // rows released so far

	Follow              string
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // consecutive failed feeder steps
}

// IsStalled returns true when the feeder failed several times in a row.
func (s Snapshot) IsStalled() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetSource records the content of the source view.
func (s *Store) SetSource(values []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Source = slices.Clone(values)
	s.snapshot.LastUpdated = time.Now()
}

// SetFiltered records the content of the filtered view.
func (s *Store) SetFiltered(values []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Filtered = slices.Clone(values)
	s.snapshot.LastUpdated = time.Now()
}

// SetRows records the content of the mapped view and its cache size.
func (s *Store) SetRows(rows []string, cached int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Rows = slices.Clone(rows)
	s.snapshot.Cached = cached
	s.snapshot.LastUpdated = time.Now()
}

// SetRange records the running extremes.
func (s *Store) SetRange(r Extremes) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Range = r
}

// SetFilter records a description of the active filter.
func (s *Store) SetFilter(desc string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Filter = desc
}

// SetFollow records the file the feeder tails, empty for generated data.
func (s *Store) SetFollow(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Follow = path
}

// AddDisposed counts released rows.
func (s *Store) AddDisposed(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Disposed += n
}

// AddEvent appends to the notification log, dropping the oldest entries past
// MaxEvents.
func (s *Store) AddEvent(view, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Events = append(s.snapshot.Events, Event{At: time.Now(), View: view, Text: text})
	if over := len(s.snapshot.Events) - MaxEvents; over > 0 {
		s.snapshot.Events = slices.Delete(s.snapshot.Events, 0, over)
	}
}

// RecordStep notes the outcome of a feeder step. A nil err clears the
// failure streak.
func (s *Store) RecordStep(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Source = slices.Clone(s.snapshot.Source)
	snap.Filtered = slices.Clone(s.snapshot.Filtered)
	snap.Rows = slices.Clone(s.snapshot.Rows)
	snap.Events = slices.Clone(s.snapshot.Events)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
