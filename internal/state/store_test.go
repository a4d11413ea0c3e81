package state

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"
)

func TestStore_SnapshotClonesSlices(t *testing.T) {
	var s Store

	before := time.Now()
	s.SetSource([]int{1, 2, 3})
	s.SetFiltered([]int{2})
	s.SetRows([]string{"#1 2"}, 1)

	snap := s.Snapshot()
	if !reflect.DeepEqual(snap.Source, []int{1, 2, 3}) {
		t.Fatalf("Source = %v, want [1 2 3]", snap.Source)
	}
	if snap.Cached != 1 {
		t.Fatalf("Cached = %d, want 1", snap.Cached)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	snap.Source[0] = 999
	snap.Rows[0] = "changed"
	again := s.Snapshot()
	if again.Source[0] != 1 || again.Rows[0] != "#1 2" {
		t.Fatalf("Snapshot should clone slices; got %v %v", again.Source, again.Rows)
	}
}

func TestStore_SetSourceDoesNotAliasInput(t *testing.T) {
	var s Store
	values := []int{1, 2}
	s.SetSource(values)
	values[0] = 42

	if got := s.Snapshot().Source[0]; got != 1 {
		t.Fatalf("Source[0] = %d, want 1", got)
	}
}

func TestStore_EventsAreBounded(t *testing.T) {
	var s Store
	for i := range MaxEvents + 5 {
		s.AddEvent("filtered", fmt.Sprintf("Add(%d, 0)", i))
	}

	events := s.Snapshot().Events
	if len(events) != MaxEvents {
		t.Fatalf("len(Events) = %d, want %d", len(events), MaxEvents)
	}
	if events[0].Text != "Add(5, 0)" {
		t.Fatalf("oldest event = %q, want %q", events[0].Text, "Add(5, 0)")
	}
	if last := events[len(events)-1]; last.Text != fmt.Sprintf("Add(%d, 0)", MaxEvents+4) || last.View != "filtered" {
		t.Fatalf("newest event = %+v", last)
	}
}

func TestStore_RecordStep(t *testing.T) {
	var s Store

	if s.Snapshot().IsStalled() {
		t.Fatal("IsStalled() = true, want false initially")
	}

	origErr := errors.New("boom")
	s.RecordStep(origErr)
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 1 || snap.IsStalled() {
		t.Fatalf("after one failure: failures=%d stalled=%v", snap.ConsecutiveFailures, snap.IsStalled())
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError should wrap the recorded error")
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}

	s.RecordStep(errors.New("again"))
	if !s.Snapshot().IsStalled() {
		t.Fatal("IsStalled() = false, want true after two failures")
	}

	s.RecordStep(nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.LastError != nil {
		t.Fatalf("after success: failures=%d err=%v", snap.ConsecutiveFailures, snap.LastError)
	}
}

func TestStore_Counters(t *testing.T) {
	var s Store
	s.AddDisposed(2)
	s.AddDisposed(3)
	s.SetRange(Extremes{Min: 1, Max: 9, HasValue: true})
	s.SetFilter("x % 2 == 0")
	s.SetFollow("/tmp/feed.log")

	snap := s.Snapshot()
	if snap.Disposed != 5 {
		t.Fatalf("Disposed = %d, want 5", snap.Disposed)
	}
	if snap.Range != (Extremes{Min: 1, Max: 9, HasValue: true}) {
		t.Fatalf("Range = %+v", snap.Range)
	}
	if snap.Filter != "x % 2 == 0" || snap.Follow != "/tmp/feed.log" {
		t.Fatalf("Filter, Follow = %q, %q", snap.Filter, snap.Follow)
	}
}
