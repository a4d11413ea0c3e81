// Package state provides thread-safe state shared between the liveview
// pipeline and the UI.
//
// # Overview
//
// The pipeline publishes from whichever goroutine mutated it: the feeder
// loop, a throttle timer, or the UI itself when a key changes the filter.
// View handlers copy what they need into the Store; the UI reads a Snapshot
// on every tick and never touches the views directly.
//
//	Pipeline handlers:              UI:
//	┌───────────────────┐          ┌──────────────────┐
//	│ OnCollectionChanged│          │ tick             │
//	│   store.SetRows() │─────────→│ store.Snapshot() │
//	│   store.AddEvent()│ (RWMutex)│ render           │
//	└───────────────────┘          └──────────────────┘
//
// # Defensive Copying
//
// Setters clone their slices and Snapshot clones them again, so neither side
// can observe the other's later mutations. Errors are wrapped on the way out
// so errors.Is still matches the recorded error.
//
// # Notification Log
//
// AddEvent keeps the newest MaxEvents entries, oldest first.
//
// # Failures
//
// RecordStep tracks feeder outcomes. Two failures in a row mark the snapshot
// as stalled, which the UI shows in its header. Any success clears the streak.
//
// The zero Store is ready to use.
package state
