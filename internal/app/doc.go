// Package app is the composition root of the liveview demo.
//
// # Overview
//
// Run loads the configuration, builds a Pipeline of live views over a
// bounded source queue, starts a feeder goroutine that mutates the source,
// and hands a state.Store to the TUI.
//
//	feeder ──> queue ──> source ──> throttled ──> filtered ──> rows
//	                                     └──> values ──> min/max
//
// View handlers copy snapshots into the store. The UI only ever reads
// store snapshots, so it never touches a view from its own goroutine.
//
// # Feeding
//
// In the default mode the feeder pushes random readings and now and then
// re-queues an existing one, which shows the identity cache sharing a row.
// With a follow file configured, the last lines of the file replace the
// source on every change of the file.
//
// Failed steps are recorded in the store and back off exponentially up to
// 30 seconds.
//
// # Filter parameters
//
// The filtered view keeps readings divisible by the active modulus. The
// modulus is reached through the path Settings.Filter.Modulus, so both
// swapping the parameter set and editing the current one refresh the view.
package app
