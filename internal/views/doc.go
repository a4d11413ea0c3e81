// Package views provides live collections derived from an observable
// source: Filtered, Mapping, Throttled and Serial.
//
// # Overview
//
// A view subscribes to its source on construction and keeps a materialised
// snapshot of its own content. On every upstream change it recomputes that
// content and publishes the difference the way a hand-mutated collection
// would: Count (when the length changed), then Item[], then the collection
// change. Readers call Items or Snapshot; both return copies.
//
//	src := collection.NewList(1, 2, 3)
//	even, _ := views.NewFiltered(src, func(n int) bool { return n%2 == 0 })
//	even.OnCollectionChanged(func(c change.Change[int]) { fmt.Println(c) })
//	src.Add(4) // Add(4, 1)
//
// # Refresh policy
//
// By default a view refreshes synchronously on the goroutine that mutated
// the source. WithBufferTime defers the refresh to the injected scheduler:
// the first change of a window schedules one refresh and later changes in the
// same window fold into it. Refresh forces an immediate refresh and
// DeferRefresh batches everything up to the matching resume into a single
// difference. WithTriggers adds signals other than source changes, for
// instance a property the predicate depends on.
//
// # Lifecycle
//
// Close detaches the view from its source, drops scheduled work and, for a
// Mapping, disposes every cached derived instance exactly once. Close is
// idempotent and safe from any goroutine. With OwnsSource the source is
// closed as well when it implements io.Closer. Every accessor on a closed
// view returns ErrDisposed.
//
// # Thread Safety
//
// Refreshes are serialised by a per-view mutex and notifications are
// delivered while it is held. Handlers may read the view, but must not call
// Refresh, Close or mutate the source of the same view from inside a
// notification.
package views
