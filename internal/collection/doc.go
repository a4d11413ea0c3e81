// Package collection provides observable source collections.
//
// List is the mutable source every view starts from. Each mutation publishes
// property and collection changes in the order a data-binding consumer
// expects from a hand-mutated collection:
//
//	Count   (only when the length changed)
//	Item[]
//	the collection change itself
//
// Batch operations (AddRange, RemoveAll, ResetTo) go through the diff engine,
// so a batch that happens to change a single element still publishes a single
// Add/Remove/Replace/Move; anything larger becomes one Reset.
//
// Changes are published after the internal lock is released, on the goroutine
// that mutated the list. A handler may read the list but should not mutate it.
//
// FixedSizeQueue bounds a List: enqueueing into a full queue first removes the
// oldest element (Remove at 0), then appends (Add at the tail).
package collection
