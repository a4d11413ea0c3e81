// Package diff computes the change notifications that turn one snapshot of an
// ordered collection into another.
//
// # Overview
//
// Views keep a materialised snapshot and, after every upstream signal,
// compare it with a freshly computed one. The result is replayed to
// subscribers as collection changes, so the diff must be both correct and
// small: a consumer bound to the view should see the same single Add it would
// have seen had the view been mutated by hand.
//
// # Rules
//
// Changes applies these rules in order and stops at the first that matches:
//
//  1. Snapshots equal element-wise: no changes at all
//  2. One element inserted (anywhere, appending is the common case): Add
//  3. One element removed: Remove
//  4. Same length, exactly one differing index: Replace
//  5. Same elements, one element relocated: Move
//  6. Anything else: a single Reset carrying the new content
//
// Reset is a correctness-preserving fallback. Consumers must drop whatever
// they cached about the collection and take the new content as-is.
//
// Clearing a single-item collection falls under rule 3 and is reported as a
// Remove. Clearing a larger collection is a Reset.
//
// # Equality
//
// Changes compares with ==, which is reference identity for pointers and
// value equality for everything else. ChangesFunc accepts a custom equality
// for element types that are not comparable.
//
// # Round trip
//
// For all before and after:
//
//	got, _ := change.Apply(before, diff.Changes(before, after))
//	// got equals after element-wise
package diff
