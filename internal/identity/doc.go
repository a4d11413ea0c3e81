// Package identity keeps one derived instance per distinct source reference.
//
// # Overview
//
// A mapping view projects every source element into a derived element. When
// the source holds pointers, the same pointer can appear more than once and
// can leave and re-enter the collection; Cache makes sure every occurrence of
// a pointer maps to the same derived instance and that the instance is
// disposed once, when the last occurrence leaves.
//
// # Keys
//
// Whether a source type is cached is decided once, from its static kind:
//
//   - Pointers, channels, unsafe pointers and interfaces: cached, keyed by ==
//     (reference identity for pointers)
//   - Everything else (ints, strings, structs, ...): never cached; every Add
//     projects a new instance and every Remove disposes it
//
// Two distinct pointers to equal values are different keys. An interface
// source type is cached whatever its dynamic values are: boxed ints or
// strings are keyed by value, so equal boxed values share one instance.
//
// # Lifecycle
//
//	Add(s)     first occurrence  -> Project, refs = 1
//	Add(s)     later occurrence  -> reuse, refs++
//	Remove(s)  refs > 1          -> refs--
//	Remove(s)  last occurrence   -> evict, then Dispose
//	Reset(src) keys not in src   -> evict, then Dispose; survivors reused
//	Clear()                      -> evict all, then Dispose each once
//
// Entries are evicted before Dispose runs, so a panicking Dispose leaves the
// cache consistent. The panic is not recovered.
//
// # Metrics
//
// Hits, misses and evictions are counted through the OpenTelemetry metric
// API under the "liveview.identity" meter. Without a configured provider the
// counters are no-ops.
package identity
