// Package notify provides ordered, token-based event delivery.
//
// # Overview
//
// Every change signal in liveview travels through an Emitter. Subscribing
// returns a *Subscription token; closing the token detaches the handler. There
// is no weak-reference bookkeeping: whoever subscribes owns the token and is
// responsible for closing it, typically from its own Close method.
//
// # Delivery
//
// Handlers run synchronously on the goroutine that calls Emit, in the order
// they subscribed. A handler whose token is closed while an Emit is in
// progress is skipped for the remainder of that Emit.
//
// Handler panics are not recovered. A failing projection or filter surfaces
// to whoever mutated the source, which is the only caller able to act on it.
//
// # Property notifiers
//
// Properties is an embeddable helper that turns any struct into a
// PropertyNotifier:
//
//	type Person struct {
//		notify.Properties
//		name string
//	}
//
//	func (p *Person) SetName(v string) {
//		p.name = v
//		p.Raise("Name")
//	}
package notify
