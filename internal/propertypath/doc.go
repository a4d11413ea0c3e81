// Package propertypath follows a chain of properties across notifying objects
// and exposes the value at the end of the chain as a live value.
//
// # Building a path
//
// A path is a chain of typed getters, each paired with the property name its
// owner raises when the value changes:
//
//	p := propertypath.Then(
//		propertypath.Then(
//			propertypath.Prop("Order", func(c *Customer) *Order { return c.Order }),
//			"Line", func(o *Order) *Line { return o.Line }),
//		"Quantity", func(l *Line) int { return l.Quantity })
//
// The path is validated while it is built, not when the first change
// arrives:
//
//   - every name must be a plain identifier and every getter non-nil
//     (ErrMalformedPath)
//   - every owner type (*Customer, *Order, *Line above) must implement
//     notify.PropertyNotifier (ErrNotNotifier)
//
// The first error sticks to the path and is returned by Path.Err and Track.
//
// # Tracking
//
// Track binds the path to a root object. Each link holds the object it reads
// from and a subscription to that object's property changes:
//
//	link 0: Customer --"Order"--> Order
//	link 1: Order    --"Line"---> Line
//	link 2: Line     --"Quantity"-> int
//
// When link i's property changes, link i re-reads its value, drops the
// subscriptions of every later link and rebinds them to the new objects,
// stopping at the first nil. The tracker then publishes the value at the end
// of the chain, or "no value" when the chain is broken by a nil.
//
// A change at an intermediate link from nil to nil is not published. Every
// other change is, including a property re-raised with the same object.
//
// An empty property name raised by an owner means "all properties changed"
// and is treated as a change of the link's property.
//
// # Lifetime
//
// Close drops every subscription. Value on a closed tracker returns
// ErrDisposed.
package propertypath
