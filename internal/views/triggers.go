package views

import (
	"github.com/guorg/liveview/internal/notify"
	"github.com/guorg/liveview/internal/propertypath"
)

// Trigger is an external signal that makes a view refresh.
type Trigger interface {
	Subscribe(fn func()) *notify.Subscription
}

// TriggerFunc adapts a subscribe function to Trigger.
type TriggerFunc func(fn func()) *notify.Subscription

// Subscribe implements Trigger.
func (f TriggerFunc) Subscribe(fn func()) *notify.Subscription {
	return f(fn)
}

// OnProperty triggers when source raises name.
func OnProperty(source notify.PropertyNotifier, name string) Trigger {
	return TriggerFunc(func(fn func()) *notify.Subscription {
		return propertypath.Observe(source, name, fn)
	})
}

// OnPath triggers whenever the value at the end of a tracked property path
// changes.
func OnPath[S, V any](t *propertypath.Tracker[S, V]) Trigger {
	return TriggerFunc(func(fn func()) *notify.Subscription {
		return t.OnChanged(func(V, bool) { fn() })
	})
}
