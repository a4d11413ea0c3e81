package change

import "github.com/guorg/liveview/internal/notify"

// Notifier is the publishing half of an Observable. Embed it to get
// OnCollectionChanged and OnPropertyChanged. The zero value is ready to use.
type Notifier[T any] struct {
	collection notify.Emitter[Change[T]]
	properties notify.Emitter[string]
}

// OnCollectionChanged subscribes fn to collection changes.
func (n *Notifier[T]) OnCollectionChanged(fn func(Change[T])) *notify.Subscription {
	return n.collection.Subscribe(fn)
}

// OnPropertyChanged subscribes fn to property changes.
func (n *Notifier[T]) OnPropertyChanged(fn func(name string)) *notify.Subscription {
	return n.properties.Subscribe(fn)
}

// RaiseProperty announces a property change.
func (n *Notifier[T]) RaiseProperty(name string) {
	n.properties.Emit(name)
}

// RaiseCollection announces a collection change without property
// notifications.
func (n *Notifier[T]) RaiseCollection(c Change[T]) {
	n.collection.Emit(c)
}

// Publish announces c the way a mutated observable collection does: Count
// (when countChanged), then Item[], then the collection change.
func (n *Notifier[T]) Publish(c Change[T], countChanged bool) {
	if countChanged {
		n.properties.Emit(CountProperty)
	}
	n.properties.Emit(IndexerProperty)
	n.collection.Emit(c)
}

// Subscribers returns the number of live collection and property subscribers.
func (n *Notifier[T]) Subscribers() int {
	return n.collection.Len() + n.properties.Len()
}

// Close detaches every subscriber.
func (n *Notifier[T]) Close() {
	n.collection.Close()
	n.properties.Close()
}
