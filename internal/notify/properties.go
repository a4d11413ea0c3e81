package notify

// PropertyNotifier is implemented by objects that announce property changes
// by name.
type PropertyNotifier interface {
	OnPropertyChanged(fn func(name string)) *Subscription
}

// Properties is an embeddable PropertyNotifier. The zero value is ready to use.
type Properties struct {
	changed Emitter[string]
}

// OnPropertyChanged subscribes fn to property change announcements.
func (p *Properties) OnPropertyChanged(fn func(name string)) *Subscription {
	return p.changed.Subscribe(fn)
}

// Raise announces that the named property changed.
func (p *Properties) Raise(name string) {
	p.changed.Emit(name)
}

// Subscribers returns the number of live property subscriptions.
func (p *Properties) Subscribers() int {
	return p.changed.Len()
}
