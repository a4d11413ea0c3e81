package propertypath

import (
	"errors"
	"fmt"
	"go/token"
	"reflect"
	"strings"

	"github.com/guorg/liveview/internal/notify"
)

var (
	// ErrMalformedPath reports an unusable link: a name that is not a plain
	// identifier, or a nil getter.
	ErrMalformedPath = errors.New("malformed property path")
	// ErrNotNotifier reports a link whose owner cannot announce changes.
	ErrNotNotifier = errors.New("property owner does not implement notify.PropertyNotifier")
	// ErrDisposed is returned by a closed Tracker.
	ErrDisposed = errors.New("property path tracker is closed")
)

var notifierType = reflect.TypeFor[notify.PropertyNotifier]()

type link struct {
	name  string
	owner reflect.Type
	get   func(any) any
}

// Path is a validated chain of property getters from S to V.
type Path[S, V any] struct {
	links []link
	err   error
}

// Prop starts a path with a single property of S.
func Prop[S, V any](name string, get func(S) V) Path[S, V] {
	var p Path[S, V]
	p.links, p.err = appendLink[S](nil, name, get)
	return p
}

// Then extends p with a property of its current value type.
func Then[S, M, V any](p Path[S, M], name string, get func(M) V) Path[S, V] {
	if p.err != nil {
		return Path[S, V]{links: p.links, err: p.err}
	}
	links, err := appendLink[M](p.links, name, get)
	return Path[S, V]{links: links, err: err}
}

func appendLink[O, V any](links []link, name string, get func(O) V) ([]link, error) {
	owner := reflect.TypeFor[O]()
	where := fmt.Sprintf("link %d %q on %s", len(links), name, owner)

	switch {
	case !token.IsIdentifier(name):
		return links, fmt.Errorf("%s: name is not an identifier: %w", where, ErrMalformedPath)
	case get == nil:
		return links, fmt.Errorf("%s: getter is nil: %w", where, ErrMalformedPath)
	case !owner.Implements(notifierType):
		return links, fmt.Errorf("%s: %w", where, ErrNotNotifier)
	}

	next := append(links[:len(links):len(links)], link{
		name:  name,
		owner: owner,
		get:   func(src any) any { return get(src.(O)) },
	})
	return next, nil
}

// Err returns the first validation error, if any.
func (p Path[S, V]) Err() error {
	return p.err
}

// Len returns the number of links.
func (p Path[S, V]) Len() int {
	return len(p.links)
}

// String renders the path as dotted property names.
func (p Path[S, V]) String() string {
	names := make([]string, len(p.links))
	for i, l := range p.links {
		names[i] = l.name
	}
	return strings.Join(names, ".")
}

// isNil reports whether v holds no object to read from.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
