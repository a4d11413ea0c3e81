package app

import (
	"fmt"
	"sync"

	"github.com/guorg/liveview/internal/notify"
	"github.com/guorg/liveview/internal/propertypath"
)

// FilterParams parameterises the filtered view. It raises "Modulus" when the
// modulus changes.
type FilterParams struct {
	notify.Properties

	name string

	mu      sync.Mutex
	modulus int
}

// NewFilterParams returns a named parameter set.
func NewFilterParams(name string, modulus int) *FilterParams {
	return &FilterParams{name: name, modulus: max(modulus, 1)}
}

// Name returns the preset name.
func (p *FilterParams) Name() string {
	return p.name
}

// Modulus returns the current modulus.
func (p *FilterParams) Modulus() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.modulus
}

// SetModulus changes the modulus. Values below one are clamped.
func (p *FilterParams) SetModulus(m int) {
	m = max(m, 1)
	p.mu.Lock()
	if p.modulus == m {
		p.mu.Unlock()
		return
	}
	p.modulus = m
	p.mu.Unlock()
	p.Raise("Modulus")
}

func (p *FilterParams) String() string {
	return fmt.Sprintf("%s: x %% %d == 0", p.name, p.Modulus())
}

// Settings is the root object the filter path starts from. It raises
// "Filter" when the active parameter set is swapped.
type Settings struct {
	notify.Properties

	mu     sync.Mutex
	filter *FilterParams
}

// Filter returns the active parameter set, possibly nil.
func (s *Settings) Filter() *FilterParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetFilter swaps the active parameter set.
func (s *Settings) SetFilter(f *FilterParams) {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
	s.Raise("Filter")
}

// modulusPath reads Settings.Filter.Modulus.
func modulusPath() propertypath.Path[*Settings, int] {
	return propertypath.Then(
		propertypath.Prop("Filter", (*Settings).Filter),
		"Modulus", (*FilterParams).Modulus,
	)
}
