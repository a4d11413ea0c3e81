package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	CycleModulus key.Binding
	SwapPreset   key.Binding
	Clear        key.Binding

	ToggleFollow key.Binding
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
}

// bind creates a binding whose help label is label, or the first key when
// label is empty.
func bind(desc, label string, keys ...string) key.Binding {
	if label == "" {
		label = keys[0]
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit:       bind("Quit", "q", "q", "ctrl+c"),
		Help:       bind("Toggle help", "h/?", "h", "?"),
		CycleTheme: bind("Cycle theme", "", "T"),

		CycleModulus: bind("Cycle modulus", "", "m"),
		SwapPreset:   bind("Swap filter preset", "", "p"),
		Clear:        bind("Clear source", "", "c"),

		ToggleFollow: bind("Follow notifications", "space", " "),
		Up:           bind("Scroll up", "k/up", "k", "up"),
		Down:         bind("Scroll down", "j/down", "j", "down"),
		Top:          bind("Go to top", "g", "g", "home"),
		Bottom:       bind("Go to bottom", "G", "G", "end"),
		HalfPageUp:   bind("Half page up", "", "ctrl+u"),
		HalfPageDown: bind("Half page down", "", "ctrl+d"),
	}
}

// ShortHelp returns the bindings shown in the command bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.CycleModulus, k.SwapPreset, k.Clear, k.Help, k.Quit}
}

// FullHelp returns the help overlay sections: pipeline, notifications and
// general.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.CycleModulus, k.SwapPreset, k.Clear},
		{k.ToggleFollow, k.Up, k.Down, k.Top, k.Bottom, k.HalfPageDown, k.HalfPageUp},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
