// Package ui provides the terminal interface of the liveview demo.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. It never touches the live views
// directly: a tick command copies state.Store snapshots into the model, and
// key presses call back into the pipeline through the Actions interface.
//
// # Layout
//
//   - Header: feed health, view sizes, cached and disposed rows, value range
//   - Command bar: short key help, the active filter and the last action
//   - Columns: source, filtered and mapped row views, newest at the bottom
//   - Notifications: scrollable log of every change the views published
//
// # Package Structure
//
//   - app.go: Model, Update loop, key handling and Run
//   - render.go: header, columns, event log and help overlay
//   - keys.go: key bindings with help text
//   - theme.go: color themes and Lipgloss styles
//   - style_helpers.go: background-preserving segment rendering
//
// # Themes
//
// Nightfox (default), Kanagawa and Slate. T cycles through them and the
// choice is persisted through Options.SaveTheme.
package ui
