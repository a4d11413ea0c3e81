// Package config loads and saves the liveview demo configuration.
//
// # Overview
//
// The demo feeds a bounded queue with readings and shows the views derived
// from it. Everything tunable about that pipeline lives in a single TOML file.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/liveview/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// Missing config files are not an error, so the demo runs out of the box.
//
// # TOML Format
//
//	capacity = 16        # readings kept by the source queue
//	tick = "500ms"       # feeder cadence
//	buffer = "250ms"     # throttle window, "0s" refreshes on every change
//	modulus = 2          # filtered view keeps multiples of modulus
//	theme = "Nightfox"
//	log_level = "info"   # debug, info, warn, error
//	log_file = "~/.local/state/liveview/liveview.log"
//	follow = "~/feed.log" # tail this file instead of generating readings
//
// Durations use Go syntax. Tilde expansion is applied to log_file and follow.
//
// # Error Handling
//
// Load returns errors for unreadable files, TOML syntax errors, malformed
// durations and negative numbers. Save creates the parent directory and is
// used by the UI to persist the chosen theme.
package config
