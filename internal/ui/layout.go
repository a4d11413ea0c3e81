package ui

import "time"

// LayoutCompactWidth is the width below which the header drops details.
const LayoutCompactWidth = 100

// DefaultUIInterval is the default snapshot refresh interval.
const DefaultUIInterval = time.Second

// columnsHeight splits the screen between the view columns and the event
// log: roughly half each, at least three rows for the columns.
func columnsHeight(height int) int {
	return max((height-3)/2, 3)
}
