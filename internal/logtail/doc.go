// Package logtail reads the end of a text file.
//
// # Overview
//
// In follow mode the liveview demo takes its readings from a file instead of
// the random feeder. Every tick it polls a Tail; when the file moved, the last
// lines are parsed into readings and pushed into the source view.
//
// # Reading
//
// Read keeps a ring of the last maxLines lines while scanning the file once,
// so memory stays O(maxLines) whatever the file size:
//
//	lines, err := logtail.Read("/var/log/feed.log", 400)
//
// Lines longer than 1MB fail the scan. A missing file reads as empty.
//
// # Following
//
// Tail remembers the size and modification time seen by the previous Poll
// and only rereads when either changed. A file that disappears is reported
// once as a change with no lines. Rotation is not detected beyond that.
package logtail
