package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"time"
)

// Read returns the last maxLines lines of the file at path, oldest first.
// maxLines <= 0 reads every line. A missing file reads as empty.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	var ring []string
	seen := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if maxLines <= 0 || len(ring) < maxLines {
			ring = append(ring, line)
		} else {
			ring[seen%maxLines] = line
		}
		seen++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if maxLines <= 0 || seen <= maxLines {
		return ring, nil
	}
	oldest := seen % maxLines
	lines := make([]string, 0, maxLines)
	lines = append(lines, ring[oldest:]...)
	return append(lines, ring[:oldest]...), nil
}

// Tail follows the end of a file across polls.
//
// Tail is not safe for concurrent use.
type Tail struct {
	path     string
	maxLines int

	polled  bool
	exists  bool
	size    int64
	modTime time.Time
}

// NewTail returns a Tail keeping the last maxLines lines of path.
func NewTail(path string, maxLines int) *Tail {
	return &Tail{path: path, maxLines: maxLines}
}

// Path returns the followed file.
func (t *Tail) Path() string {
	return t.path
}

// Poll rereads the file when its size or modification time moved since the
// previous poll. changed is false, and lines nil, when nothing happened. A
// file that disappears reports changed with no lines.
func (t *Tail) Poll() (lines []string, changed bool, err error) {
	info, err := os.Stat(t.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, false, fmt.Errorf("stat log: %w", err)
		}
		changed = !t.polled || t.exists
		t.polled, t.exists = true, false
		t.size, t.modTime = 0, time.Time{}
		return nil, changed, nil
	}

	if t.polled && t.exists && info.Size() == t.size && info.ModTime().Equal(t.modTime) {
		return nil, false, nil
	}

	lines, err = Read(t.path, t.maxLines)
	if err != nil {
		return nil, false, err
	}
	t.polled, t.exists = true, true
	t.size, t.modTime = info.Size(), info.ModTime()
	return lines, true, nil
}
