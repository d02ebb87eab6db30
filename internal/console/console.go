// Package console holds the process-wide, append-only log shown to the user.
//
// The log has at most one subscriber. Subscribing replays everything
// accumulated so far, then forwards each appended line. Deliveries run on the
// subscriber's loop, never on the goroutine that appended.
package console

import (
	"fmt"
	"strings"
	"sync"

	"abik/internal/loop"
)

// Update is one delivery to the subscriber. Replay is true only for the
// first delivery after Subscribe, which carries the whole log.
type Update struct {
	Lines  []string
	Replay bool
}

// Listener receives console updates on its loop
type Listener func(Update)

// Bus is the console log
type Bus struct {
	mu       sync.Mutex
	lines    []string
	loop     loop.Loop
	listener Listener
	gen      uint64
}

// New creates an empty console
func New() *Bus {
	return &Bus{}
}

// Append adds line to the log and forwards it to the subscriber, if any
func (b *Bus) Append(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lines = append(b.lines, line)
	if b.listener != nil {
		b.deliverLocked(Update{Lines: []string{line}})
	}
}

// Infof appends an [INFO] line
func (b *Bus) Infof(format string, args ...any) {
	b.Append("[INFO] " + fmt.Sprintf(format, args...))
}

// Errorf appends an [ERROR] line
func (b *Bus) Errorf(format string, args ...any) {
	b.Append("[ERROR] " + fmt.Sprintf(format, args...))
}

// Subscribe replaces the current subscriber and replays the full log to it
func (b *Bus) Subscribe(l loop.Loop, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.gen++
	b.loop = l
	b.listener = listener
	if listener == nil {
		return
	}
	replay := make([]string, len(b.lines))
	copy(replay, b.lines)
	b.deliverLocked(Update{Lines: replay, Replay: true})
}

// Unsubscribe drops the current subscriber. Appends are still kept.
func (b *Bus) Unsubscribe() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.gen++
	b.loop = nil
	b.listener = nil
}

// Lines returns a copy of the log
func (b *Bus) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Text returns the log joined with newlines, one trailing newline per line
func (b *Bus) Text() string {
	lines := b.Lines()
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Len returns the number of lines appended so far
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

// deliverLocked posts u to the current subscriber's loop. Posting under the
// lock keeps loop order equal to append order. A delivery whose subscriber was
// replaced before it ran is dropped.
func (b *Bus) deliverLocked(u Update) {
	gen := b.gen
	listener := b.listener
	b.loop.Post(func() {
		b.mu.Lock()
		current := b.gen == gen
		b.mu.Unlock()
		if current {
			listener(u)
		}
	})
}
