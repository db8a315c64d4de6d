package nametable

import (
	"slices"
	"sync"
)

const DefaultCompactThreshold = 1024

// ChangeLog is an append-only sequence of ChangeEvents. Each consumer reads it
// through its own Cursor; entries are dropped once every registered cursor has
// moved past them.
type ChangeLog struct {
	mu               sync.Mutex
	events           []ChangeEvent
	base             uint64
	cursors          map[*Cursor]struct{}
	compactThreshold int
}

// Cursor is a private read position in a ChangeLog. It only moves forward.
type Cursor struct {
	log    *ChangeLog
	pos    uint64
	closed bool
}

func newChangeLog(compactThreshold int) *ChangeLog {
	if compactThreshold <= 0 {
		compactThreshold = DefaultCompactThreshold
	}
	return &ChangeLog{
		cursors:          make(map[*Cursor]struct{}),
		compactThreshold: compactThreshold,
	}
}

// Register returns a new cursor positioned at the current end of the log, so
// it observes only events appended from now on.
func (l *ChangeLog) Register() *Cursor {
	l.mu.Lock()
	defer l.mu.Unlock()
	c := &Cursor{log: l, pos: l.tailLocked()}
	l.cursors[c] = struct{}{}
	return c
}

func (l *ChangeLog) append(chg ChangeEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.cursors) == 0 {
		// nobody can ever read it
		l.base++
		return
	}
	l.events = append(l.events, chg)
}

// Drain returns every event appended since the cursor's position and moves the
// cursor to the end of the log. The returned slice stays valid after further
// appends.
func (l *ChangeLog) Drain(c *Cursor) []ChangeEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checkCursor(c)

	start := int(c.pos - l.base)
	n := len(l.events)
	result := l.events[start:n:n]
	c.pos = l.tailLocked()
	l.compactLocked()
	return result
}

// Pending returns the number of events the cursor has not consumed yet.
func (l *ChangeLog) Pending(c *Cursor) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checkCursor(c)
	return int(l.tailLocked() - c.pos)
}

// Retained returns the number of events currently held in memory.
func (l *ChangeLog) Retained() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// Close unregisters the cursor. Using it afterwards panics.
func (c *Cursor) Close() {
	l := c.log
	l.mu.Lock()
	defer l.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	delete(l.cursors, c)
	l.compactLocked()
}

// Position returns the absolute offset of the next event the cursor will read.
func (c *Cursor) Position() uint64 {
	c.log.mu.Lock()
	defer c.log.mu.Unlock()
	return c.pos
}

func (l *ChangeLog) checkCursor(c *Cursor) {
	if c.log != l {
		panic("cursor registered with another change log")
	}
	if c.closed {
		panic("cursor is closed")
	}
}

func (l *ChangeLog) tailLocked() uint64 {
	return l.base + uint64(len(l.events))
}

func (l *ChangeLog) compactLocked() {
	tail := l.tailLocked()
	low := tail
	for c := range l.cursors {
		low = min(low, c.pos)
	}
	consumed := int(low - l.base)
	if consumed == 0 {
		return
	}
	if consumed < l.compactThreshold && consumed < len(l.events) {
		return
	}
	// Fresh backing array: slices handed out by Drain must not be overwritten.
	l.events = slices.Clone(l.events[consumed:])
	l.base = low
}
