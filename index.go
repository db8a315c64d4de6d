package nametable

import (
	"iter"
	"sync"

	"github.com/agnivade/levenshtein"
)

// NameTable looks up an Entity by its Name. It has no exported mutators; it
// is kept up to date by Bookkeeping.
//
// Readers running concurrently with a step see the table as of the last
// completed step.
type NameTable struct {
	mu    sync.RWMutex
	names map[string]Entity
}

func newNameTable() *NameTable {
	return &NameTable{names: make(map[string]Entity)}
}

func (nt *NameTable) Get(name string) (Entity, bool) {
	nt.mu.RLock()
	defer nt.mu.RUnlock()
	e, ok := nt.names[name]
	return e, ok
}

// GetBytes is like Get but takes a borrowed byte slice and does not allocate.
func (nt *NameTable) GetBytes(name []byte) (Entity, bool) {
	nt.mu.RLock()
	defer nt.mu.RUnlock()
	e, ok := nt.names[string(name)]
	return e, ok
}

func (nt *NameTable) Len() int {
	nt.mu.RLock()
	defer nt.mu.RUnlock()
	return len(nt.names)
}

// All iterates over a snapshot of the table taken when iteration starts, in
// no particular order.
func (nt *NameTable) All() iter.Seq2[string, Entity] {
	return func(yield func(string, Entity) bool) {
		for _, row := range nt.snapshot() {
			if !yield(row.name, row.entity) {
				return
			}
		}
	}
}

// Closest returns the name nearest to the given text by edit distance, as
// long as the distance does not exceed maxDist. Ties go to the lexically
// smaller name.
func (nt *NameTable) Closest(name string, maxDist int) (string, Entity, bool) {
	if e, ok := nt.Get(name); ok {
		return name, e, true
	}
	var (
		bestName string
		bestEnt  Entity
		bestDist = maxDist + 1
	)
	for _, row := range nt.snapshot() {
		d := levenshtein.ComputeDistance(name, row.name)
		if d < bestDist || (d == bestDist && row.name < bestName) {
			bestName, bestEnt, bestDist = row.name, row.entity, d
		}
	}
	if bestDist > maxDist {
		return "", Entity{}, false
	}
	return bestName, bestEnt, true
}

type tableRow struct {
	name   string
	entity Entity
}

func (nt *NameTable) snapshot() []tableRow {
	nt.mu.RLock()
	defer nt.mu.RUnlock()
	rows := make([]tableRow, 0, len(nt.names))
	for name, e := range nt.names {
		rows = append(rows, tableRow{name, e})
	}
	return rows
}

func (nt *NameTable) lockForUpdate() {
	nt.mu.Lock()
}

func (nt *NameTable) unlockAfterUpdate() {
	nt.mu.Unlock()
}

// evictLocked removes the entry keyed by name, whichever entity it maps to.
func (nt *NameTable) evictLocked(name Name) bool {
	if _, found := nt.names[name.s]; !found {
		return false
	}
	delete(nt.names, name.s)
	return true
}

// putLocked maps name to e, returning the entity it previously mapped to.
func (nt *NameTable) putLocked(name Name, e Entity) (prev Entity, replaced bool) {
	prev, replaced = nt.names[name.s]
	nt.names[name.s] = e
	return prev, replaced
}
