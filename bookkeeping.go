package nametable

import (
	"log/slog"

	"github.com/RoaringBitmap/roaring/v2"
)

// Bookkeeping is a System which keeps the world's NameTable up to date with
// its NameStore.
type Bookkeeping struct {
	changes   *Cursor
	inserted  *roaring.Bitmap
	removed   *roaring.Bitmap
	displaced []ChangeEvent
}

const BookkeepingName = "nametable.Bookkeeping"

// NewBookkeeping registers a private cursor with the world's change log. Only
// changes made after this call are observed.
func NewBookkeeping(w *World) *Bookkeeping {
	return &Bookkeeping{
		changes:  w.names.Changes().Register(),
		inserted: roaring.New(),
		removed:  roaring.New(),
	}
}

// Run applies every change recorded since the previous run.
func (bk *Bookkeeping) Run(w *World) {
	store, table := w.names, w.table

	table.lockForUpdate()
	defer table.unlockAfterUpdate()

	bk.inserted.Clear()
	bk.removed.Clear()
	bk.displaced = bk.displaced[:0]

	var counts opCounts
	for _, chg := range store.Changes().Drain(bk.changes) {
		counts.add(chg.Op)
		switch chg.Op {
		case OpInserted:
			bk.inserted.Add(chg.Index)
		case OpRemoved:
			bk.removed.Add(chg.Index)
		case OpModified:
			bk.removed.Add(chg.Index)
			bk.inserted.Add(chg.Index)
			bk.displaced = append(bk.displaced, chg)
		}
	}

	var evicted int
	it := bk.removed.Iterator()
	for it.HasNext() {
		idx := it.Next()
		// Entities without a current name can't be located here, so their
		// old entries stay in the table.
		if _, name, found := store.GetIndex(idx); found && table.evictLocked(name) {
			evicted++
		}
	}
	for _, chg := range bk.displaced {
		if _, _, found := store.GetIndex(chg.Index); found && table.evictLocked(chg.Prev) {
			evicted++
		}
	}

	var written, collisions int
	it = bk.inserted.Iterator()
	for it.HasNext() {
		ent, name, found := store.GetIndex(it.Next())
		if !found {
			continue
		}
		prev, replaced := table.putLocked(name, ent)
		written++
		if replaced && prev != ent {
			collisions++
			w.logger.Warn("duplicate name found when associating entity",
				slog.String("entity", ent.String()),
				slog.String("name", name.String()),
				slog.String("previous", prev.String()),
			)
		}
	}

	w.metrics.observeStep(counts, collisions, len(table.names))
	if w.verbose {
		w.logger.Debug("nametable: step",
			"inserted", counts.inserted,
			"removed", counts.removed,
			"modified", counts.modified,
			"evicted", evicted,
			"written", written,
			"collisions", collisions,
		)
	}
}

// Close unregisters the change log cursor.
func (bk *Bookkeeping) Close() {
	bk.changes.Close()
}

type opCounts struct {
	inserted, removed, modified int
}

func (c *opCounts) add(op Op) {
	switch op {
	case OpInserted:
		c.inserted++
	case OpRemoved:
		c.removed++
	case OpModified:
		c.modified++
	}
}
