package nametable

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type DumpFlags uint64

const (
	DumpHeaders = DumpFlags(1 << iota)
	DumpStats
	DumpEntities
	DumpNames
	DumpTable

	DumpAll = DumpFlags(0xFFFFFFFFFFFFFFFF)
)

var (
	dumpSep1 = strings.Repeat("=", 80)
	dumpSep2 = strings.Repeat("-", 60)
)

func (f DumpFlags) Contains(v DumpFlags) bool {
	return (f & v) == v
}

// Dump renders the world for debugging. Names and table rows are sorted by
// text, so the output is stable.
func (w *World) Dump(f DumpFlags) string {
	var buf strings.Builder
	s := w.Stats()

	if f.Contains(DumpHeaders) {
		fmt.Fprintln(&buf, dumpSep1)
		fmt.Fprintf(&buf, "world (%d entities, %d names, %d table rows)\n", s.Entities, s.Names, s.TableRows)
	}
	if f.Contains(DumpStats) {
		fmt.Fprintf(&buf, "stats: pending_log = %d, retained_log = %d, stale_entries = %d\n", s.PendingLog, s.RetainedLog, s.StaleEntries)
	}

	if f.Contains(DumpEntities) {
		fmt.Fprintln(&buf, dumpSep2)
		for _, e := range w.entities.All() {
			name, ok := w.names.Get(e)
			if ok {
				fmt.Fprintf(&buf, "entities.%s = %q\n", e, name.String())
			} else {
				fmt.Fprintf(&buf, "entities.%s = <unnamed>\n", e)
			}
		}
	}

	if f.Contains(DumpNames) {
		fmt.Fprintln(&buf, dumpSep2)
		type row struct {
			e    Entity
			name string
		}
		var rows []row
		w.names.each(func(e Entity, name Name) {
			rows = append(rows, row{e, name.s})
		})
		slices.SortFunc(rows, func(a, b row) int {
			return cmp.Or(strings.Compare(a.name, b.name), cmp.Compare(a.e.Index, b.e.Index))
		})
		for _, r := range rows {
			fmt.Fprintf(&buf, "names.%s = %q\n", r.e, r.name)
		}
	}

	if f.Contains(DumpTable) {
		fmt.Fprintln(&buf, dumpSep2)
		rows := w.table.snapshot()
		slices.SortFunc(rows, func(a, b tableRow) int {
			return strings.Compare(a.name, b.name)
		})
		for _, r := range rows {
			stale := ""
			if cur, ok := w.names.Get(r.entity); !ok || cur.s != r.name {
				stale = " STALE"
			}
			fmt.Fprintf(&buf, "table.%q => %s%s\n", r.name, r.entity, stale)
		}
	}
	return buf.String()
}
