package nametable

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// World owns the entities, their names and the name table derived from them.
// Everything a system touches hangs off a World; there is no package-level
// state.
type World struct {
	entities *Entities
	names    *NameStore
	table    *NameTable
	logger   *slog.Logger
	metrics  *Metrics
	verbose  bool

	bookkeeping *Bookkeeping
}

type Options struct {
	Logger           *slog.Logger
	Verbose          bool
	CompactThreshold int

	MetricsNamespace string
	Registerer       prometheus.Registerer
}

func New(opt Options) *World {
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	if opt.MetricsNamespace == "" {
		opt.MetricsNamespace = "nametable"
	}
	entities := &Entities{}
	w := &World{
		entities: entities,
		names:    newNameStore(entities, opt.CompactThreshold),
		table:    newNameTable(),
		logger:   opt.Logger,
		metrics:  NewMetrics(opt.MetricsNamespace, opt.Registerer),
		verbose:  opt.Verbose,
	}
	w.bookkeeping = NewBookkeeping(w)
	return w
}

func (w *World) Entities() *Entities {
	return w.entities
}

func (w *World) Names() *NameStore {
	return w.names
}

func (w *World) NameTable() *NameTable {
	return w.table
}

func (w *World) Logger() *slog.Logger {
	return w.logger
}

func (w *World) Metrics() *Metrics {
	return w.metrics
}

// Bookkeeping returns the system maintaining this world's NameTable. It has
// been observing the change log since the world was created.
func (w *World) Bookkeeping() *Bookkeeping {
	return w.bookkeeping
}

// Create allocates an entity and names it.
func (w *World) Create(name string) Entity {
	e := w.entities.Create()
	if err := w.names.Insert(e, NewName(name)); err != nil {
		panic(fmt.Errorf("nametable: naming fresh entity: %w", err))
	}
	return e
}

// Rename overwrites the name of an already named entity.
func (w *World) Rename(e Entity, name string) error {
	return w.names.Set(e, NewName(name))
}

// Delete removes the entity's name and frees the entity. Returns false if e is
// not alive.
func (w *World) Delete(e Entity) bool {
	if !w.entities.IsAlive(e) {
		return false
	}
	w.names.Remove(e)
	return w.entities.delete(e)
}

func (w *World) Close() {
	w.bookkeeping.Close()
}
