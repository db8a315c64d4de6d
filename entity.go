package nametable

import (
	"fmt"
	"sync"
)

// Entity is an opaque, stable handle of a live object.
type Entity struct {
	Index uint32
	Gen   uint32
}

func (e Entity) String() string {
	return fmt.Sprintf("%dv%d", e.Index, e.Gen)
}

// IsZero reports whether e is the zero Entity. Generations start at 1, so no
// live entity is zero.
func (e Entity) IsZero() bool {
	return e.Gen == 0
}

// Entities allocates entity handles, reusing freed indexes with a bumped
// generation.
type Entities struct {
	mu    sync.RWMutex
	gens  []uint32
	alive []bool
	free  []uint32
	count int
}

func (es *Entities) Create() Entity {
	es.mu.Lock()
	defer es.mu.Unlock()

	var idx uint32
	if n := len(es.free); n > 0 {
		idx = es.free[n-1]
		es.free = es.free[:n-1]
	} else {
		idx = uint32(len(es.gens))
		es.gens = append(es.gens, 0)
		es.alive = append(es.alive, false)
	}
	es.gens[idx]++
	es.alive[idx] = true
	es.count++
	return Entity{idx, es.gens[idx]}
}

func (es *Entities) IsAlive(e Entity) bool {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return es.isAliveLocked(e)
}

func (es *Entities) isAliveLocked(e Entity) bool {
	return int(e.Index) < len(es.gens) && es.alive[e.Index] && es.gens[e.Index] == e.Gen
}

// Len returns the number of live entities.
func (es *Entities) Len() int {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return es.count
}

// All returns live entities in index order.
func (es *Entities) All() []Entity {
	es.mu.RLock()
	defer es.mu.RUnlock()
	result := make([]Entity, 0, es.count)
	for i, alive := range es.alive {
		if alive {
			result = append(result, Entity{uint32(i), es.gens[i]})
		}
	}
	return result
}

// slots returns the number of indexes ever allocated, dead or alive.
func (es *Entities) slots() int {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return len(es.gens)
}

func (es *Entities) each(f func(idx, gen uint32, alive bool)) {
	es.mu.RLock()
	defer es.mu.RUnlock()
	for i, gen := range es.gens {
		f(uint32(i), gen, es.alive[i])
	}
}

func (es *Entities) delete(e Entity) bool {
	es.mu.Lock()
	defer es.mu.Unlock()
	if !es.isAliveLocked(e) {
		return false
	}
	es.alive[e.Index] = false
	es.free = append(es.free, e.Index)
	es.count--
	return true
}

// restore installs a slot as recorded in a snapshot. Must only be called on a
// fresh allocator, in ascending index order.
func (es *Entities) restore(idx, gen uint32, alive bool) {
	es.mu.Lock()
	defer es.mu.Unlock()
	if int(idx) != len(es.gens) {
		panic(fmt.Errorf("entities: restoring index %d out of order (have %d)", idx, len(es.gens)))
	}
	es.gens = append(es.gens, gen)
	es.alive = append(es.alive, alive)
	if alive {
		es.count++
	}
}

// rebuildFreeList must be called after the last restore.
func (es *Entities) rebuildFreeList() {
	es.mu.Lock()
	defer es.mu.Unlock()
	es.free = es.free[:0]
	for i := len(es.alive) - 1; i >= 0; i-- {
		if !es.alive[i] {
			es.free = append(es.free, uint32(i))
		}
	}
}
