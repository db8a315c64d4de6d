package nametable

import (
	"sync"
)

type nameSlot struct {
	entity Entity
	name   Name
}

// NameStore is a sparse map of entity → Name. Every insert, remove and
// overwrite is appended to its ChangeLog.
type NameStore struct {
	mu       sync.RWMutex
	entities *Entities
	slots    map[uint32]nameSlot
	changes  *ChangeLog
}

func newNameStore(entities *Entities, compactThreshold int) *NameStore {
	return &NameStore{
		entities: entities,
		slots:    make(map[uint32]nameSlot),
		changes:  newChangeLog(compactThreshold),
	}
}

func (s *NameStore) Changes() *ChangeLog {
	return s.changes
}

// Insert attaches name to e. If e already has a name, it is overwritten and
// the change is recorded as a modification.
func (s *NameStore) Insert(e Entity, name Name) error {
	if !s.entities.IsAlive(e) {
		return entityErrf(e, ErrDeadEntity, "insert %q", name.String())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	old, found := s.slots[e.Index]
	s.slots[e.Index] = nameSlot{e, name}
	if found && old.entity == e {
		s.changes.append(ChangeEvent{Op: OpModified, Index: e.Index, Prev: old.name})
	} else {
		s.changes.append(ChangeEvent{Op: OpInserted, Index: e.Index})
	}
	return nil
}

// Set overwrites the name of an entity that already has one.
func (s *NameStore) Set(e Entity, name Name) error {
	if !s.entities.IsAlive(e) {
		return entityErrf(e, ErrDeadEntity, "set %q", name.String())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	old, found := s.slots[e.Index]
	if !found || old.entity != e {
		return entityErrf(e, ErrNoName, "set %q", name.String())
	}
	s.slots[e.Index] = nameSlot{e, name}
	s.changes.append(ChangeEvent{Op: OpModified, Index: e.Index, Prev: old.name})
	return nil
}

// Remove detaches the name of e, returning it.
func (s *NameStore) Remove(e Entity) (Name, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, found := s.slots[e.Index]
	if !found || old.entity != e {
		return Name{}, false
	}
	delete(s.slots, e.Index)
	s.changes.append(ChangeEvent{Op: OpRemoved, Index: e.Index})
	return old.name, true
}

func (s *NameStore) Get(e Entity) (Name, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slot, found := s.slots[e.Index]
	if !found || slot.entity != e {
		return Name{}, false
	}
	return slot.name, true
}

// GetIndex looks up the current owner and name of an entity index.
func (s *NameStore) GetIndex(idx uint32) (Entity, Name, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slot, found := s.slots[idx]
	return slot.entity, slot.name, found
}

func (s *NameStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slots)
}

// each calls f for every slot, in unspecified order, under a read lock.
func (s *NameStore) each(f func(e Entity, name Name)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, slot := range s.slots {
		f(slot.entity, slot.name)
	}
}
