// ----------------------------------------------------------------------------
// The MIT License
// ecs - Entity Component System core powered by Golang.
// Url: https://github.com/kestrel-ecs/ecs
// ----------------------------------------------------------------------------

package ecs

import "sort"

type lockedChange struct {
	entity Entity
	add    bool
}

// Filter is the live, incrementally-maintained set of entities matching
// a fixed mask. It supports reentrant iteration: structural changes
// observed while the filter is locked are deferred and replayed, in
// order, once the last iterator over it is disposed (§4.4).
type Filter struct {
	m             mask
	entities      []Entity
	entitiesMap   map[Entity]int
	lockedChanges []lockedChange
	lockCount     int
}

func newFilter(m mask, capacity int) *Filter {
	if capacity <= 0 {
		capacity = 512
	}
	return &Filter{
		m:           m,
		entities:    make([]Entity, 0, capacity),
		entitiesMap: make(map[Entity]int, capacity),
	}
}

// Count returns the number of entities currently matching this filter.
func (f *Filter) Count() int {
	return len(f.entities)
}

// Entities returns the filter's dense membership array directly,
// without locking. It must not be mutated, and is unsafe to hold onto
// across a structural change to this filter.
func (f *Filter) Entities() []Entity {
	return f.entities
}

// Lock increments the reentrancy counter and returns the current dense
// snapshot; structural changes to this filter observed before the
// matching Unlock are deferred and replayed on unlock (§4.4).
func (f *Filter) Lock() []Entity {
	f.lockCount++
	return f.entities
}

// Unlock decrements the reentrancy counter. When it reaches zero, every
// deferred add/remove recorded while locked is replayed, in FIFO order.
func (f *Filter) Unlock() {
	f.lockCount--
	if DEBUG && f.lockCount < 0 {
		fail("ecs: filter unlocked more times than locked")
	}
	if f.lockCount == 0 && len(f.lockedChanges) > 0 {
		pending := f.lockedChanges
		f.lockedChanges = nil
		for _, c := range pending {
			if c.add {
				f.add(c.entity)
			} else {
				f.remove(c.entity)
			}
		}
	}
}

// ForEach locks the filter, invokes fn for every currently matching
// entity, and unlocks afterwards even if fn panics.
func (f *Filter) ForEach(fn func(Entity)) {
	snapshot := f.Lock()
	defer f.Unlock()
	for _, e := range snapshot {
		fn(e)
	}
}

// add and remove are invoked only by the world's change dispatcher.
func (f *Filter) add(e Entity) {
	if f.lockCount > 0 {
		f.lockedChanges = append(f.lockedChanges, lockedChange{entity: e, add: true})
		return
	}
	if DEBUG {
		if _, ok := f.entitiesMap[e]; ok {
			fail("ecs: entity %v already in filter", e)
		}
	}
	f.entitiesMap[e] = len(f.entities)
	f.entities = append(f.entities, e)
}

func (f *Filter) remove(e Entity) {
	if f.lockCount > 0 {
		f.lockedChanges = append(f.lockedChanges, lockedChange{entity: e, add: false})
		return
	}
	idx, ok := f.entitiesMap[e]
	if DEBUG && !ok {
		fail("ecs: entity %v not in filter", e)
	}
	if !ok {
		return
	}
	last := len(f.entities) - 1
	if idx < last {
		moved := f.entities[last]
		f.entities[idx] = moved
		f.entitiesMap[moved] = idx
	}
	f.entities = f.entities[:last]
	delete(f.entitiesMap, e)
}

// isCompatible reports whether rec satisfies every include constraint
// and no exclude constraint of m (§4.1/F1).
func isCompatible(m *mask, rec *entityRecord) bool {
	n := len(rec.mask)
	for _, id := range m.include {
		i := sort.Search(n, func(i int) bool { return rec.mask[i] >= id })
		if i >= n || rec.mask[i] != id {
			return false
		}
	}
	for _, id := range m.exclude {
		i := sort.Search(n, func(i int) bool { return rec.mask[i] >= id })
		if i < n && rec.mask[i] == id {
			return false
		}
	}
	return true
}

// isCompatibleWithout evaluates m against rec as if pool id `without`
// were not present, regardless of its actual membership in rec.mask.
// Used by the dispatcher to compute the counterfactual state just
// before an add or just after a remove (§4.5).
func isCompatibleWithout(m *mask, rec *entityRecord, without int32) bool {
	n := len(rec.mask)
	for _, id := range m.include {
		if id == without {
			return false
		}
		i := sort.Search(n, func(i int) bool { return rec.mask[i] >= id })
		if i >= n || rec.mask[i] != id {
			return false
		}
	}
	for _, id := range m.exclude {
		if id == without {
			continue
		}
		i := sort.Search(n, func(i int) bool { return rec.mask[i] >= id })
		if i < n && rec.mask[i] == id {
			return false
		}
	}
	return true
}
