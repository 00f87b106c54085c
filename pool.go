// ----------------------------------------------------------------------------
// The MIT License
// ecs - Entity Component System core powered by Golang.
// Url: https://github.com/kestrel-ecs/ecs
// ----------------------------------------------------------------------------

package ecs

import "sort"

// AutoResetter is the capability a component type opts into when it
// wants its slot (re)initialized by the pool instead of reset to the
// zero value. The method is invoked once when a pool first grows to
// cover a given entity index, and again every time the component is
// detached (§4.2).
type AutoResetter interface {
	AutoReset()
}

// poolWrapper is the non-generic surface the world uses to treat pools
// of different component types heterogeneously (design note §9:
// "dynamic dispatch over pool types").
type poolWrapper interface {
	poolID() int32
	hasEntity(e Entity) bool
	delEntity(e Entity)
	resize(capacity int)
	rawEntity(e Entity) interface{}
}

// Pool is the typed storage for every component of type T within a
// World. It uses the entity-indexed sparse array shape (§4.2 shape A):
// O(1) add/get/has/del, no extra indirection for random access.
type Pool[T any] struct {
	world        *World
	id           int32
	present      []bool
	items        []T
	hasAutoReset bool
}

// PoolOf returns the Pool for component type T, creating it (and
// assigning it the next pool id, in registration order) on first call.
// Idempotent: subsequent calls for the same T and world return the
// same *Pool[T].
func PoolOf[T any](w *World) *Pool[T] {
	var zero T
	key := poolKey[T]()
	if idx, ok := w.poolIndex[key]; ok {
		return w.pools[idx].(*Pool[T])
	}
	_, hasAutoReset := any(&zero).(AutoResetter)
	p := &Pool[T]{
		world:        w,
		id:           int32(len(w.pools)),
		present:      make([]bool, len(w.entities)),
		items:        make([]T, len(w.entities)),
		hasAutoReset: hasAutoReset,
	}
	if hasAutoReset {
		for i := range p.items {
			any(&p.items[i]).(AutoResetter).AutoReset()
		}
	}
	w.registerPool(key, p)
	return p
}

func (p *Pool[T]) poolID() int32 { return p.id }

func (p *Pool[T]) resetSlot(idx Entity) {
	if p.hasAutoReset {
		any(&p.items[idx]).(AutoResetter).AutoReset()
	} else {
		var zero T
		p.items[idx] = zero
	}
}

// resize widens the backing storage to at least capacity, doubling
// rather than allocating the exact requested size so that sequential
// entity creation is amortized O(1) per pool instead of reallocating
// every pool on every single new entity (§5: "pool backing arrays grow
// by doubling"). Every newly covered index is primed via the
// auto-reset hook (if the component declares one) exactly once,
// matching the "first allocation" leg of §4.2's auto-reset contract
// generalized to the entity-indexed shape.
func (p *Pool[T]) resize(capacity int) {
	if capacity <= len(p.present) {
		return
	}
	newCap := len(p.present) * 2
	if newCap < capacity {
		newCap = capacity
	}
	oldLen := len(p.present)
	grown := make([]bool, newCap)
	copy(grown, p.present)
	p.present = grown
	items := make([]T, newCap)
	copy(items, p.items)
	p.items = items
	if p.hasAutoReset {
		for i := oldLen; i < newCap; i++ {
			any(&p.items[i]).(AutoResetter).AutoReset()
		}
	}
}

// Has reports whether entity e currently carries a component of type T.
func (p *Pool[T]) Has(e Entity) bool {
	if DEBUG && !p.world.IsEntityAlive(e) {
		fail("ecs: has() on dead entity %v", e)
	}
	return p.hasEntity(e)
}

func (p *Pool[T]) hasEntity(e Entity) bool {
	return int(e) < len(p.present) && p.present[e]
}

// Add attaches a zero-valued (or auto-reset-initialized) T to entity e
// and returns a mutable pointer to it. e must be alive and must not
// already carry T.
func (p *Pool[T]) Add(e Entity) *T {
	if DEBUG {
		if !p.world.IsEntityAlive(e) {
			fail("ecs: add() on dead entity %v", e)
		}
		if p.hasEntity(e) {
			fail("ecs: add() of duplicate component on entity %v", e)
		}
	}
	rec := &p.world.entities[e]
	insertSorted(&rec.mask, p.id)
	rec.count++
	p.present[e] = true
	p.world.dispatch(e, p.id, true)
	return &p.items[e]
}

// Get returns a mutable pointer to entity e's T. e must be alive and
// must carry T.
func (p *Pool[T]) Get(e Entity) *T {
	if DEBUG {
		if !p.world.IsEntityAlive(e) {
			fail("ecs: get() on dead entity %v", e)
		}
		if !p.hasEntity(e) {
			fail("ecs: get() of absent component on entity %v", e)
		}
	}
	return &p.items[e]
}

// GetRaw returns a boxed snapshot of entity e's T, for reflection-style
// enumeration only; prefer Get for hot paths.
func (p *Pool[T]) GetRaw(e Entity) interface{} {
	if !p.hasEntity(e) {
		return nil
	}
	v := p.items[e]
	return v
}

func (p *Pool[T]) rawEntity(e Entity) interface{} {
	return p.GetRaw(e)
}

// Del detaches T from entity e, if present. If this was the entity's
// last component, the entity is killed and its id recycled.
func (p *Pool[T]) Del(e Entity) {
	p.delEntity(e)
}

func (p *Pool[T]) delEntity(e Entity) {
	if !p.hasEntity(e) {
		return
	}
	// Dispatch first, against the pre-detach mask, per §4.2/§4.5.
	p.world.dispatch(e, p.id, false)
	p.resetSlot(e)
	p.present[e] = false
	rec := &p.world.entities[e]
	removeSorted(&rec.mask, p.id)
	rec.count--
	if rec.count == 0 {
		p.world.killEntity(e)
	}
}

// insertSorted inserts v into the sorted, deduplicated slice pointed to
// by s. Duplicate insertion is a contract violation (§4.2 precondition)
// and is never reached through Pool.Add's own guard.
func insertSorted(s *[]int32, v int32) {
	xs := *s
	idx := sort.Search(len(xs), func(i int) bool { return xs[i] >= v })
	xs = append(xs, 0)
	copy(xs[idx+1:], xs[idx:])
	xs[idx] = v
	*s = xs
}

// removeSorted removes v from the sorted slice pointed to by s.
func removeSorted(s *[]int32, v int32) {
	xs := *s
	idx := sort.Search(len(xs), func(i int) bool { return xs[i] >= v })
	if idx >= len(xs) || xs[idx] != v {
		return
	}
	copy(xs[idx:], xs[idx+1:])
	*s = xs[:len(xs)-1]
}
