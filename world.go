// ----------------------------------------------------------------------------
// The MIT License
// ecs - Entity Component System core powered by Golang.
// Url: https://github.com/kestrel-ecs/ecs
// ----------------------------------------------------------------------------

package ecs

import "reflect"

// World owns the entity table and the set of component pools, and
// mediates pool creation and structural-change notifications to
// filters (§3 World).
type World struct {
	entities  []entityRecord
	recycled  *indexPool
	pools     []poolWrapper
	poolIndex map[reflect.Type]int

	filters          []*Filter
	filtersByHash    map[uint64]*Filter
	filtersByInclude [][]*Filter
	filtersByExclude [][]*Filter

	builders []*MaskBuilder

	cfg            Config
	leakedEntities []Entity
	destroyed      bool
}

// NewWorld constructs an empty World sized per cfg.
func NewWorld(cfg Config) *World {
	cfg = cfg.withDefaults()
	w := &World{
		entities:  make([]entityRecord, 0, cfg.Entities),
		recycled:  newIndexPool(cfg.RecycledEntities),
		pools:     make([]poolWrapper, 0, cfg.Pools),
		poolIndex: make(map[reflect.Type]int, cfg.Pools),

		filtersByHash:    make(map[uint64]*Filter, cfg.Filters),
		filtersByInclude: make([][]*Filter, 0, cfg.Pools),
		filtersByExclude: make([][]*Filter, 0, cfg.Pools),

		cfg: cfg,
	}
	if DEBUG {
		w.leakedEntities = make([]Entity, 0, 256)
	}
	return w
}

func poolKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// registerPool assigns a pool its place in the world's pool directory.
// Called exactly once per component type, from PoolOf.
func (w *World) registerPool(key reflect.Type, p poolWrapper) {
	w.poolIndex[key] = len(w.pools)
	w.pools = append(w.pools, p)
	w.filtersByInclude = append(w.filtersByInclude, nil)
	w.filtersByExclude = append(w.filtersByExclude, nil)
}

// registerFilter adds a newly-constructed filter to the per-pool
// directories and performs its one-time initial membership scan over
// every live entity (§4.3 MaskBuilder.End).
func (w *World) registerFilter(f *Filter) {
	w.filters = append(w.filters, f)
	w.filtersByHash[f.m.hash] = f
	for _, id := range f.m.include {
		w.filtersByInclude[id] = append(w.filtersByInclude[id], f)
	}
	for _, id := range f.m.exclude {
		w.filtersByExclude[id] = append(w.filtersByExclude[id], f)
	}
	for i := range w.entities {
		rec := &w.entities[i]
		if rec.gen > 0 && isCompatible(&f.m, rec) {
			f.add(Entity(i))
		}
	}
}

func (w *World) acquireBuilder() *MaskBuilder {
	n := len(w.builders)
	if n == 0 {
		return &MaskBuilder{world: w}
	}
	b := w.builders[n-1]
	w.builders = w.builders[:n-1]
	return b
}

func (w *World) releaseBuilder(b *MaskBuilder) {
	b.world = w
	b.include = b.include[:0]
	b.exclude = b.exclude[:0]
	b.ended = false
	w.builders = append(w.builders, b)
}

// NewEntity allocates a fresh id, recycling a dead one if available.
// Recycling bumps the recycled slot's generation per E3's saturation
// rule. Growing the entity table propagates the new capacity to every
// registered pool (§4.1).
func (w *World) NewEntity() Entity {
	if e := w.recycled.pop(); e >= 0 {
		rec := &w.entities[e]
		rec.gen = -rec.gen
		if DEBUG {
			w.leakedEntities = append(w.leakedEntities, e)
		}
		return e
	}
	e := Entity(len(w.entities))
	w.entities = append(w.entities, entityRecord{gen: 1})
	w.growPoolsTo(len(w.entities))
	if DEBUG {
		w.leakedEntities = append(w.leakedEntities, e)
	}
	return e
}

func (w *World) growPoolsTo(capacity int) {
	for _, p := range w.pools {
		p.resize(capacity)
	}
}

// DelEntity detaches every component from e (cycling through pools,
// which kills e automatically once its component count reaches zero),
// or silently no-ops if e is already dead.
func (w *World) DelEntity(e Entity) {
	rec := &w.entities[e]
	if rec.gen <= 0 {
		return
	}
	for len(rec.mask) > 0 {
		id := rec.mask[len(rec.mask)-1]
		w.pools[id].delEntity(e)
	}
	// A zero-component entity is never killed by the loop above (it
	// never runs); kill it directly so DelEntity always ends with e
	// dead, per §4.1.
	if rec.gen > 0 {
		w.killEntity(e)
	}
}

// killEntity is invoked by a pool's Del once an entity's component
// count has reached zero. It bumps the generation (saturating to 1
// rather than wrapping to the 0 sentinel, per E3) and recycles the id.
func (w *World) killEntity(e Entity) {
	rec := &w.entities[e]
	gen := rec.gen + 1
	if gen <= 0 {
		gen = 1
	}
	rec.gen = -gen
	w.recycled.push(e)
}

// IsAlive reports whether the world itself is usable (not destroyed).
func (w *World) IsAlive() bool {
	return !w.destroyed
}

// IsEntityAlive reports whether e names a live entity.
func (w *World) IsEntityAlive(e Entity) bool {
	return e >= 0 && int(e) < len(w.entities) && w.entities[e].gen > 0
}

// EntityGeneration returns e's current generation.
func (w *World) EntityGeneration(e Entity) int16 {
	return w.entities[e].gen
}

// ComponentCount returns the number of components currently attached
// to e.
func (w *World) ComponentCount(e Entity) int {
	return int(w.entities[e].count)
}

// GetAllEntities appends every live entity id to buf and returns the
// resulting slice. Liveness alone decides: a live entity that currently
// has zero components (for example one just returned by NewEntity) is
// reported too.
func (w *World) GetAllEntities(buf []Entity) []Entity {
	for i := range w.entities {
		rec := &w.entities[i]
		if rec.gen > 0 {
			buf = append(buf, Entity(i))
		}
	}
	return buf
}

// Pack returns a handle to e that remains valid across recycling: a
// later Unpack against the same world returns (e, true) only if e has
// not been killed and recycled since.
func (w *World) Pack(e Entity) Packed {
	return Packed{id: e, gen: w.entities[e].gen}
}

// PackRef is like Pack but bundles the world, so the handle can be
// unpacked without the caller separately holding a *World.
func (w *World) PackRef(e Entity) PackedRef {
	return PackedRef{world: w, Packed: w.Pack(e)}
}

// dispatch is the change dispatcher (§4.5): on every attach/detach it
// tells every filter that references poolID whether it must now
// include or exclude e.
func (w *World) dispatch(e Entity, poolID int32, added bool) {
	rec := &w.entities[e]
	including := w.filtersByInclude[poolID]
	excluding := w.filtersByExclude[poolID]
	if added {
		for _, f := range including {
			if isCompatible(&f.m, rec) {
				f.add(e)
			}
		}
		for _, f := range excluding {
			if isCompatibleWithout(&f.m, rec, poolID) {
				f.remove(e)
			}
		}
	} else {
		for _, f := range including {
			if isCompatible(&f.m, rec) {
				f.remove(e)
			}
		}
		for _, f := range excluding {
			if isCompatibleWithout(&f.m, rec, poolID) {
				f.add(e)
			}
		}
	}
}

// Destroy kills every remaining live entity and marks the world unfit
// for further use.
func (w *World) Destroy() {
	for i := range w.entities {
		if w.entities[i].gen > 0 {
			w.DelEntity(Entity(i))
		}
	}
	w.destroyed = true
}

// checkLeakedEntities is the debug-only leak-check hook (§4.1): it
// reports whether any entity observed since the last check is live but
// carries zero components, which should never be visible to user code
// between system callbacks.
func (w *World) checkLeakedEntities() (Entity, bool) {
	for _, e := range w.leakedEntities {
		if w.entities[e].gen > 0 && w.entities[e].count == 0 {
			return e, true
		}
	}
	w.leakedEntities = w.leakedEntities[:0]
	return 0, false
}

// checkLeakedFilters reports whether any filter is still locked.
func (w *World) checkLeakedFilters() bool {
	for _, f := range w.filters {
		if f.lockCount > 0 {
			return true
		}
	}
	return false
}
