// ----------------------------------------------------------------------------
// The MIT License
// ecs - Entity Component System core powered by Golang.
// Url: https://github.com/kestrel-ecs/ecs
// ----------------------------------------------------------------------------

package ecs

// Entity is the ID of a container of components inside a World.
// It cannot be cached across structural changes to the entity it names;
// use Packed (or PackedRef) for that instead.
type Entity int32

// entityRecord is the per-entity bookkeeping the world keeps.
//
// gen > 0 means the entity at this index is alive with that generation.
// gen < 0 means it is dead; -gen is the generation that will be assigned
// the next time this index is recycled. gen == 0 is the pre-birth
// sentinel for slots never yet allocated.
type entityRecord struct {
	gen   int16
	count int32   // number of attached components
	mask  []int32 // sorted, deduplicated pool ids attached to this entity
}

// Packed is a handle to an entity that remains meaningful after the
// entity itself has been recycled into a different logical entity.
// It is the only sanctioned way to hold a reference to an entity across
// frames or across system invocations.
type Packed struct {
	id  Entity
	gen int16
}

// Unpack resolves a packed handle against w, returning the live entity
// and true if, and only if, the handle's generation still matches the
// entity currently occupying that id.
func (p Packed) Unpack(w *World) (Entity, bool) {
	if int(p.id) < 0 || int(p.id) >= len(w.entities) {
		return 0, false
	}
	rec := &w.entities[p.id]
	if rec.gen != p.gen {
		return 0, false
	}
	return p.id, true
}

// PackedRef bundles a Packed handle with the World it was issued from,
// so callers that store handles across frames do not also need to
// carry the world reference separately.
type PackedRef struct {
	world *World
	Packed
}

// Unpack resolves the handle against the world it was packed from.
func (p PackedRef) Unpack() (Entity, bool) {
	return p.Packed.Unpack(p.world)
}

// indexPool is a LIFO stack of recycled entity ids, doubling on growth.
type indexPool struct {
	items []Entity
}

func newIndexPool(capacity int) *indexPool {
	return &indexPool{items: make([]Entity, 0, capacity)}
}

// push saves an id for later reuse.
func (p *indexPool) push(idx Entity) {
	p.items = append(p.items, idx)
}

// pop returns a saved id, or -1 if none are available. Growth of the
// backing slice is handled by append's own doubling.
func (p *indexPool) pop() Entity {
	n := len(p.items) - 1
	if n < 0 {
		return -1
	}
	v := p.items[n]
	p.items = p.items[:n]
	return v
}

func (p *indexPool) len() int {
	return len(p.items)
}
