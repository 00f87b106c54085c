// ----------------------------------------------------------------------------
// The MIT License
// ecs - Entity Component System core powered by Golang.
// Url: https://github.com/kestrel-ecs/ecs
// ----------------------------------------------------------------------------

package ecs

// maskHashPrime mixes include/exclude pool ids into a mask hash. 314159
// is not magic (§9 Open Questions); any well-distributed mixing
// function preserving §4.3's invariants would do.
const maskHashPrime = 314159

// mask is the canonical (sorted, deduplicated) form of a query: the set
// of pool ids that must be present (include) and the set that must be
// absent (exclude). M1: include and exclude are disjoint. M2: no
// duplicates within either list. M3: canonical form is sorted ascending.
type mask struct {
	include []int32
	exclude []int32
	hash    uint64
}

func hashMask(include, exclude []int32) uint64 {
	var h uint64
	for _, id := range include {
		h = h*maskHashPrime + uint64(id)
	}
	for _, id := range exclude {
		h = h*maskHashPrime - uint64(id)
	}
	return h
}

// MaskBuilder accumulates include/exclude pool ids and resolves them to
// a canonical Filter on End. Obtain one via NewMaskBuilder.
type MaskBuilder struct {
	world   *World
	include []int32
	exclude []int32
	ended   bool
}

// NewMaskBuilder returns a builder seeded with T in its include set,
// i.e. the Go equivalent of spec's World::filter<T>().
func NewMaskBuilder[T any](w *World) *MaskBuilder {
	b := w.acquireBuilder()
	return Inc[T](b)
}

// Inc adds T to the builder's include set. Fails if T is already
// present in either the include or exclude set.
func Inc[T any](b *MaskBuilder) *MaskBuilder {
	id := PoolOf[T](b.world).poolID()
	b.inc(id)
	return b
}

// Exc adds T to the builder's exclude set. Fails if T is already
// present in either the include or exclude set.
func Exc[T any](b *MaskBuilder) *MaskBuilder {
	id := PoolOf[T](b.world).poolID()
	b.exc(id)
	return b
}

func (b *MaskBuilder) inc(id int32) {
	if DEBUG && (contains(b.include, id) || contains(b.exclude, id)) {
		fail("ecs: mask builder: pool %d already constrained", id)
	}
	b.include = append(b.include, id)
}

func (b *MaskBuilder) exc(id int32) {
	if DEBUG && (contains(b.include, id) || contains(b.exclude, id)) {
		fail("ecs: mask builder: pool %d already constrained", id)
	}
	b.exclude = append(b.exclude, id)
}

func contains(xs []int32, v int32) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// End resolves the accumulated constraints into a Filter, sized with
// the given initial dense-array capacity hint. Identical masks
// (independent of the order inc/exc were called in) always resolve to
// the same Filter instance (§8 property 5).
func (b *MaskBuilder) End(capacity int) *Filter {
	if DEBUG && b.ended {
		fail("ecs: mask builder used after End()")
	}
	include := sortedCopy(b.include)
	exclude := sortedCopy(b.exclude)
	h := hashMask(include, exclude)
	w := b.world
	b.ended = true
	w.releaseBuilder(b)
	if f, ok := w.filtersByHash[h]; ok {
		return f
	}
	f := newFilter(mask{include: include, exclude: exclude, hash: h}, capacity)
	w.registerFilter(f)
	return f
}

func sortedCopy(xs []int32) []int32 {
	out := make([]int32, len(xs))
	copy(out, xs)
	// insertion sort: filter masks are small (a handful of constraints).
	for i := 1; i < len(out); i++ {
		v := out[i]
		j := i - 1
		for j >= 0 && out[j] > v {
			out[j+1] = out[j]
			j--
		}
		out[j+1] = v
	}
	return out
}
