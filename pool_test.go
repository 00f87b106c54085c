package ecs

import "testing"

type position struct{ X, Y float64 }

type resettable struct {
	Value   int
	resets  int
}

func (r *resettable) AutoReset() {
	r.Value = -1
	r.resets++
}

func TestPoolAddGetHasDel(t *testing.T) {
	w := NewWorld(DefaultConfig())
	positions := PoolOf[position](w)

	e := w.NewEntity()
	if positions.Has(e) {
		t.Fatalf("freshly created entity should not have position yet")
	}

	p := positions.Add(e)
	p.X, p.Y = 1, 2
	if !positions.Has(e) {
		t.Fatalf("entity should have position after Add")
	}
	if got := positions.Get(e); got.X != 1 || got.Y != 2 {
		t.Fatalf("Get = %+v, want {1 2}", got)
	}
	if c := w.ComponentCount(e); c != 1 {
		t.Fatalf("component count = %d, want 1", c)
	}

	positions.Del(e)
	// e is dead now, so Has (which requires a live entity) cannot be
	// used; check the presence bit directly.
	if positions.hasEntity(e) {
		t.Fatalf("entity should not have position after Del")
	}
	// Del brought the component count to zero: the entity must have
	// been killed and its id recycled.
	if w.IsEntityAlive(e) {
		t.Fatalf("entity should be dead after its last component is removed")
	}
}

func TestPoolDuplicateAddPanics(t *testing.T) {
	w := NewWorld(DefaultConfig())
	positions := PoolOf[position](w)
	e := w.NewEntity()
	positions.Add(e)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate Add")
		}
	}()
	positions.Add(e)
}

func TestPoolGetAbsentPanics(t *testing.T) {
	w := NewWorld(DefaultConfig())
	positions := PoolOf[position](w)
	e := w.NewEntity()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on Get of absent component")
		}
	}()
	positions.Get(e)
}

// AutoReset must fire once when a pool's storage first grows to cover
// an entity index, and again on every detach; a plain re-Add over an
// already-initialized, not-yet-detached slot must not re-fire it.
func TestAutoResetFiresOnFirstAllocationAndOnDetach(t *testing.T) {
	w := NewWorld(DefaultConfig())
	pool := PoolOf[resettable](w)

	e := w.NewEntity()
	r := pool.Add(e)
	if r.Value != -1 {
		t.Fatalf("slot should be auto-reset before first Add, got Value=%d", r.Value)
	}
	if r.resets != 1 {
		t.Fatalf("resets = %d, want 1 (first allocation only)", r.resets)
	}

	r.Value = 42
	pool.Del(e)

	e2 := w.NewEntity() // recycled id: same backing slot as e.
	r2 := pool.Add(e2)
	if r2.resets != 2 {
		t.Fatalf("resets = %d, want 2 (one on detach, none again on this Add)", r2.resets)
	}
}

// Boundary: entity-table growth must propagate to every existing pool.
func TestEntityTableGrowthPropagatesToPools(t *testing.T) {
	w := NewWorld(Config{Entities: 1, RecycledEntities: 1, Pools: 1, Filters: 1})
	positions := PoolOf[position](w)

	const n = 50
	entities := make([]Entity, n)
	for i := 0; i < n; i++ {
		entities[i] = w.NewEntity()
		p := positions.Add(entities[i])
		p.X = float64(i)
	}
	for i, e := range entities {
		if got := positions.Get(e).X; got != float64(i) {
			t.Fatalf("entity %d: X = %v, want %v", i, got, i)
		}
	}
}
