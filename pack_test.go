package ecs

import "testing"

// §8 property 4 / S4: pack then immediate unpack returns the same id;
// add/del that does not kill the entity preserves unpackability;
// killing it makes unpack return false forever after for that handle.
func TestPackUnpackLifecycle(t *testing.T) {
	w := NewWorld(DefaultConfig())
	poolA := PoolOf[compA](w)
	poolB := PoolOf[compB](w)

	e := w.NewEntity()
	poolA.Add(e)
	handle := w.Pack(e)

	got, ok := handle.Unpack(w)
	if !ok || got != e {
		t.Fatalf("immediate unpack = (%v, %v), want (%v, true)", got, ok, e)
	}

	poolB.Add(e) // does not kill e: still unpackable.
	if _, ok := handle.Unpack(w); !ok {
		t.Fatalf("unpack should still succeed after a non-killing component add")
	}

	poolA.Del(e) // still has B: still alive, still unpackable.
	if _, ok := handle.Unpack(w); !ok {
		t.Fatalf("unpack should still succeed after a non-killing component del")
	}

	poolB.Del(e) // last component: e is killed and recycled.
	if _, ok := handle.Unpack(w); ok {
		t.Fatalf("unpack should fail forever once the handle's entity is killed")
	}

	// Recycling e into a new life must not resurrect the old handle.
	e2 := w.NewEntity()
	if e2 != e {
		t.Fatalf("expected id %v to be recycled, got %v", e, e2)
	}
	if _, ok := handle.Unpack(w); ok {
		t.Fatalf("stale handle must not unpack against the recycled id's new life")
	}
}

func TestPackedRefUnpacksWithoutExplicitWorld(t *testing.T) {
	w := NewWorld(DefaultConfig())
	e := w.NewEntity()
	ref := w.PackRef(e)

	got, ok := ref.Unpack()
	if !ok || got != e {
		t.Fatalf("PackedRef.Unpack() = (%v, %v), want (%v, true)", got, ok, e)
	}
}
