package ecs

import "testing"

// stub component used only in tests
type testComp struct{ val int }

func (testComp) Type() ComponentType { return 1 }

type otherComp struct{}

func (otherComp) Type() ComponentType { return 2 }

func TestCreateEntity(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	if id == NilEntity {
		t.Fatal("expected non-nil entity ID")
	}
	if !w.Active(id) {
		t.Fatal("expected entity to be active after creation")
	}
}

func TestAddAndGetComponent(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	w.Add(id, testComp{val: 42})

	c := w.Get(id, ComponentType(1))
	if c == nil {
		t.Fatal("expected component, got nil")
	}
	tc, ok := c.(testComp)
	if !ok {
		t.Fatal("wrong component type returned")
	}
	if tc.val != 42 {
		t.Fatalf("expected val=42, got %d", tc.val)
	}
}

func TestDestroyKeepsComponentsUntilCull(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	w.Add(id, testComp{val: 7})
	w.Destroy(id)

	if w.Active(id) {
		t.Fatal("entity should be inactive after Destroy")
	}
	if !w.Exists(id) {
		t.Fatal("entity should stay in the arena until Cull")
	}
	if w.Get(id, ComponentType(1)) == nil {
		t.Fatal("components should stay readable until Cull")
	}

	removed := w.Cull()
	if len(removed) != 1 || removed[0] != id {
		t.Fatalf("Cull removed %v, want [%v]", removed, id)
	}
	if w.Exists(id) || w.Get(id, ComponentType(1)) != nil {
		t.Fatal("entity and components should be gone after Cull")
	}
}

func TestDestroyIsNotReversible(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	w.Destroy(id)
	w.Destroy(id)
	w.Cull()
	next := w.CreateEntity()
	if next == id {
		t.Fatal("IDs must never be reused")
	}
	if w.Active(id) {
		t.Fatal("culled entity must not come back")
	}
}

func TestQueryFiltersCorrectly(t *testing.T) {
	w := NewWorld()

	// entity with both A and B
	both := w.CreateEntity()
	w.Add(both, testComp{})
	w.Add(both, otherComp{})

	// entity with only A
	onlyA := w.CreateEntity()
	w.Add(onlyA, testComp{})

	results := w.Query(ComponentType(1), ComponentType(2))
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0] != both {
		t.Fatalf("expected entity %v in results, got %v", both, results[0])
	}
}

func TestQueryPreservesInsertionOrder(t *testing.T) {
	w := NewWorld()
	var want []EntityID
	for i := 0; i < 20; i++ {
		id := w.CreateEntity()
		w.Add(id, testComp{val: i})
		want = append(want, id)
	}
	for run := 0; run < 3; run++ {
		got := w.Query(ComponentType(1))
		if len(got) != len(want) {
			t.Fatalf("got %d ids, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("run %d: order differs at %d: %v vs %v", run, i, got[i], want[i])
			}
		}
	}
}

func TestRemoveNonexistentIsNoop(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	// Removing a component type that was never added must not panic.
	w.Remove(id, ComponentType(99))
}

func TestHasComponent(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()

	if w.Has(id, ComponentType(1)) {
		t.Fatal("Has should return false before Add")
	}
	w.Add(id, testComp{val: 1})
	if !w.Has(id, ComponentType(1)) {
		t.Fatal("Has should return true after Add")
	}
	w.Remove(id, ComponentType(1))
	if w.Has(id, ComponentType(1)) {
		t.Fatal("Has should return false after Remove")
	}
}

func TestQueryExcludesInactiveEntities(t *testing.T) {
	w := NewWorld()
	alive := w.CreateEntity()
	w.Add(alive, testComp{})

	dead := w.CreateEntity()
	w.Add(dead, testComp{})
	w.Destroy(dead)

	results := w.Query(ComponentType(1))
	for _, id := range results {
		if id == dead {
			t.Fatal("Query returned a destroyed entity")
		}
	}
	if len(results) != 1 || results[0] != alive {
		t.Fatalf("expected only the active entity; got %v", results)
	}
}
