package inventory

import "testing"

func TestTransferMovesWholeQuantity(t *testing.T) {
	src, dst := NewStore(100), NewStore(100)
	src.Add(Veldspar, 30)
	if !Transfer(src, dst, Veldspar, 20) {
		t.Fatal("expected transfer to succeed")
	}
	if src.Quantity(Veldspar) != 10 || dst.Quantity(Veldspar) != 20 {
		t.Fatalf("src=%d dst=%d, want 10/20", src.Quantity(Veldspar), dst.Quantity(Veldspar))
	}
}

func TestTransferFailsWithoutMutation(t *testing.T) {
	cases := []struct {
		name   string
		srcQty int
		dstCap int
		qty    int
	}{
		{"source short", 5, 100, 6},
		{"target full", 50, 10, 20},
		{"zero quantity", 5, 10, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src, dst := NewStore(100), NewStore(tc.dstCap)
			src.Add(Scordite, tc.srcQty)
			if Transfer(src, dst, Scordite, tc.qty) {
				t.Fatal("expected transfer to fail")
			}
			if src.Quantity(Scordite) != tc.srcQty {
				t.Fatalf("source changed to %d", src.Quantity(Scordite))
			}
			if dst.Total() != 0 {
				t.Fatalf("target changed to %d", dst.Total())
			}
		})
	}
}

// stealer fills the target as soon as the source gives up its units so the
// target Add fails after the space check passed.
type stealer struct {
	target *Store
}

func (s stealer) OnItemsAdded(*Store, ResourceType, int) {}
func (s stealer) OnItemsRemoved(*Store, ResourceType, int) {
	s.target.Add(Morphite, s.target.AvailableSpace())
}

func TestTransferRollsBackOnTargetFailure(t *testing.T) {
	src, dst := NewStore(100), NewStore(10)
	src.Add(Veldspar, 8)
	src.Observe(stealer{target: dst})

	if Transfer(src, dst, Veldspar, 8) {
		t.Fatal("expected transfer to fail once the target filled up")
	}
	if got := src.Quantity(Veldspar); got != 8 {
		t.Fatalf("source quantity after rollback = %d, want 8", got)
	}
	if dst.Quantity(Veldspar) != 0 {
		t.Fatalf("target should hold no Veldspar, has %d", dst.Quantity(Veldspar))
	}
}

func TestTransferAllPossibleIsOpportunistic(t *testing.T) {
	src, dst := NewStore(100), NewStore(25)
	src.Add(Veldspar, 20)
	src.Add(Scordite, 10)
	src.Add(Omber, 5)

	moved := TransferAllPossible(src, dst)

	// Ascending type order: Veldspar(20) then Scordite(5 of 10); Omber skipped.
	if moved[Veldspar] != 20 || moved[Scordite] != 5 {
		t.Fatalf("moved = %v", moved)
	}
	if _, ok := moved[Omber]; ok {
		t.Fatal("zero-amount transfers must be skipped")
	}
	if src.Quantity(Scordite) != 5 || src.Quantity(Omber) != 5 {
		t.Fatalf("source left = %v", src.Contents())
	}
	if dst.AvailableSpace() != 0 {
		t.Fatalf("target should be full, space=%d", dst.AvailableSpace())
	}
}

func TestTransferAllSkipsTypesThatDoNotFit(t *testing.T) {
	src, dst := NewStore(100), NewStore(15)
	src.Add(Veldspar, 20)
	src.Add(Scordite, 10)

	moved := TransferAll(src, dst)
	if _, ok := moved[Veldspar]; ok {
		t.Fatal("Veldspar(20) cannot fit and must not move")
	}
	if moved[Scordite] != 10 {
		t.Fatalf("moved = %v, want Scordite:10", moved)
	}
}

func TestRefine(t *testing.T) {
	src, dst := NewStore(200), NewStore(1000)
	src.Add(Pyroxeres, 55)

	yield, ok := Refine(src, dst, Pyroxeres, 55)
	if !ok {
		t.Fatal("expected refine to succeed")
	}
	want := map[ResourceType]int{Tritanium: 11, Plexite: 16, Mexallon: 5}
	for m, n := range want {
		if yield[m] != n || dst.Quantity(m) != n {
			t.Fatalf("%v: yield=%d stored=%d, want %d", m, yield[m], dst.Quantity(m), n)
		}
	}
	if src.Quantity(Pyroxeres) != 0 {
		t.Fatal("ore should be consumed")
	}
}

func TestRefineAllOrNothing(t *testing.T) {
	src, dst := NewStore(200), NewStore(5)
	src.Add(Veldspar, 100) // yields 40 Tritanium + 10 Plexite

	if _, ok := Refine(src, dst, Veldspar, 100); ok {
		t.Fatal("refine should fail when the yield does not fit")
	}
	if src.Quantity(Veldspar) != 100 || dst.Total() != 0 {
		t.Fatalf("stores mutated: src=%v dst=%v", src.Contents(), dst.Contents())
	}
	if _, ok := Refine(src, dst, Tritanium, 1); ok {
		t.Fatal("minerals cannot be refined")
	}
}
