package mining

import (
	"errors"
	"testing"

	"void-miner/internal/ecs"
	"void-miner/internal/inventory"
)

type fakeNode struct {
	id       ecs.EntityID
	active   bool
	resource inventory.ResourceType
	store    *inventory.Store
}

func (n *fakeNode) ID() ecs.EntityID                 { return n.id }
func (n *fakeNode) Active() bool                     { return n.active }
func (n *fakeNode) Resource() inventory.ResourceType { return n.resource }
func (n *fakeNode) Store() *inventory.Store          { return n.store }

func newNode(qty int) *fakeNode {
	s := inventory.NewStore(qty)
	s.Add(inventory.Veldspar, qty)
	return &fakeNode{id: 7, active: true, resource: inventory.Veldspar, store: s}
}

type recorder struct {
	mined []int
	tiers []Tier
	full  int
}

func (r *recorder) OnResourceMined(_ ecs.EntityID, _ inventory.ResourceType, amount int, tier Tier) {
	r.mined = append(r.mined, amount)
	r.tiers = append(r.tiers, tier)
}
func (r *recorder) OnInventoryFull() { r.full++ }

func TestClassifyCumulativeBoundaries(t *testing.T) {
	odds := Odds{SuperCritical: 0.15, Critical: 0.35}
	cases := []struct {
		r    float64
		want Tier
	}{
		{0.0, SuperCritical},
		{0.10, SuperCritical},
		{0.15, Critical}, // strict: r == pSC is not super-critical
		{0.20, Critical},
		{0.4999, Critical},
		{0.50, Normal},
		{0.60, Normal},
		{0.9999, Normal},
	}
	for _, tc := range cases {
		if got := odds.Classify(tc.r); got != tc.want {
			t.Errorf("Classify(%v) = %v, want %v", tc.r, got, tc.want)
		}
	}
}

func TestTierMultipliers(t *testing.T) {
	if Normal.Multiplier() != 1.0 || Critical.Multiplier() != 1.25 || SuperCritical.Multiplier() != 1.5 {
		t.Fatal("unexpected tier multipliers")
	}
}

func TestExecuteFloorsTierAmount(t *testing.T) {
	node := newNode(5)
	cargo := inventory.NewStore(200)
	tx := &Transaction{OrePerCycle: 20, Odds: DefaultOdds, Roller: Fixed(0.20)}

	res, err := tx.Execute(node, cargo)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Tier != Critical {
		t.Fatalf("tier = %v, want critical", res.Tier)
	}
	if res.Raw != 6 {
		t.Fatalf("raw = %d, want floor(5*1.25)=6", res.Raw)
	}
	// The node only held 5, so only 5 can move.
	if res.Amount != 5 || cargo.Quantity(inventory.Veldspar) != 5 {
		t.Fatalf("amount=%d cargo=%d, want 5", res.Amount, cargo.Quantity(inventory.Veldspar))
	}
	if node.store.Quantity(inventory.Veldspar) != 0 {
		t.Fatalf("node should be empty, has %d", node.store.Quantity(inventory.Veldspar))
	}
}

func TestExecuteSuperCriticalFloors(t *testing.T) {
	node := newNode(100)
	cargo := inventory.NewStore(200)
	tx := &Transaction{OrePerCycle: 7, Odds: DefaultOdds, Roller: Fixed(0.01)}

	res, err := tx.Execute(node, cargo)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Tier != SuperCritical || res.Amount != 10 { // floor(7*1.5)
		t.Fatalf("got tier=%v amount=%d, want super_critical/10", res.Tier, res.Amount)
	}
	if node.store.Quantity(inventory.Veldspar) != 90 {
		t.Fatalf("node left %d, want 90", node.store.Quantity(inventory.Veldspar))
	}
}

func TestThreeNormalCycles(t *testing.T) {
	node := newNode(120)
	cargo := inventory.NewStore(1000)
	tx := &Transaction{OrePerCycle: 20, Odds: DefaultOdds, Roller: Fixed(0.9)}

	for i := 0; i < 3; i++ {
		if res, err := tx.Execute(node, cargo); err != nil || !res.OK() {
			t.Fatalf("cycle %d: res=%+v err=%v", i, res, err)
		}
	}
	if got := node.store.Quantity(inventory.Veldspar); got != 60 {
		t.Fatalf("node has %d, want 60", got)
	}
	if got := cargo.Quantity(inventory.Veldspar); got != 60 {
		t.Fatalf("cargo has %d, want 60", got)
	}
}

func TestPartialTransferDoesNotSignalFull(t *testing.T) {
	node := newNode(100)
	cargo := inventory.NewStore(10)
	cargo.Add(inventory.Scordite, 8)
	rec := &recorder{}
	tx := &Transaction{OrePerCycle: 20, Odds: DefaultOdds, Roller: Fixed(0.9), Observer: rec}

	res, err := tx.Execute(node, cargo)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Raw != 20 || res.Amount != 2 {
		t.Fatalf("raw=%d amount=%d, want 20/2", res.Raw, res.Amount)
	}
	if cargo.Total() != 10 {
		t.Fatalf("cargo total = %d, want 10", cargo.Total())
	}
	if node.store.Quantity(inventory.Veldspar) != 98 {
		t.Fatalf("node decremented to %d, want 98", node.store.Quantity(inventory.Veldspar))
	}
	if rec.full != 0 {
		t.Fatal("partial success must not fire OnInventoryFull")
	}
	if len(rec.mined) != 1 || rec.mined[0] != 2 {
		t.Fatalf("mined events = %v, want [2]", rec.mined)
	}
}

func TestCargoFullIsDistinct(t *testing.T) {
	node := newNode(100)
	cargo := inventory.NewStore(10)
	cargo.Add(inventory.Scordite, 10)
	rec := &recorder{}
	tx := &Transaction{OrePerCycle: 20, Odds: DefaultOdds, Roller: Fixed(0.9), Observer: rec}

	res, err := tx.Execute(node, cargo)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Outcome != CargoFull {
		t.Fatalf("outcome = %v, want cargo full", res.Outcome)
	}
	if rec.full != 1 {
		t.Fatalf("OnInventoryFull fired %d times, want 1", rec.full)
	}
	if node.store.Quantity(inventory.Veldspar) != 100 {
		t.Fatal("node must be untouched")
	}
}

func TestExecuteValidation(t *testing.T) {
	tx := &Transaction{OrePerCycle: 20, Odds: DefaultOdds, Roller: Fixed(0.9)}
	cargo := inventory.NewStore(10)

	if res, _ := tx.Execute(nil, cargo); res.Outcome != NoTarget {
		t.Fatalf("nil node: %v", res.Outcome)
	}

	gone := newNode(10)
	gone.active = false
	if res, _ := tx.Execute(gone, cargo); res.Outcome != NoTarget {
		t.Fatalf("inactive node: %v", res.Outcome)
	}

	empty := &fakeNode{id: 3, active: true, resource: inventory.Omber, store: inventory.NewStore(10)}
	if res, _ := tx.Execute(empty, cargo); res.Outcome != Depleted {
		t.Fatalf("empty node: %v", res.Outcome)
	}

	if res, _ := tx.Execute(newNode(10), nil); res.Outcome != NoCargo {
		t.Fatalf("nil cargo: %v", res.Outcome)
	}
	if cargo.Total() != 0 {
		t.Fatal("failed transactions must not touch cargo")
	}
}

// grabber fills the cargo as soon as the node gives up ore, so the cargo Add
// fails after the space check passed.
type grabber struct{ cargo *inventory.Store }

func (g grabber) OnItemsAdded(*inventory.Store, inventory.ResourceType, int) {}
func (g grabber) OnItemsRemoved(*inventory.Store, inventory.ResourceType, int) {
	g.cargo.Add(inventory.Morphite, g.cargo.AvailableSpace())
}

func TestAddFailureIsReportedNotRolledBack(t *testing.T) {
	node := newNode(50)
	cargo := inventory.NewStore(30)
	node.store.Observe(grabber{cargo: cargo})
	tx := &Transaction{OrePerCycle: 20, Odds: DefaultOdds, Roller: Fixed(0.9)}

	res, err := tx.Execute(node, cargo)
	if !errors.Is(err, ErrInvariant) {
		t.Fatalf("err = %v, want ErrInvariant", err)
	}
	if res.Outcome != Failed {
		t.Fatalf("outcome = %v, want failed", res.Outcome)
	}
	if node.store.Quantity(inventory.Veldspar) != 30 {
		t.Fatalf("node removal should stand, node has %d", node.store.Quantity(inventory.Veldspar))
	}
}

func TestTierTextRoundTrip(t *testing.T) {
	for _, tier := range []Tier{Normal, Critical, SuperCritical} {
		b, _ := tier.MarshalText()
		var got Tier
		if err := got.UnmarshalText(b); err != nil || got != tier {
			t.Fatalf("UnmarshalText(%q) = %v, %v", b, got, err)
		}
	}
	var bad Tier
	if err := bad.UnmarshalText([]byte("legendary")); err == nil {
		t.Fatal("unknown tier names should be rejected")
	}
}
