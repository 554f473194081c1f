package system

import (
	"void-miner/internal/component"
	"void-miner/internal/ecs"
	"void-miner/internal/inventory"
)

// DepotTransfer is what one depot update moved.
type DepotTransfer struct {
	Refined map[inventory.ResourceType]int // ore consumed, per ore type
	Yield   map[inventory.ResourceType]int // minerals produced
	Moved   map[inventory.ResourceType]int // non-ore moved as-is
}

// Any reports whether anything changed hands.
func (t DepotTransfer) Any() bool {
	return len(t.Refined) > 0 || len(t.Moved) > 0
}

// UpdateDepot pulls the ship's cargo into the depot when the ship is within
// transfer range. Ore is refined on the way in; a type whose output does not
// fit stays in the hold.
func UpdateDepot(w *ecs.World, depot, ship ecs.EntityID) DepotTransfer {
	var out DepotTransfer
	if !w.Active(depot) || !w.Active(ship) {
		return out
	}
	dc := w.Get(depot, component.CDepot)
	cc := w.Get(ship, component.CCargo)
	if dc == nil || cc == nil {
		return out
	}
	d := dc.(component.Depot)
	cargo := cc.(component.Cargo).Store

	dist, ok := Distance(w, depot, ship)
	if !ok || dist > d.TransferRange {
		return out
	}

	if d.Refined == nil {
		d.Refined = make(map[inventory.ResourceType]int)
	}
	for _, t := range cargo.Types() {
		qty := cargo.Quantity(t)
		if t.IsOre() {
			yield, ok := inventory.Refine(cargo, d.Store, t, qty)
			if !ok {
				continue
			}
			if out.Refined == nil {
				out.Refined = make(map[inventory.ResourceType]int)
				out.Yield = make(map[inventory.ResourceType]int)
			}
			out.Refined[t] += qty
			for m, n := range yield {
				out.Yield[m] += n
				d.Refined[m] += n
			}
			continue
		}
		if inventory.Transfer(cargo, d.Store, t, qty) {
			if out.Moved == nil {
				out.Moved = make(map[inventory.ResourceType]int)
			}
			out.Moved[t] = qty
		}
	}

	if out.Any() {
		d.Transfers++
		w.Add(depot, d)
	}
	return out
}
