package system

import (
	"math"
	"slices"

	"void-miner/internal/component"
	"void-miner/internal/ecs"
	"void-miner/internal/inventory"
	"void-miner/internal/module"
)

// ModuleLocators are the beam origins of the four module slots, relative to
// the ship centre with the ship facing 0°.
var ModuleLocators = [4][2]float64{
	{-10, -40},
	{-10, 40},
	{30, -15},
	{30, 15},
}

// UpdateShip advances one ship: physics first, then every fitted module.
func UpdateShip(w *ecs.World, id ecs.EntityID, dt float64, b Bounds) {
	if !w.Active(id) {
		return
	}
	StepShip(w, id, dt, b)

	rc := w.Get(id, component.CModuleRack)
	if rc == nil {
		return
	}
	view := ShipView(w, id)
	for _, m := range rc.(component.ModuleRack).Modules {
		if !w.Active(id) {
			return
		}
		if m.Alive() {
			m.Update(dt, view)
		}
	}
}

// Equip fits m into the next free slot. It fails when the rack is full or m
// is already fitted.
func Equip(w *ecs.World, ship ecs.EntityID, m *module.Module) bool {
	rc := w.Get(ship, component.CModuleRack)
	if rc == nil || m == nil {
		return false
	}
	rack := rc.(component.ModuleRack)
	if rack.Full() || slices.Contains(rack.Modules, m) {
		return false
	}
	rack.Modules = append(slices.Clip(rack.Modules), m)
	m.EquipTo(ship, len(rack.Modules)-1)
	w.Add(ship, rack)
	return true
}

// Unequip removes m from the rack. Modules after it shift down a slot and are
// re-indexed.
func Unequip(w *ecs.World, ship ecs.EntityID, m *module.Module) bool {
	rc := w.Get(ship, component.CModuleRack)
	if rc == nil {
		return false
	}
	rack := rc.(component.ModuleRack)
	i := slices.Index(rack.Modules, m)
	if i < 0 {
		return false
	}
	rack.Modules = slices.Delete(slices.Clone(rack.Modules), i, i+1)
	m.Unequip()
	for slot, other := range rack.Modules {
		other.EquipTo(ship, slot)
	}
	w.Add(ship, rack)
	return true
}

// Module returns the module in slot i, or nil.
func Module(w *ecs.World, ship ecs.EntityID, i int) *module.Module {
	rc := w.Get(ship, component.CModuleRack)
	if rc == nil {
		return nil
	}
	rack := rc.(component.ModuleRack)
	if i < 0 || i >= len(rack.Modules) {
		return nil
	}
	return rack.Modules[i]
}

// ActivateModule activates the module in slot i.
func ActivateModule(w *ecs.World, ship ecs.EntityID, i int) bool {
	m := Module(w, ship, i)
	if m == nil || !w.Active(ship) {
		return false
	}
	return m.Activate(ShipView(w, ship))
}

// TakeDamage subtracts dmg from the ship's health and destroys it at zero.
// Returns true if the ship was destroyed.
func TakeDamage(w *ecs.World, ship ecs.EntityID, dmg float64) bool {
	hc := w.Get(ship, component.CHealth)
	if hc == nil {
		return false
	}
	hp := hc.(component.Health)
	hp.Current -= dmg
	w.Add(ship, hp)
	if hp.Current <= 0 {
		w.Destroy(ship)
		return true
	}
	return false
}

// Heal restores up to amount health, capped at Max.
func Heal(w *ecs.World, ship ecs.EntityID, amount float64) {
	hc := w.Get(ship, component.CHealth)
	if hc == nil {
		return
	}
	hp := hc.(component.Health)
	hp.Current = math.Min(hp.Current+amount, hp.Max)
	w.Add(ship, hp)
}

// HealthFraction returns current/max health, or 0 without a Health component.
func HealthFraction(w *ecs.World, ship ecs.EntityID) float64 {
	hc := w.Get(ship, component.CHealth)
	if hc == nil {
		return 0
	}
	return hc.(component.Health).Fraction()
}

// ModulePosition returns the world position of slot's beam origin, rotated
// with the ship.
func ModulePosition(w *ecs.World, ship ecs.EntityID, slot int) (x, y float64, ok bool) {
	if slot < 0 || slot >= len(ModuleLocators) {
		return 0, 0, false
	}
	pc := w.Get(ship, component.CPosition)
	kc := w.Get(ship, component.CKinematics)
	if pc == nil || kc == nil {
		return 0, 0, false
	}
	pos := pc.(component.Position)
	rad := kc.(component.Kinematics).Rotation * math.Pi / 180
	lx, ly := ModuleLocators[slot][0], ModuleLocators[slot][1]
	sin, cos := math.Sincos(rad)
	return pos.X + lx*cos - ly*sin, pos.Y + lx*sin + ly*cos, true
}

// shipView adapts a ship entity to module.Ship. It holds only the ID, so
// every call sees the arena's current state.
type shipView struct {
	w  *ecs.World
	id ecs.EntityID
}

// ShipView returns the module.Ship view of a ship entity.
func ShipView(w *ecs.World, id ecs.EntityID) module.Ship {
	return shipView{w: w, id: id}
}

func (s shipView) ID() ecs.EntityID { return s.id }

func (s shipView) Cargo() *inventory.Store {
	c := s.w.Get(s.id, component.CCargo)
	if c == nil {
		return nil
	}
	return c.(component.Cargo).Store
}

func (s shipView) ClosestAsteroid(maxRange float64) (module.Target, bool) {
	id, ok := FindClosestAsteroid(s.w, s.id, maxRange)
	if !ok {
		return nil, false
	}
	return asteroidNode{w: s.w, id: id}, true
}

func (s shipView) Asteroid(id ecs.EntityID) (module.Target, bool) {
	if !s.w.Active(id) || !s.w.Has(id, component.CAsteroid) {
		return nil, false
	}
	return asteroidNode{w: s.w, id: id}, true
}
