package system

import (
	"void-miner/internal/component"
	"void-miner/internal/ecs"
	"void-miner/internal/inventory"
)

// UpdateAsteroid spins the asteroid and destroys it once depleted. Returns
// true on the tick it was destroyed.
func UpdateAsteroid(w *ecs.World, id ecs.EntityID, dt float64) bool {
	if !w.Active(id) {
		return false
	}
	ac := w.Get(id, component.CAsteroid)
	if ac == nil {
		return false
	}
	a := ac.(component.Asteroid)
	a.Rotation = NormalizeDegrees(a.Rotation + a.RotationSpeed*dt)
	w.Add(id, a)

	if a.IsDepleted() {
		w.Destroy(id)
		return true
	}
	return false
}

// asteroidNode adapts an asteroid entity to module.Target (and so
// mining.Node). Like shipView it resolves through the arena on each call.
type asteroidNode struct {
	w  *ecs.World
	id ecs.EntityID
}

func (n asteroidNode) get() (component.Asteroid, bool) {
	c := n.w.Get(n.id, component.CAsteroid)
	if c == nil {
		return component.Asteroid{}, false
	}
	return c.(component.Asteroid), true
}

func (n asteroidNode) ID() ecs.EntityID { return n.id }
func (n asteroidNode) Active() bool     { return n.w.Active(n.id) }

func (n asteroidNode) Resource() inventory.ResourceType {
	a, _ := n.get()
	return a.Resource
}

func (n asteroidNode) Store() *inventory.Store {
	a, _ := n.get()
	return a.Store
}

func (n asteroidNode) StartMining(ship ecs.EntityID, slot int) {
	if a, ok := n.get(); ok {
		a.Miner = component.MinerRef{Ship: ship, Slot: slot}
		n.w.Add(n.id, a)
	}
}

func (n asteroidNode) StopMining() {
	if a, ok := n.get(); ok {
		a.Miner = component.MinerRef{Slot: -1}
		n.w.Add(n.id, a)
	}
}
