package sim

import (
	"void-miner/internal/component"
	"void-miner/internal/ecs"
	"void-miner/internal/inventory"
	"void-miner/internal/module"
	"void-miner/internal/system"
)

// Snapshot is a read-only copy of everything a presenter needs. It is also
// the JSON frame streamed to spectators.
type Snapshot struct {
	Elapsed   float64         `json:"elapsed"`
	Running   bool            `json:"running"`
	Score     int             `json:"score"`
	Width     float64         `json:"width"`
	Height    float64         `json:"height"`
	Ship      *ShipState      `json:"ship,omitempty"`
	Asteroids []AsteroidState `json:"asteroids"`
	Depot     *DepotState     `json:"depot,omitempty"`
}

type ShipState struct {
	ID        ecs.EntityID                   `json:"id"`
	X         float64                        `json:"x"`
	Y         float64                        `json:"y"`
	Rotation  float64                        `json:"rotation"`
	VX        float64                        `json:"vx"`
	VY        float64                        `json:"vy"`
	Thrusting bool                           `json:"thrusting"`
	Health    float64                        `json:"health"`
	CargoUsed int                            `json:"cargo_used"`
	CargoMax  int                            `json:"cargo_max"`
	Cargo     map[inventory.ResourceType]int `json:"cargo"`
	Modules   []ModuleState                  `json:"modules"`
}

type ModuleState struct {
	Slot     int          `json:"slot"`
	Name     string       `json:"name"`
	State    module.State `json:"state"`
	Progress float64      `json:"progress"`
	Status   string       `json:"status"`
	Target   ecs.EntityID `json:"target,omitempty"`
	BeamX    float64      `json:"beam_x"`
	BeamY    float64      `json:"beam_y"`
}

type AsteroidState struct {
	ID         ecs.EntityID           `json:"id"`
	X          float64                `json:"x"`
	Y          float64                `json:"y"`
	Radius     float64                `json:"radius"`
	Rotation   float64                `json:"rotation"`
	Kind       int                    `json:"kind"`
	Resource   inventory.ResourceType `json:"resource"`
	Remaining  int                    `json:"remaining"`
	Initial    int                    `json:"initial"`
	Depleted   bool                   `json:"depleted"`
	BeingMined bool                   `json:"being_mined"`
}

type DepotState struct {
	ID            ecs.EntityID                   `json:"id"`
	X             float64                        `json:"x"`
	Y             float64                        `json:"y"`
	Radius        float64                        `json:"radius"`
	TransferRange float64                        `json:"transfer_range"`
	Used          int                            `json:"used"`
	Max           int                            `json:"max"`
	Contents      map[inventory.ResourceType]int `json:"contents"`
}

// Snapshot captures the current state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Elapsed:   w.elapsed,
		Running:   w.running,
		Score:     w.score,
		Width:     w.bounds.Width,
		Height:    w.bounds.Height,
		Asteroids: w.Asteroids(),
	}
	if ship, ok := w.Ship(); ok {
		s.Ship = &ship
	}
	if d, ok := w.Depot(); ok {
		s.Depot = &d
	}
	return s
}

// Ship returns the player ship's state, or false once it is gone.
func (w *World) Ship() (ShipState, bool) {
	id := w.player
	if id == ecs.NilEntity || !w.arena.Active(id) {
		return ShipState{}, false
	}
	pos, _ := w.position(id)
	st := ShipState{ID: id, X: pos.X, Y: pos.Y, Health: system.HealthFraction(w.arena, id)}
	if c := w.arena.Get(id, component.CKinematics); c != nil {
		k := c.(component.Kinematics)
		st.Rotation, st.VX, st.VY, st.Thrusting = k.Rotation, k.VX, k.VY, k.Thrusting
	}
	if cargo := w.cargo(); cargo != nil {
		st.CargoUsed = cargo.Total()
		st.CargoMax = cargo.MaxUnits
		st.Cargo = cargo.Contents()
	}
	if c := w.arena.Get(id, component.CModuleRack); c != nil {
		for i, m := range c.(component.ModuleRack).Modules {
			ms := ModuleState{
				Slot:     i,
				Name:     m.Name,
				State:    m.State(),
				Progress: m.CycleProgress(),
				Status:   m.StatusText(),
			}
			if l, ok := m.Effect.(*module.MiningLaser); ok {
				ms.Target = l.Target
			}
			ms.BeamX, ms.BeamY, _ = system.ModulePosition(w.arena, id, i)
			st.Modules = append(st.Modules, ms)
		}
	}
	return st, true
}

// Asteroids returns every active asteroid in arena order.
func (w *World) Asteroids() []AsteroidState {
	ids := w.arena.Query(component.CAsteroid, component.CPosition)
	out := make([]AsteroidState, 0, len(ids))
	for _, id := range ids {
		a := w.arena.Get(id, component.CAsteroid).(component.Asteroid)
		p := w.arena.Get(id, component.CPosition).(component.Position)
		out = append(out, AsteroidState{
			ID:         id,
			X:          p.X,
			Y:          p.Y,
			Radius:     a.Radius,
			Rotation:   a.Rotation,
			Kind:       a.Kind,
			Resource:   a.Resource,
			Remaining:  a.Remaining(),
			Initial:    a.Initial,
			Depleted:   a.IsDepleted(),
			BeingMined: a.BeingMined(),
		})
	}
	return out
}

// Depot returns the depot's state.
func (w *World) Depot() (DepotState, bool) {
	c := w.arena.Get(w.depot, component.CDepot)
	if c == nil || !w.arena.Active(w.depot) {
		return DepotState{}, false
	}
	d := c.(component.Depot)
	p, _ := w.position(w.depot)
	return DepotState{
		ID:            w.depot,
		X:             p.X,
		Y:             p.Y,
		Radius:        d.Radius,
		TransferRange: d.TransferRange,
		Used:          d.Store.Total(),
		Max:           d.Store.MaxUnits,
		Contents:      d.Store.Contents(),
	}, true
}
