package factory

import (
	"math/rand"

	"void-miner/internal/component"
	"void-miner/internal/ecs"
	"void-miner/internal/inventory"
	"void-miner/internal/tuning"

	"github.com/gdamore/tcell/v2"
)

// NewShip creates the player ship at (x, y) with an empty rack and hold.
func NewShip(w *ecs.World, cfg tuning.Ship, x, y float64) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y})
	w.Add(id, component.Kinematics{
		RotationSpeed: cfg.RotationSpeed,
		ThrustPower:   cfg.ThrustPower,
		MaxVelocity:   cfg.MaxVelocity,
		Drag:          cfg.Drag,
	})
	w.Add(id, component.Health{Current: cfg.Health, Max: cfg.Health})
	w.Add(id, component.Cargo{Store: inventory.NewStore(cfg.CargoCapacity)})
	w.Add(id, component.ModuleRack{Max: cfg.ModuleSlots})
	w.Add(id, component.Renderable{
		Glyph:       "🚀",
		FGColor:     tcell.ColorYellow,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 10,
	})
	w.Add(id, component.TagPlayer{})
	return id
}

// NewAsteroid creates an asteroid at (x, y) with a random ore, size and spin.
// Larger asteroids start with more ore.
func NewAsteroid(w *ecs.World, rng *rand.Rand, cfg tuning.Asteroid, x, y float64) ecs.EntityID {
	kind := 1 + rng.Intn(len(cfg.BaseRadii))
	scale := cfg.MinScale + rng.Float64()*(cfg.MaxScale-cfg.MinScale)
	ore := inventory.Ores[rng.Intn(len(inventory.Ores))]

	f := (scale - cfg.MinScale) / (cfg.MaxScale - cfg.MinScale)
	minOre := int(float64(cfg.MinOre) * (0.5 + 0.5*f))
	maxOre := int(float64(cfg.MaxOre) * (0.5 + 0.5*f))
	initial := minOre
	if maxOre > minOre {
		initial += rng.Intn(maxOre - minOre + 1)
	}

	spin := cfg.MinRotationSpeed + rng.Float64()*(cfg.MaxRotationSpeed-cfg.MinRotationSpeed)
	if rng.Intn(2) == 0 {
		spin = -spin
	}

	return addAsteroid(w, component.Asteroid{
		Resource:      ore,
		Initial:       initial,
		Scale:         scale,
		Kind:          kind,
		Radius:        cfg.BaseRadii[kind-1] * scale,
		Rotation:      rng.Float64() * 360,
		RotationSpeed: spin,
	}, x, y)
}

// NewAsteroidOf creates an asteroid with a fixed resource and quantity.
// Scenario setup and tests use it to place known nodes.
func NewAsteroidOf(w *ecs.World, res inventory.ResourceType, qty int, radius, x, y float64) ecs.EntityID {
	return addAsteroid(w, component.Asteroid{
		Resource: res,
		Initial:  qty,
		Scale:    1,
		Kind:     1,
		Radius:   radius,
	}, x, y)
}

func addAsteroid(w *ecs.World, a component.Asteroid, x, y float64) ecs.EntityID {
	a.Store = inventory.NewStore(a.Initial)
	a.Store.Add(a.Resource, a.Initial)
	a.Miner = component.MinerRef{Slot: -1}

	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y})
	w.Add(id, a)
	w.Add(id, component.Renderable{
		Glyph:       "🪨",
		FGColor:     asteroidColor(a.Resource),
		BGColor:     tcell.ColorDefault,
		RenderOrder: 5,
	})
	return id
}

// NewDepot creates the refining depot at (x, y).
func NewDepot(w *ecs.World, cfg tuning.Depot, x, y float64) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y})
	w.Add(id, component.Depot{
		Store:         inventory.NewStore(cfg.Capacity),
		Radius:        cfg.Radius,
		TransferRange: cfg.TransferRange,
		Refined:       make(map[inventory.ResourceType]int),
	})
	w.Add(id, component.Renderable{
		Glyph:       "🏭",
		FGColor:     tcell.ColorAqua,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 1,
	})
	return id
}

func asteroidColor(t inventory.ResourceType) tcell.Color {
	switch t {
	case inventory.Veldspar:
		return tcell.ColorTan
	case inventory.Scordite:
		return tcell.ColorSilver
	case inventory.Pyroxeres:
		return tcell.ColorOrange
	case inventory.Plagioclase:
		return tcell.ColorTeal
	case inventory.Omber:
		return tcell.ColorOlive
	}
	return tcell.ColorWhite
}
