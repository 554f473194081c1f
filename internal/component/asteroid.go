package component

import (
	"void-miner/internal/ecs"
	"void-miner/internal/inventory"
)

const CAsteroid ecs.ComponentType = 5

// MinerRef points at the module currently mining an asteroid.
type MinerRef struct {
	Ship ecs.EntityID
	Slot int
}

// Asteroid is a depletable resource node.
type Asteroid struct {
	Resource inventory.ResourceType
	Store    *inventory.Store
	Initial  int
	Scale    float64
	Kind     int // cosmetic sprite variant, 1..6
	Radius   float64

	Rotation      float64
	RotationSpeed float64 // degrees per second, signed

	Miner MinerRef
}

func (Asteroid) Type() ecs.ComponentType { return CAsteroid }

// IsDepleted reports whether the asteroid has no ore left.
func (a Asteroid) IsDepleted() bool {
	return a.Store == nil || a.Store.Quantity(a.Resource) <= 0
}

// Remaining returns the ore left in the asteroid.
func (a Asteroid) Remaining() int {
	if a.Store == nil {
		return 0
	}
	return a.Store.Quantity(a.Resource)
}

// BeingMined reports whether a module holds the asteroid.
func (a Asteroid) BeingMined() bool { return a.Miner.Ship != ecs.NilEntity }
