package component

import (
	"void-miner/internal/ecs"
	"void-miner/internal/inventory"
)

const CCargo ecs.ComponentType = 6

// Cargo is a ship's hold. The store is owned by the entity and never shared.
type Cargo struct {
	Store *inventory.Store
}

func (Cargo) Type() ecs.ComponentType { return CCargo }
