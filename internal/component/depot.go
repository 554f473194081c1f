package component

import (
	"void-miner/internal/ecs"
	"void-miner/internal/inventory"
)

const CDepot ecs.ComponentType = 7

// Depot is a stationary station that takes the player's cargo and refines
// ore into minerals.
type Depot struct {
	Store         *inventory.Store
	Radius        float64
	TransferRange float64

	Transfers int
	Refined   map[inventory.ResourceType]int
}

func (Depot) Type() ecs.ComponentType { return CDepot }
