package component

import "void-miner/internal/ecs"

const CPosition ecs.ComponentType = 1

// Position is a world-space location in pixels.
type Position struct {
	X, Y float64
}

func (Position) Type() ecs.ComponentType { return CPosition }
