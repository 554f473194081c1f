package component

import "void-miner/internal/ecs"

const CTagPlayer ecs.ComponentType = 8

// TagPlayer marks the player-controlled ship.
type TagPlayer struct{}

func (TagPlayer) Type() ecs.ComponentType { return CTagPlayer }
