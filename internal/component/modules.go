package component

import (
	"void-miner/internal/ecs"
	"void-miner/internal/module"
)

const CModuleRack ecs.ComponentType = 9

// ModuleRack holds a ship's fitted modules in slot order.
type ModuleRack struct {
	Modules []*module.Module
	Max     int
}

func (ModuleRack) Type() ecs.ComponentType { return CModuleRack }

// Full reports whether no more modules fit.
func (r ModuleRack) Full() bool { return len(r.Modules) >= r.Max }
