package component

import "void-miner/internal/ecs"

const CHealth ecs.ComponentType = 2

type Health struct {
	Current, Max float64
}

func (Health) Type() ecs.ComponentType { return CHealth }

// Fraction returns Current/Max, or 0 for a zero Max.
func (h Health) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}
