package system

import (
	"math"

	"void-miner/internal/component"
	"void-miner/internal/ecs"
)

// FindClosestAsteroid returns the nearest active, non-depleted asteroid whose
// surface is within maxRange of the ship. A negative maxRange means
// unlimited. Asteroids are scanned in arena order and the first one wins a
// tie on distance.
func FindClosestAsteroid(w *ecs.World, ship ecs.EntityID, maxRange float64) (ecs.EntityID, bool) {
	pc := w.Get(ship, component.CPosition)
	if pc == nil {
		return ecs.NilEntity, false
	}
	sp := pc.(component.Position)

	best := ecs.NilEntity
	bestDist := math.Inf(1)
	for _, id := range w.Query(component.CAsteroid, component.CPosition) {
		a := w.Get(id, component.CAsteroid).(component.Asteroid)
		if a.IsDepleted() {
			continue
		}
		p := w.Get(id, component.CPosition).(component.Position)
		dist := math.Hypot(p.X-sp.X, p.Y-sp.Y)
		if maxRange >= 0 && dist-a.Radius > maxRange {
			continue
		}
		if dist < bestDist {
			best, bestDist = id, dist
		}
	}
	return best, best != ecs.NilEntity
}
