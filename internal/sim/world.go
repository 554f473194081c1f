// Package sim owns one mining session: the entity arena, the player ship and
// the per-tick update that drives every system.
package sim

import (
	"log/slog"
	"maps"
	"math"
	"math/rand"

	"void-miner/internal/component"
	"void-miner/internal/ecs"
	"void-miner/internal/event"
	"void-miner/internal/factory"
	"void-miner/internal/input"
	"void-miner/internal/inventory"
	"void-miner/internal/mining"
	"void-miner/internal/module"
	"void-miner/internal/system"
	"void-miner/internal/tuning"
)

// spawnMargin keeps asteroids away from the wrap edges.
const spawnMargin = 50

// World is a single-threaded mining session. Nothing in it may be touched
// from more than one goroutine.
type World struct {
	cfg    tuning.Tuning
	arena  *ecs.World
	bounds system.Bounds
	rng    *rand.Rand
	sink   event.Sink
	logger *slog.Logger

	player  ecs.EntityID
	depot   ecs.EntityID
	elapsed float64
	running bool
	score   int
	stats   Stats
}

// New builds a session from cfg: the player ship with a mining laser in slot
// 1, the depot, and cfg.World.AsteroidCount asteroids. sink and logger may be
// nil.
func New(cfg tuning.Tuning, rng *rand.Rand, sink event.Sink, logger *slog.Logger) *World {
	if logger == nil {
		logger = slog.Default()
	}
	w := &World{
		cfg:     cfg,
		arena:   ecs.NewWorld(),
		bounds:  system.Bounds{Width: cfg.World.Width, Height: cfg.World.Height},
		rng:     rng,
		logger:  logger,
		running: true,
		stats:   newStats(),
	}
	rec := &recorder{stats: &w.stats}
	if sink != nil {
		w.sink = event.Multi{rec, sink}
	} else {
		w.sink = rec
	}

	w.player = factory.NewShip(w.arena, cfg.Ship, cfg.World.Width/2, 100)
	if cargo := w.cargo(); cargo != nil {
		cargo.Observe(w.sink)
	}
	system.Equip(w.arena, w.player, w.NewMiningLaser())

	w.depot = factory.NewDepot(w.arena, cfg.Depot, cfg.World.Width/2, cfg.World.Height/2)
	w.spawnAsteroids(cfg.World.AsteroidCount)
	return w
}

// NewMiningLaser builds a mining laser wired to this world's tuning, random
// source, sink and logger.
func (w *World) NewMiningLaser() *module.Module {
	tx := mining.Transaction{
		OrePerCycle: w.cfg.Laser.OrePerCycle,
		Odds: mining.Odds{
			SuperCritical: w.cfg.Laser.SuperCriticalChance,
			Critical:      w.cfg.Laser.CriticalChance,
		},
		Observer: w.sink,
		Logger:   w.logger,
	}
	if w.rng != nil {
		tx.Roller = w.rng
	}
	m := module.NewMiningLaser(tx, w.cfg.Laser.Range)
	m.ActiveDuration = w.cfg.Module.ActiveDuration
	m.CooldownDuration = w.cfg.Module.CooldownDuration
	return m
}

func (w *World) spawnAsteroids(n int) {
	if w.rng == nil {
		return
	}
	var placed []component.Position
	player, _ := w.position(w.player)
	depot, _ := w.position(w.depot)
	minDepot := w.cfg.Depot.Radius + w.cfg.World.MinAsteroidDistance

	for i := 0; i < n; i++ {
		ok := false
		for attempt := 0; attempt < w.cfg.World.SpawnAttempts && !ok; attempt++ {
			x := spawnMargin + w.rng.Float64()*(w.bounds.Width-2*spawnMargin)
			y := spawnMargin + w.rng.Float64()*(w.bounds.Height-2*spawnMargin)
			if dist(x, y, player) < w.cfg.World.MinPlayerDistance || dist(x, y, depot) < minDepot {
				continue
			}
			ok = true
			for _, p := range placed {
				if dist(x, y, p) < w.cfg.World.MinAsteroidDistance {
					ok = false
					break
				}
			}
			if ok {
				factory.NewAsteroid(w.arena, w.rng, w.cfg.Asteroid, x, y)
				placed = append(placed, component.Position{X: x, Y: y})
			}
		}
		if !ok {
			w.logger.Debug("asteroid spawn: no free spot", "placed", len(placed), "wanted", n)
		}
	}
}

func dist(x, y float64, p component.Position) float64 {
	return math.Hypot(x-p.X, y-p.Y)
}

// Update advances the session by dt seconds. Pause toggles first; while
// paused nothing else runs. Every active entity updates exactly once, in
// arena order, and destroyed entities are culled at the end of the tick.
func (w *World) Update(dt float64, cmds input.Commands) {
	if cmds.Has(input.Pause) {
		w.running = !w.running
	}
	if !w.running {
		return
	}
	if cmds.Has(input.Shoot) {
		w.score++
	}

	if w.player != ecs.NilEntity {
		system.SetControls(w.arena, w.player,
			cmds.Has(input.RotateLeft), cmds.Has(input.RotateRight), cmds.Has(input.Thrust))
		for _, c := range cmds.List() {
			if i, ok := c.ModuleIndex(); ok {
				w.ActivateModule(i)
			}
		}
	}

	for _, id := range w.arena.Entities() {
		switch {
		case w.arena.Has(id, component.CKinematics):
			system.UpdateShip(w.arena, id, dt, w.bounds)
		case w.arena.Has(id, component.CAsteroid):
			if system.UpdateAsteroid(w.arena, id, dt) {
				w.stats.AsteroidsDepleted++
				w.logger.Debug("asteroid depleted", "asteroid", id)
			}
		case w.arena.Has(id, component.CDepot):
			if w.player != ecs.NilEntity {
				w.recordUnload(system.UpdateDepot(w.arena, id, w.player))
			}
		}
	}

	w.elapsed += dt
	for _, id := range w.arena.Cull() {
		if id == w.player {
			w.logger.Info("ship destroyed", "ship", id, "elapsed", w.elapsed)
			w.player = ecs.NilEntity
		}
	}
}

func (w *World) recordUnload(t system.DepotTransfer) {
	if !t.Any() {
		return
	}
	w.stats.Unloads++
	for m, n := range t.Yield {
		w.stats.Refined[m] += n
	}
	w.logger.Debug("depot unload", "refined", t.Refined, "moved", t.Moved)
}

// ActivateModule activates rack slot i on the player ship.
func (w *World) ActivateModule(i int) bool {
	if w.player == ecs.NilEntity {
		return false
	}
	if !system.ActivateModule(w.arena, w.player, i) {
		w.stats.FailedActivations++
		return false
	}
	w.stats.Activations++
	return true
}

// DestroyPlayer deactivates the player ship. Its modules stop updating at
// once, so an in-flight mining cycle never completes.
func (w *World) DestroyPlayer() {
	if w.player != ecs.NilEntity {
		w.arena.Destroy(w.player)
	}
}

func (w *World) Arena() *ecs.World     { return w.arena }
func (w *World) Player() ecs.EntityID  { return w.player }
func (w *World) DepotID() ecs.EntityID { return w.depot }
func (w *World) Elapsed() float64      { return w.elapsed }
func (w *World) Running() bool         { return w.running }
func (w *World) Score() int            { return w.score }
func (w *World) Bounds() system.Bounds { return w.bounds }
func (w *World) Tuning() tuning.Tuning { return w.cfg }

func (w *World) position(id ecs.EntityID) (component.Position, bool) {
	c := w.arena.Get(id, component.CPosition)
	if c == nil {
		return component.Position{}, false
	}
	return c.(component.Position), true
}

func (w *World) cargo() *inventory.Store {
	c := w.arena.Get(w.player, component.CCargo)
	if c == nil {
		return nil
	}
	return c.(component.Cargo).Store
}

// recorder folds mining notifications into the run statistics.
type recorder struct {
	event.Nop
	stats *Stats
}

func (r *recorder) OnResourceMined(_ ecs.EntityID, t inventory.ResourceType, amount int, tier mining.Tier) {
	r.stats.Mined[t] += amount
	r.stats.Tiers[tier]++
	r.stats.Hits++
}

func (r *recorder) OnInventoryFull() { r.stats.CargoFull++ }

// Stats summarises a session so far.
type Stats struct {
	Elapsed           float64                        `json:"elapsed"`
	Score             int                            `json:"score"`
	Hits              int                            `json:"hits"`
	Activations       int                            `json:"activations"`
	FailedActivations int                            `json:"failed_activations"`
	CargoFull         int                            `json:"cargo_full"`
	AsteroidsDepleted int                            `json:"asteroids_depleted"`
	Unloads           int                            `json:"unloads"`
	Mined             map[inventory.ResourceType]int `json:"mined"`
	Tiers             map[mining.Tier]int            `json:"tiers"`
	Refined           map[inventory.ResourceType]int `json:"refined"`
}

func newStats() Stats {
	return Stats{
		Mined:   make(map[inventory.ResourceType]int),
		Tiers:   make(map[mining.Tier]int),
		Refined: make(map[inventory.ResourceType]int),
	}
}

// TotalMined returns the ore mined across all types.
func (s Stats) TotalMined() int {
	n := 0
	for _, v := range s.Mined {
		n += v
	}
	return n
}

// Stats returns a copy of the run statistics.
func (w *World) Stats() Stats {
	s := w.stats
	s.Elapsed = w.elapsed
	s.Score = w.score
	s.Mined = maps.Clone(w.stats.Mined)
	s.Tiers = maps.Clone(w.stats.Tiers)
	s.Refined = maps.Clone(w.stats.Refined)
	return s
}

var _ event.Sink = (*recorder)(nil)
