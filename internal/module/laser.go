package module

import (
	"fmt"
	"log/slog"

	"void-miner/internal/ecs"
	"void-miner/internal/inventory"
	"void-miner/internal/mining"
)

// Mining laser defaults.
const (
	DefaultOrePerCycle = 20
	DefaultLaserRange  = 200.0
)

// MiningLaser locks onto the closest asteroid in range when the cycle starts
// and mines it when the cycle ends.
type MiningLaser struct {
	Range float64
	Tx    mining.Transaction

	Target          ecs.EntityID
	TotalMined      int
	LastMinedType   inventory.ResourceType
	LastMinedAmount int
	LastTier        mining.Tier
	LastOutcome     mining.Outcome
}

// NewMiningLaser returns a mining laser module with the default timings.
func NewMiningLaser(tx mining.Transaction, maxRange float64) *Module {
	return New("Mining Laser", DefaultActiveDuration, DefaultCooldownDuration,
		&MiningLaser{Range: maxRange, Tx: tx})
}

func (l *MiningLaser) logger() *slog.Logger {
	if l.Tx.Logger != nil {
		return l.Tx.Logger
	}
	return slog.Default()
}

// Start picks a target. Without one the activation fails.
func (l *MiningLaser) Start(m *Module, ship Ship) bool {
	if ship == nil {
		return false
	}
	target, ok := ship.ClosestAsteroid(l.Range)
	if !ok {
		l.logger().Debug("mining laser: no asteroid in range", "ship", ship.ID())
		return false
	}
	l.Target = target.ID()
	target.StartMining(ship.ID(), m.Slot())
	return true
}

// End runs the mining transaction against the locked target and clears it.
func (l *MiningLaser) End(m *Module, ship Ship) {
	if ship == nil {
		l.Target = ecs.NilEntity
		return
	}
	var node mining.Node
	target, ok := ship.Asteroid(l.Target)
	if ok {
		node = target
	}
	res, err := l.Tx.Execute(node, ship.Cargo())
	if err != nil {
		l.logger().Error("mining laser: transaction failed", "error", err,
			"ship", ship.ID(), "asteroid", l.Target)
	}
	l.LastOutcome = res.Outcome
	if res.OK() {
		l.TotalMined += res.Amount
		l.LastMinedType = res.Resource
		l.LastMinedAmount = res.Amount
		l.LastTier = res.Tier
	}
	if ok {
		target.StopMining()
	}
	l.Target = ecs.NilEntity
}

// StatusText follows the laser's HUD wording.
func (l *MiningLaser) StatusText(m *Module) string {
	switch m.State() {
	case Ready:
		return "Mining Laser Ready"
	case Active:
		return "Firing Laser!"
	case Cooldown:
		return fmt.Sprintf("Recharging... (%.1fs)", m.CooldownRemaining())
	}
	return "Mining Laser"
}
