// Package module implements the Ready/Active/Cooldown cycle shared by every
// ship module, and the mining laser effect that runs on top of it.
package module

import (
	"fmt"

	"void-miner/internal/ecs"
	"void-miner/internal/inventory"
	"void-miner/internal/mining"
)

// State is a module's position in its activation cycle.
type State uint8

const (
	Ready State = iota
	Active
	Cooldown
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Active:
		return "active"
	case Cooldown:
		return "cooldown"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Default cycle timings in seconds.
const (
	DefaultActiveDuration   = 3.5
	DefaultCooldownDuration = 4.0
)

// Target is an asteroid as seen by a module effect.
type Target interface {
	mining.Node
	StartMining(ship ecs.EntityID, slot int)
	StopMining()
}

// Ship is the view of the carrying ship handed to effects. Lookups go through
// the arena on every call, so a destroyed asteroid is simply not found.
type Ship interface {
	ID() ecs.EntityID
	Cargo() *inventory.Store
	ClosestAsteroid(maxRange float64) (Target, bool)
	Asteroid(id ecs.EntityID) (Target, bool)
}

// Effect is what a module does when its cycle starts and ends.
// Start returning false aborts the activation.
type Effect interface {
	Start(m *Module, ship Ship) bool
	End(m *Module, ship Ship)
}

// CooldownCompleter is implemented by effects that want to hear when the
// module becomes ready again.
type CooldownCompleter interface {
	CooldownComplete(m *Module)
}

// StatusTexter is implemented by effects that describe themselves per state.
type StatusTexter interface {
	StatusText(m *Module) string
}

// Module is one equippable ship module.
type Module struct {
	Name             string
	ActiveDuration   float64
	CooldownDuration float64
	Effect           Effect

	state             State
	activeElapsed     float64
	cooldownRemaining float64
	alive             bool
	equipped          bool
	ship              ecs.EntityID
	slot              int
}

// New returns a ready, unequipped module.
func New(name string, activeDuration, cooldownDuration float64, effect Effect) *Module {
	return &Module{
		Name:             name,
		ActiveDuration:   activeDuration,
		CooldownDuration: cooldownDuration,
		Effect:           effect,
		alive:            true,
		slot:             -1,
	}
}

func (m *Module) State() State               { return m.state }
func (m *Module) ActiveElapsed() float64     { return m.activeElapsed }
func (m *Module) CooldownRemaining() float64 { return m.cooldownRemaining }
func (m *Module) Alive() bool                { return m.alive }
func (m *Module) Equipped() bool             { return m.equipped }
func (m *Module) Ship() ecs.EntityID         { return m.ship }

// Slot returns the module's index in its ship's rack, or -1 when unequipped.
func (m *Module) Slot() int {
	if !m.equipped {
		return -1
	}
	return m.slot
}

// EquipTo records the owning ship and rack slot. Re-equipping with a new slot
// is how the rack re-indexes after an unequip.
func (m *Module) EquipTo(ship ecs.EntityID, slot int) {
	m.equipped = true
	m.ship = ship
	m.slot = slot
}

// Unequip clears the back-reference. Timers keep whatever values they had.
func (m *Module) Unequip() {
	m.equipped = false
	m.ship = ecs.NilEntity
	m.slot = -1
}

// Destroy retires the module permanently.
func (m *Module) Destroy() {
	m.alive = false
	m.equipped = false
}

// CanActivate reports whether Activate would be attempted.
func (m *Module) CanActivate() bool {
	return m.alive && m.equipped && m.state == Ready
}

// Activate starts a cycle. A failed Start reverts to Ready without charging a
// cooldown.
func (m *Module) Activate(ship Ship) bool {
	if !m.CanActivate() {
		return false
	}
	m.state = Active
	m.activeElapsed = 0
	if m.Effect != nil && !m.Effect.Start(m, ship) {
		m.state = Ready
		return false
	}
	return true
}

// Update advances the cycle timers by dt.
func (m *Module) Update(dt float64, ship Ship) {
	if !m.alive {
		return
	}
	switch m.state {
	case Active:
		m.activeElapsed += dt
		if m.activeElapsed >= m.ActiveDuration {
			if m.Effect != nil {
				m.Effect.End(m, ship)
			}
			m.state = Cooldown
			m.cooldownRemaining = m.CooldownDuration
		}
	case Cooldown:
		m.cooldownRemaining -= dt
		if m.cooldownRemaining <= 0 {
			m.cooldownRemaining = 0
			m.state = Ready
			if cc, ok := m.Effect.(CooldownCompleter); ok {
				cc.CooldownComplete(m)
			}
		}
	}
}

// CycleProgress returns 0..1 through the current phase; 1 when ready.
func (m *Module) CycleProgress() float64 {
	switch m.state {
	case Active:
		if m.ActiveDuration <= 0 {
			return 1
		}
		return clamp01(m.activeElapsed / m.ActiveDuration)
	case Cooldown:
		if m.CooldownDuration <= 0 {
			return 1
		}
		return clamp01(1 - m.cooldownRemaining/m.CooldownDuration)
	}
	return 1
}

// StatusText describes the module for the HUD.
func (m *Module) StatusText() string {
	if st, ok := m.Effect.(StatusTexter); ok {
		return st.StatusText(m)
	}
	switch m.state {
	case Active:
		return m.Name + " active"
	case Cooldown:
		return fmt.Sprintf("%s recharging (%.1fs)", m.Name, m.cooldownRemaining)
	}
	return m.Name + " ready"
}

func (m *Module) String() string {
	return fmt.Sprintf("%s (%s, %.1fs remaining)", m.Name, m.state, m.cooldownRemaining)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
