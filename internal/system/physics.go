package system

import (
	"math"

	"void-miner/internal/component"
	"void-miner/internal/ecs"
)

// Bounds is the size of the wrap-around play area.
type Bounds struct {
	Width, Height float64
}

// NormalizeDegrees maps any angle onto [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// math.Mod of a tiny negative plus 360 can round to exactly 360.
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// Wrap applies the edge rule on one axis: below zero jumps to the far edge,
// past the far edge jumps to zero. Exactly 0 and exactly limit stay put.
func Wrap(v, limit float64) float64 {
	if v < 0 {
		return limit
	}
	if v > limit {
		return 0
	}
	return v
}

// StepShip integrates one ship for dt: control input (rotation, then thrust
// with the speed cap), position, drag, then wrap.
func StepShip(w *ecs.World, id ecs.EntityID, dt float64, b Bounds) {
	kc := w.Get(id, component.CKinematics)
	pc := w.Get(id, component.CPosition)
	if kc == nil || pc == nil {
		return
	}
	kin := kc.(component.Kinematics)
	pos := pc.(component.Position)

	if kin.RotatingLeft {
		kin.Rotation += kin.RotationSpeed * dt
	}
	if kin.RotatingRight {
		kin.Rotation -= kin.RotationSpeed * dt
	}
	kin.Rotation = NormalizeDegrees(kin.Rotation)

	if kin.Thrusting {
		rad := kin.Rotation * math.Pi / 180
		kin.VX += math.Cos(rad) * kin.ThrustPower * dt
		kin.VY += math.Sin(rad) * kin.ThrustPower * dt
		if speed := math.Hypot(kin.VX, kin.VY); speed > kin.MaxVelocity {
			scale := kin.MaxVelocity / speed
			kin.VX *= scale
			kin.VY *= scale
		}
	}

	pos.X += kin.VX * dt
	pos.Y += kin.VY * dt

	drag := math.Max(0, 1-kin.Drag*dt)
	kin.VX *= drag
	kin.VY *= drag

	pos.X = Wrap(pos.X, b.Width)
	pos.Y = Wrap(pos.Y, b.Height)

	w.Add(id, kin)
	w.Add(id, pos)
}

// SetControls stores this tick's control input on the ship.
func SetControls(w *ecs.World, id ecs.EntityID, left, right, thrust bool) {
	kc := w.Get(id, component.CKinematics)
	if kc == nil {
		return
	}
	kin := kc.(component.Kinematics)
	kin.RotatingLeft, kin.RotatingRight, kin.Thrusting = left, right, thrust
	w.Add(id, kin)
}

// Distance returns the euclidean distance between two entities' positions,
// and false if either lacks a position.
func Distance(w *ecs.World, a, b ecs.EntityID) (float64, bool) {
	pa := w.Get(a, component.CPosition)
	pb := w.Get(b, component.CPosition)
	if pa == nil || pb == nil {
		return 0, false
	}
	p, q := pa.(component.Position), pb.(component.Position)
	return math.Hypot(p.X-q.X, p.Y-q.Y), true
}
