package component

import "void-miner/internal/ecs"

const CKinematics ecs.ComponentType = 4

// Kinematics holds a ship's motion state and its tuning. Rotation is in
// degrees, 0 pointing along +X.
type Kinematics struct {
	VX, VY   float64
	Rotation float64

	RotationSpeed float64 // degrees per second
	ThrustPower   float64 // pixels per second squared
	MaxVelocity   float64
	Drag          float64 // fraction of velocity lost per second

	// Control input for the current tick.
	RotatingLeft  bool
	RotatingRight bool
	Thrusting     bool
}

func (Kinematics) Type() ecs.ComponentType { return CKinematics }
