package system

import (
	"math"
	"testing"

	"void-miner/internal/component"
	"void-miner/internal/ecs"
	"void-miner/internal/factory"
	"void-miner/internal/tuning"
)

var testBounds = Bounds{Width: 1600, Height: 1200}

func setupShip(x, y float64) (*ecs.World, ecs.EntityID) {
	w := ecs.NewWorld()
	return w, factory.NewShip(w, tuning.Defaults().Ship, x, y)
}

func kinematics(w *ecs.World, id ecs.EntityID) component.Kinematics {
	return w.Get(id, component.CKinematics).(component.Kinematics)
}

func position(w *ecs.World, id ecs.EntityID) component.Position {
	return w.Get(id, component.CPosition).(component.Position)
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestWrap(t *testing.T) {
	cases := []struct {
		v, want float64
	}{
		{-0.1, 1600},
		{1600.1, 0},
		{0, 0},
		{1600, 1600},
		{800, 800},
	}
	for _, tc := range cases {
		if got := Wrap(tc.v, 1600); got != tc.want {
			t.Errorf("Wrap(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestNormalizeDegrees(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{370, 10},
		{-5, 355},
		{360, 0},
		{0, 0},
		{-720, 0},
	}
	for _, tc := range cases {
		if got := NormalizeDegrees(tc.in); !near(got, tc.want) {
			t.Errorf("NormalizeDegrees(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestStepShipWrapsPastEdge(t *testing.T) {
	w, ship := setupShip(1599, 600)
	kin := kinematics(w, ship)
	kin.VX = 80
	w.Add(ship, kin)

	StepShip(w, ship, 0.1, testBounds)
	if p := position(w, ship); p.X != 0 {
		t.Fatalf("x = %v, want 0 after crossing the right edge", p.X)
	}

	w.Add(ship, component.Position{X: 1, Y: 600})
	kin = kinematics(w, ship)
	kin.VX = -80
	w.Add(ship, kin)
	StepShip(w, ship, 0.1, testBounds)
	if p := position(w, ship); p.X != 1600 {
		t.Fatalf("x = %v, want 1600 after crossing the left edge", p.X)
	}
}

func TestThrustClampsToMaxVelocity(t *testing.T) {
	w, ship := setupShip(100, 100)
	kin := kinematics(w, ship)
	kin.VX = 79
	w.Add(ship, kin)
	SetControls(w, ship, false, false, true)

	StepShip(w, ship, 1, testBounds)

	// Clamped to 80, moved by 80, then drag leaves 80*(1-0.2).
	if p := position(w, ship); !near(p.X, 180) {
		t.Fatalf("x = %v, want 180", p.X)
	}
	if k := kinematics(w, ship); !near(k.VX, 64) || !near(k.VY, 0) {
		t.Fatalf("v = (%v,%v), want (64,0)", k.VX, k.VY)
	}
}

func TestThrustFollowsHeading(t *testing.T) {
	w, ship := setupShip(100, 100)
	kin := kinematics(w, ship)
	kin.Rotation = 90
	w.Add(ship, kin)
	SetControls(w, ship, false, false, true)

	StepShip(w, ship, 0.1, testBounds)
	k := kinematics(w, ship)
	if !near(k.VX, 0) || k.VY <= 0 {
		t.Fatalf("thrust at 90° should push along +Y, got (%v,%v)", k.VX, k.VY)
	}
}

func TestRotation(t *testing.T) {
	cases := []struct {
		name        string
		start       float64
		left, right bool
		dt          float64
		want        float64
	}{
		{"left wraps past 360", 350, true, false, 0.2, 10},
		{"right wraps below 0", 5, false, true, 0.1, 355},
		{"both cancel", 42, true, true, 0.5, 42},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, ship := setupShip(100, 100)
			kin := kinematics(w, ship)
			kin.Rotation = tc.start
			w.Add(ship, kin)
			SetControls(w, ship, tc.left, tc.right, false)

			StepShip(w, ship, tc.dt, testBounds)
			if got := kinematics(w, ship).Rotation; !near(got, tc.want) {
				t.Fatalf("rotation = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPositionUsesPreDragVelocity(t *testing.T) {
	w, ship := setupShip(100, 100)
	kin := kinematics(w, ship)
	kin.VX = 10
	w.Add(ship, kin)

	StepShip(w, ship, 1, testBounds)
	if p := position(w, ship); !near(p.X, 110) {
		t.Fatalf("x = %v, want 110", p.X)
	}
	if k := kinematics(w, ship); !near(k.VX, 8) {
		t.Fatalf("vx = %v, want 8", k.VX)
	}
}

func TestDragNeverReversesVelocity(t *testing.T) {
	w, ship := setupShip(100, 100)
	kin := kinematics(w, ship)
	kin.VX, kin.Drag = 50, 20
	w.Add(ship, kin)

	StepShip(w, ship, 0.1, testBounds)
	if k := kinematics(w, ship); k.VX != 0 {
		t.Fatalf("vx = %v, want 0", k.VX)
	}
}
