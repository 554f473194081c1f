package tuning

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsAreValid(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("Defaults().Validate() = %v", err)
	}
}

func TestShippedConfigMatchesDefaults(t *testing.T) {
	got, err := Load(filepath.Join("..", "..", "configs", "tuning.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Defaults()
	if got.Ship != want.Ship || got.World != want.World || got.Laser != want.Laser ||
		got.Module != want.Module || got.Depot != want.Depot {
		t.Fatalf("configs/tuning.yaml drifted from Defaults():\n got %+v\nwant %+v", got, want)
	}
	if len(got.Asteroid.BaseRadii) != 6 {
		t.Fatalf("base radii = %v", got.Asteroid.BaseRadii)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	got, err := Parse([]byte("ship:\n  cargo_capacity: 50\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Ship.CargoCapacity != 50 {
		t.Fatalf("cargo capacity = %d, want 50", got.Ship.CargoCapacity)
	}
	if got.Ship.MaxVelocity != 80 || got.Laser.OrePerCycle != 20 {
		t.Fatal("unspecified keys should keep their defaults")
	}
}

func TestEmptyFileIsDefaults(t *testing.T) {
	got, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil): %v", err)
	}
	if got.World.Width != 1600 {
		t.Fatalf("width = %v", got.World.Width)
	}
}

func TestInvalidTuning(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"negative cargo", "ship:\n  cargo_capacity: -1\n"},
		{"too many slots", "ship:\n  module_slots: 5\n"},
		{"chance above one", "laser:\n  critical_chance: 1.5\n"},
		{"chances sum past one", "laser:\n  super_critical_chance: 0.6\n  critical_chance: 0.6\n"},
		{"inverted scale", "asteroids:\n  min_scale: 0.9\n  max_scale: 0.5\n"},
		{"wrong radii count", "asteroids:\n  base_radii: [1, 2]\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestUnknownKeyRejected(t *testing.T) {
	if _, err := Parse([]byte("ship:\n  warp_drive: true\n")); err == nil {
		t.Fatal("unknown keys should be rejected")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}
