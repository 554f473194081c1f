// Package tuning loads the gameplay constants from YAML.
package tuning

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid tuning")

type Tuning struct {
	World    World    `yaml:"world" json:"world"`
	Ship     Ship     `yaml:"ship" json:"ship"`
	Module   Module   `yaml:"module" json:"module"`
	Laser    Laser    `yaml:"laser" json:"laser"`
	Asteroid Asteroid `yaml:"asteroids" json:"asteroids"`
	Depot    Depot    `yaml:"depot" json:"depot"`
}

type World struct {
	Width               float64 `yaml:"width" json:"width"`
	Height              float64 `yaml:"height" json:"height"`
	AsteroidCount       int     `yaml:"asteroid_count" json:"asteroid_count"`
	MinPlayerDistance   float64 `yaml:"min_player_distance" json:"min_player_distance"`
	MinAsteroidDistance float64 `yaml:"min_asteroid_distance" json:"min_asteroid_distance"`
	SpawnAttempts       int     `yaml:"spawn_attempts" json:"spawn_attempts"`
}

type Ship struct {
	RotationSpeed float64 `yaml:"rotation_speed" json:"rotation_speed"`
	ThrustPower   float64 `yaml:"thrust_power" json:"thrust_power"`
	MaxVelocity   float64 `yaml:"max_velocity" json:"max_velocity"`
	Drag          float64 `yaml:"drag" json:"drag"`
	Health        float64 `yaml:"health" json:"health"`
	ModuleSlots   int     `yaml:"module_slots" json:"module_slots"`
	CargoCapacity int     `yaml:"cargo_capacity" json:"cargo_capacity"`
}

type Module struct {
	ActiveDuration   float64 `yaml:"active_duration" json:"active_duration"`
	CooldownDuration float64 `yaml:"cooldown_duration" json:"cooldown_duration"`
}

type Laser struct {
	OrePerCycle         int     `yaml:"ore_per_cycle" json:"ore_per_cycle"`
	Range               float64 `yaml:"range" json:"range"`
	SuperCriticalChance float64 `yaml:"super_critical_chance" json:"super_critical_chance"`
	CriticalChance      float64 `yaml:"critical_chance" json:"critical_chance"`
}

type Asteroid struct {
	MinScale         float64   `yaml:"min_scale" json:"min_scale"`
	MaxScale         float64   `yaml:"max_scale" json:"max_scale"`
	MinOre           int       `yaml:"min_ore" json:"min_ore"`
	MaxOre           int       `yaml:"max_ore" json:"max_ore"`
	MinRotationSpeed float64   `yaml:"min_rotation_speed" json:"min_rotation_speed"`
	MaxRotationSpeed float64   `yaml:"max_rotation_speed" json:"max_rotation_speed"`
	BaseRadii        []float64 `yaml:"base_radii" json:"base_radii"`
}

type Depot struct {
	Capacity      int     `yaml:"capacity" json:"capacity"`
	Radius        float64 `yaml:"radius" json:"radius"`
	TransferRange float64 `yaml:"transfer_range" json:"transfer_range"`
}

// Defaults returns the shipped balance.
func Defaults() Tuning {
	return Tuning{
		World: World{
			Width:               1600,
			Height:              1200,
			AsteroidCount:       12,
			MinPlayerDistance:   200,
			MinAsteroidDistance: 100,
			SpawnAttempts:       100,
		},
		Ship: Ship{
			RotationSpeed: 100,
			ThrustPower:   100,
			MaxVelocity:   80,
			Drag:          0.2,
			Health:        100,
			ModuleSlots:   4,
			CargoCapacity: 200,
		},
		Module: Module{ActiveDuration: 3.5, CooldownDuration: 4.0},
		Laser: Laser{
			OrePerCycle:         20,
			Range:               200,
			SuperCriticalChance: 0.15,
			CriticalChance:      0.35,
		},
		Asteroid: Asteroid{
			MinScale:         0.3,
			MaxScale:         0.6,
			MinOre:           30,
			MaxOre:           100,
			MinRotationSpeed: 3,
			MaxRotationSpeed: 5,
			BaseRadii:        []float64{40, 35, 30, 45, 25, 20},
		},
		Depot: Depot{Capacity: 1000, Radius: 60, TransferRange: 50},
	}
}

// Load reads a YAML file on top of Defaults and validates the result.
// Keys missing from the file keep their default values.
func Load(path string) (Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, err
	}
	return Parse(raw)
}

// Parse is Load without the file read.
func Parse(raw []byte) (Tuning, error) {
	t := Defaults()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return Tuning{}, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "mem:///tuning.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// Validate checks t against the embedded JSON schema, then the cross-field
// rules the schema cannot express.
func (t Tuning) Validate() error {
	s, err := compiled()
	if err != nil {
		return fmt.Errorf("compile tuning schema: %w", err)
	}
	raw, err := json.Marshal(t)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	switch {
	case t.Asteroid.MinScale >= t.Asteroid.MaxScale:
		return fmt.Errorf("%w: asteroids.min_scale must be below max_scale", ErrInvalid)
	case t.Asteroid.MinOre > t.Asteroid.MaxOre:
		return fmt.Errorf("%w: asteroids.min_ore exceeds max_ore", ErrInvalid)
	case t.Asteroid.MinRotationSpeed > t.Asteroid.MaxRotationSpeed:
		return fmt.Errorf("%w: asteroids.min_rotation_speed exceeds max_rotation_speed", ErrInvalid)
	case t.Laser.SuperCriticalChance+t.Laser.CriticalChance > 1:
		return fmt.Errorf("%w: critical chances sum past 1", ErrInvalid)
	}
	return nil
}
