package inventory

import (
	"fmt"
	"strings"
)

// ResourceType tags one kind of stackable resource.
type ResourceType uint8

const (
	// Ores, mined from asteroids.
	Veldspar ResourceType = iota + 1
	Scordite
	Pyroxeres
	Plagioclase
	Omber

	// Basic minerals.
	Tritanium
	Plexite
	Mexallon
	Isogen

	// Advanced minerals.
	Nocxium
	Zydrine
	Megacyte

	// Special minerals.
	Plex
	Morphite
)

// Ores lists every ore type in declaration order.
var Ores = []ResourceType{Veldspar, Scordite, Pyroxeres, Plagioclase, Omber}

var names = map[ResourceType]string{
	Veldspar:    "Veldspar",
	Scordite:    "Scordite",
	Pyroxeres:   "Pyroxeres",
	Plagioclase: "Plagioclase",
	Omber:       "Omber",
	Tritanium:   "Tritanium",
	Plexite:     "Plexite",
	Mexallon:    "Mexallon",
	Isogen:      "Isogen",
	Nocxium:     "Nocxium",
	Zydrine:     "Zydrine",
	Megacyte:    "Megacyte",
	Plex:        "Plex",
	Morphite:    "Morphite",
}

// String returns the display name.
func (t ResourceType) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return fmt.Sprintf("ResourceType(%d)", uint8(t))
}

// IsOre reports whether t is a raw ore that a depot can refine.
func (t ResourceType) IsOre() bool { return t >= Veldspar && t <= Omber }

// Valid reports whether t is a known type.
func (t ResourceType) Valid() bool {
	_, ok := names[t]
	return ok
}

// ParseResourceType resolves a display name, case-insensitively.
func ParseResourceType(s string) (ResourceType, error) {
	for t, n := range names {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown resource type %q", s)
}

// MarshalText encodes the type by name so snapshots and run logs stay readable.
func (t ResourceType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid resource type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (t *ResourceType) UnmarshalText(b []byte) error {
	v, err := ParseResourceType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// RefiningRates maps each ore to the percentage of every mineral it yields.
var RefiningRates = map[ResourceType]map[ResourceType]int{
	Veldspar: {
		Tritanium: 40,
		Plexite:   10,
	},
	Scordite: {
		Tritanium: 30,
		Plexite:   20,
	},
	Pyroxeres: {
		Tritanium: 20,
		Plexite:   30,
		Mexallon:  10,
	},
	Plagioclase: {
		Tritanium: 10,
		Plexite:   20,
		Mexallon:  20,
	},
	Omber: {
		Tritanium: 10,
		Plexite:   20,
		Isogen:    10,
	},
}
