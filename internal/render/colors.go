package render

import (
	"math"

	"void-miner/internal/inventory"
	"void-miner/internal/mining"
	"void-miner/internal/module"

	"github.com/gdamore/tcell/v2"
)

// TierColor is the message colour for a mining hit.
func TierColor(t mining.Tier) tcell.Color {
	switch t {
	case mining.SuperCritical:
		return tcell.ColorFuchsia
	case mining.Critical:
		return tcell.ColorGold
	}
	return tcell.ColorLightGreen
}

// StateColor is the HUD colour of a module in the given state.
func StateColor(s module.State) tcell.Color {
	switch s {
	case module.Active:
		return tcell.ColorRed
	case module.Cooldown:
		return tcell.ColorSteelBlue
	}
	return tcell.ColorGreen
}

// CargoColor shades the hold gauge as it fills.
func CargoColor(fraction float64) tcell.Color {
	switch {
	case fraction >= 1:
		return tcell.ColorRed
	case fraction > 0.9:
		return tcell.ColorOrange
	}
	return tcell.ColorWhite
}

// ResourceGlyph is a one-cell marker used in the cargo readout.
func ResourceGlyph(t inventory.ResourceType) string {
	if t.IsOre() {
		return "◆"
	}
	return "◇"
}

// headingArrows are indexed by the 45° sector of the ship's heading,
// counter-clockwise from +X.
var headingArrows = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// HeadingArrow returns the arrow closest to a heading in degrees.
func HeadingArrow(deg float64) rune {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return headingArrows[int((deg+22.5)/45)%8]
}
