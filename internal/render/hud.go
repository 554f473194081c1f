package render

import (
	"fmt"
	"sort"
	"strings"

	"void-miner/internal/inventory"
	"void-miner/internal/sim"

	"github.com/gdamore/tcell/v2"
)

// Message is one line of the HUD log.
type Message struct {
	Text  string
	Color tcell.Color
}

// gaugeWidth is the number of cells in the cargo and cycle bars.
const gaugeWidth = 10

// DrawHUD renders the status bar, module rack and message log at the bottom
// of the screen, then shows the frame.
func (r *Renderer) DrawHUD(snap sim.Snapshot, messages []Message) {
	_, screenH := r.screen.Size()
	hudY := screenH - hudRows

	r.drawHLine(hudY, tcell.ColorGray)

	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	clock := fmt.Sprintf("%02d:%02d", int(snap.Elapsed)/60, int(snap.Elapsed)%60)

	if ship := snap.Ship; ship != nil {
		col := r.drawText(0, hudY+1, fmt.Sprintf("Hull %3.0f%%  Cargo ", ship.Health*100), white)
		frac := 0.0
		if ship.CargoMax > 0 {
			frac = float64(ship.CargoUsed) / float64(ship.CargoMax)
		}
		col = r.drawGauge(col, hudY+1, frac, tcell.StyleDefault.Foreground(CargoColor(frac)))
		line := fmt.Sprintf(" %d/%d  Score %d  %s  ", ship.CargoUsed, ship.CargoMax, snap.Score, clock)
		col = r.drawText(col, hudY+1, line, white)
		r.drawText(col, hudY+1, cargoSummary(ship.Cargo), tcell.StyleDefault.Foreground(tcell.ColorSilver))

		col = 0
		for _, m := range ship.Modules {
			style := tcell.StyleDefault.Foreground(StateColor(m.State))
			col = r.drawText(col, hudY+2, fmt.Sprintf("[%d] %s ", m.Slot+1, m.Status), style)
			col = r.drawGauge(col, hudY+2, m.Progress, style)
			col = r.drawText(col, hudY+2, "  ", white)
		}
	} else {
		r.drawText(0, hudY+1, fmt.Sprintf("Ship destroyed  Score %d  %s", snap.Score, clock),
			tcell.StyleDefault.Foreground(tcell.ColorRed))
	}

	// Message log (last 2 messages).
	start := max(len(messages)-2, 0)
	for i, msg := range messages[start:] {
		color := msg.Color
		if color == tcell.ColorDefault {
			color = tcell.ColorLightYellow
		}
		r.drawText(0, hudY+3+i, msg.Text, tcell.StyleDefault.Foreground(color))
	}

	if !snap.Running {
		r.drawCentered(r.camera.ViewHeight/2, " PAUSED ", tcell.StyleDefault.
			Foreground(tcell.ColorBlack).Background(tcell.ColorYellow).Bold(true))
	}

	r.screen.Show()
}

// cargoSummary lists hold contents in resource order, e.g. "◆ Veldspar 40".
func cargoSummary(cargo map[inventory.ResourceType]int) string {
	types := make([]inventory.ResourceType, 0, len(cargo))
	for t, n := range cargo {
		if n > 0 {
			types = append(types, t)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("%s %s %d", ResourceGlyph(t), t, cargo[t]))
	}
	return strings.Join(parts, "  ")
}

// drawGauge draws a bar of gaugeWidth cells filled to fraction and returns
// the next free column.
func (r *Renderer) drawGauge(x, y int, fraction float64, style tcell.Style) int {
	filled := int(min(max(fraction, 0), 1) * gaugeWidth)
	var b strings.Builder
	b.WriteRune('▕')
	b.WriteString(strings.Repeat("█", filled))
	b.WriteString(strings.Repeat("░", gaugeWidth-filled))
	b.WriteRune('▏')
	return r.drawText(x, y, b.String(), style)
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawCentered draws text horizontally centred on row y.
func (r *Renderer) drawCentered(y int, text string, style tcell.Style) {
	w, _ := r.screen.Size()
	r.drawText(max((w-len([]rune(text)))/2, 0), y, text, style)
}

// drawText writes text starting at column x and returns the column after it.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col++
	}
	return col
}
