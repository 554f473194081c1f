package game

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"void-miner/internal/inventory"
	"void-miner/internal/mining"
	"void-miner/internal/persistence/runlog"
	"void-miner/internal/persistence/statsdb"
	"void-miner/internal/render"

	"github.com/gdamore/tcell/v2"
)

// leaderboardSize is the number of best runs shown on the end screen.
const leaderboardSize = 5

// showEndScreen renders the run summary and returns true if the player
// wants another run, false to quit.
func (g *Game) showEndScreen(ctx context.Context, eventCh <-chan tcell.Event, rec runlog.Record, why exit) bool {
	best := g.topRuns()

	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	gold := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	gray := tcell.StyleDefault.Foreground(tcell.ColorGray)
	dim := tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	green := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)

	for {
		g.screen.Clear()
		sw, _ := g.screen.Size()

		sep := func(y int) {
			for x := 0; x < sw; x++ {
				g.screen.SetContent(x, y, '─', nil, gray)
			}
		}
		// label prints a left-aligned key at column 2 and value at column 22.
		label := func(y int, l, v string) {
			g.putText(2, y, l, dim)
			g.putText(22, y, v, white)
		}

		y := 1
		sep(y)
		y += 2

		if why == exitDestroyed {
			g.putText(2, y, "SHIP LOST", gold)
			badge := "[DESTROYED]"
			g.putText(sw-len(badge)-1, y, badge, red)
		} else {
			g.putText(2, y, "SHIFT COMPLETE", gold)
			badge := "[RETURNED]"
			g.putText(sw-len(badge)-1, y, badge, green)
		}
		y += 2

		label(y, "Pilot:", rec.Player)
		y++
		label(y, "Time:", formatDuration(rec.Duration))
		y++
		label(y, "Score:", fmt.Sprintf("%d", rec.Score))
		y += 2

		label(y, "Ore Mined:", fmt.Sprintf("%d", rec.TotalMined))
		y++
		if line := amounts(rec.Mined); line != "" {
			g.putText(4, y, line, dim)
			y++
		}
		label(y, "Hits:", tierLine(rec.Tiers))
		y++
		label(y, "Laser Cycles:", fmt.Sprintf("%d (%d refused)", rec.Activations, rec.FailedActivations))
		y++
		label(y, "Asteroids Emptied:", fmt.Sprintf("%d", rec.AsteroidsDepleted))
		y += 2

		label(y, "Depot Unloads:", fmt.Sprintf("%d", rec.Unloads))
		y++
		if line := amounts(rec.Refined); line != "" {
			label(y, "Refined:", line)
			y++
		}
		y++

		if len(best) > 0 {
			g.putText(2, y, "Best Hauls", gold)
			y++
			for i, s := range best {
				style := white
				if s.Started.Equal(rec.Started) && s.Player == rec.Player {
					style = green
				}
				g.putText(4, y, fmt.Sprintf("%d. %-12s %5d ore  %s", i+1, s.Player, s.TotalMined, formatDuration(s.Duration)), style)
				y++
			}
			y++
		}

		sep(y)
		y += 2

		g.putText(2, y, "[R] New Run", green)
		g.putText(18, y, "[Q] Quit", red)

		g.screen.Show()

		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-eventCh:
			if !ok {
				return false
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				g.screen.Sync()
				continue // redraw on resize
			case *tcell.EventKey:
				switch keyToHost(ev) {
				case hostNewRun:
					return true
				case hostEndRun, hostQuit:
					return false
				}
				if ev.Key() == tcell.KeyEscape {
					return false
				}
			}
		}
	}
}

func (g *Game) topRuns() []statsdb.Summary {
	if g.cfg.Leaderboard == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	best, err := g.cfg.Leaderboard.TopRuns(ctx, leaderboardSize)
	if err != nil {
		g.logger.Warn("load leaderboard", "error", err)
		return nil
	}
	return best
}

// putText writes a string to the screen at (x, y), one column per rune.
func (g *Game) putText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func formatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// amounts lists non-zero quantities in resource order.
func amounts(m map[inventory.ResourceType]int) string {
	types := make([]inventory.ResourceType, 0, len(m))
	for t, n := range m {
		if n > 0 {
			types = append(types, t)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("%s %s×%d", render.ResourceGlyph(t), t, m[t]))
	}
	return strings.Join(parts, "  ")
}

func tierLine(tiers map[mining.Tier]int) string {
	return fmt.Sprintf("%d normal  %d critical  %d super",
		tiers[mining.Normal], tiers[mining.Critical], tiers[mining.SuperCritical])
}
