package render

import (
	"sort"

	"void-miner/internal/component"
	"void-miner/internal/ecs"
	"void-miner/internal/module"
	"void-miner/internal/sim"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// hudRows is the number of rows reserved at the bottom for the HUD.
const hudRows = 5

// Renderer draws the mining field onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
}

// NewRenderer creates a Renderer for the given screen and world size.
func NewRenderer(screen tcell.Screen, worldW, worldH float64) *Renderer {
	r := &Renderer{screen: screen, camera: NewCamera(worldW, worldH, 0, 0)}
	r.Resize()
	return r
}

// Resize refits the camera to the current screen size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.ViewWidth = w
	r.camera.ViewHeight = max(h-hudRows, 1)
}

// Camera exposes the world-to-screen mapping.
func (r *Renderer) Camera() *Camera { return r.camera }

// DrawFrame renders beams, entities and the ship's heading.
func (r *Renderer) DrawFrame(w *sim.World, snap sim.Snapshot) {
	r.screen.Clear()
	r.drawBeams(snap)
	r.drawEntities(w.Arena())
	if snap.Ship != nil {
		r.drawHeading(*snap.Ship)
	}
}

// renderableEntity holds sorting info for entity rendering.
type renderableEntity struct {
	id    ecs.EntityID
	order int
	pos   component.Position
	rend  component.Renderable
}

// drawEntities renders all entities with Renderable + Position, ordered by RenderOrder.
func (r *Renderer) drawEntities(w *ecs.World) {
	ids := w.Query(component.CRenderable, component.CPosition)
	entities := make([]renderableEntity, 0, len(ids))

	for _, id := range ids {
		pos := w.Get(id, component.CPosition).(component.Position)
		rend := w.Get(id, component.CRenderable).(component.Renderable)
		entities = append(entities, renderableEntity{id: id, order: rend.RenderOrder, pos: pos, rend: rend})
	}

	// Lower render order is drawn first, so the ship ends up on top.
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].order < entities[j].order
	})

	for _, e := range entities {
		sx, sy, onScreen := r.camera.WorldToScreen(e.pos.X, e.pos.Y)
		if !onScreen {
			continue
		}
		style := tcell.StyleDefault.Foreground(e.rend.FGColor).Background(tcell.ColorBlack)
		r.putGlyph(sx, sy, e.rend.Glyph, style)
	}
}

// drawBeams draws a dotted line from each firing laser to its target.
func (r *Renderer) drawBeams(snap sim.Snapshot) {
	if snap.Ship == nil {
		return
	}
	targets := make(map[ecs.EntityID]sim.AsteroidState, len(snap.Asteroids))
	for _, a := range snap.Asteroids {
		targets[a.ID] = a
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack)
	for _, m := range snap.Ship.Modules {
		if m.State != module.Active || m.Target == ecs.NilEntity {
			continue
		}
		a, ok := targets[m.Target]
		if !ok {
			continue
		}
		x0, y0, _ := r.camera.WorldToScreen(m.BeamX, m.BeamY)
		x1, y1, _ := r.camera.WorldToScreen(a.X, a.Y)
		r.drawLine(x0/2, y0, x1/2, y1, '·', style)
	}
}

// drawLine plots glyph on every cell between two cell positions, endpoints
// excluded. Cell x is in glyph cells, not columns.
func (r *Renderer) drawLine(x0, y0, x1, y1 int, glyph rune, style tcell.Style) {
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	for i := 1; i < steps; i++ {
		cx := x0 + dx*i/steps
		cy := y0 + dy*i/steps
		if cx < 0 || cx >= r.camera.Cells() || cy < 0 || cy >= r.camera.ViewHeight {
			continue
		}
		r.screen.SetContent(cx*2, cy, glyph, nil, style)
	}
}

// drawHeading puts an arrow in the cell the ship is pointing at.
func (r *Renderer) drawHeading(ship sim.ShipState) {
	sx, sy, ok := r.camera.WorldToScreen(ship.X, ship.Y)
	if !ok {
		return
	}
	arrow := HeadingArrow(ship.Rotation)
	dx, dy := 0, 0
	switch arrow {
	case '→':
		dx = 1
	case '↗':
		dx, dy = 1, -1
	case '↑':
		dy = -1
	case '↖':
		dx, dy = -1, -1
	case '←':
		dx = -1
	case '↙':
		dx, dy = -1, 1
	case '↓':
		dy = 1
	case '↘':
		dx, dy = 1, 1
	}
	x, y := sx+dx*2, sy+dy
	if x < 0 || x >= r.camera.ViewWidth || y < 0 || y >= r.camera.ViewHeight {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack)
	if ship.Thrusting {
		style = style.Bold(true)
	}
	r.screen.SetContent(x, y, arrow, nil, style)
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
