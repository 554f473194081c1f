package render

// Camera fits the whole world into the terminal viewport. World X is
// squeezed by 2 because emoji occupy 2 terminal columns, and world Y grows
// upwards while screen rows grow downwards.
type Camera struct {
	WorldWidth  float64
	WorldHeight float64
	ViewWidth   int // in terminal columns
	ViewHeight  int // in terminal rows
}

// NewCamera creates a camera showing a worldW x worldH area in viewW x viewH cells.
func NewCamera(worldW, worldH float64, viewW, viewH int) *Camera {
	return &Camera{WorldWidth: worldW, WorldHeight: worldH, ViewWidth: viewW, ViewHeight: viewH}
}

// Cells returns the number of 2-column glyph cells across the viewport.
func (c *Camera) Cells() int { return c.ViewWidth / 2 }

// WorldToScreen converts world (wx, wy) to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy int, visible bool) {
	if c.WorldWidth <= 0 || c.WorldHeight <= 0 || c.ViewHeight <= 0 || c.Cells() <= 0 {
		return 0, 0, false
	}
	cx := int(wx / c.WorldWidth * float64(c.Cells()))
	cy := int(wy / c.WorldHeight * float64(c.ViewHeight))
	// The far edges are on-world after wrapping, so clamp them onto the last cell.
	if cx == c.Cells() {
		cx--
	}
	if cy == c.ViewHeight {
		cy--
	}
	sx = cx * 2
	sy = c.ViewHeight - 1 - cy
	visible = cx >= 0 && cx < c.Cells() && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to the world position of that cell's corner.
func (c *Camera) ScreenToWorld(sx, sy int) (float64, float64) {
	cx := float64(sx / 2)
	cy := float64(c.ViewHeight - 1 - sy)
	return cx / float64(c.Cells()) * c.WorldWidth, cy / float64(c.ViewHeight) * c.WorldHeight
}
