package renderer

// viewport is the scroll origin of the canvas in terminal cells.
type viewport struct {
	x, y int
}

// clamp keeps the origin within content of contentW x contentH cells shown
// through a viewW x viewH window. Content smaller than the window is pinned
// to the top-left corner.
func (v *viewport) clamp(contentW, contentH, viewW, viewH int) {
	v.x = clampInt(v.x, 0, max(contentW-viewW, 0))
	v.y = clampInt(v.y, 0, max(contentH-viewH, 0))
}

// toDisplay converts a terminal position to display units, where one unit
// is cellWidth terminal columns wide and one row tall.
func (v viewport) toDisplay(x, y, cellWidth int) (dx, dy int) {
	return (x + v.x) / cellWidth, y + v.y
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
