package palette

// Tile places grid cells in world space.
type Tile struct {
	OffsetX, OffsetY float64
	CellSize         float64
}

// Position returns the world coordinate of cell (x, y).
func (t Tile) Position(x, y int) (float64, float64) {
	return t.OffsetX + float64(x)*t.CellSize, t.OffsetY + float64(y)*t.CellSize
}

// Centered returns a Tile whose grid of w x h cells is centred on the origin.
func Centered(w, h int, cellSize float64) Tile {
	return Tile{
		OffsetX:  -float64(w-1) * cellSize / 2,
		OffsetY:  -float64(h-1) * cellSize / 2,
		CellSize: cellSize,
	}
}
