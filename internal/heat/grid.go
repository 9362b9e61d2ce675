package heat

// Grid maps 2-D cell coordinates to row-major indices.
type Grid struct {
	W, H int
}

// Len returns the number of cells.
func (g Grid) Len() int { return g.W * g.H }

// Index returns the linear index for (x, y). The coordinate must be in bounds.
func (g Grid) Index(x, y int) int { return y*g.W + x }

// Coord is the inverse of Index.
func (g Grid) Coord(i int) (x, y int) { return i % g.W, i / g.W }

// InBounds reports whether (x, y) addresses a cell.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// East returns the index of the cell at (x+1, y). ok is false on the
// right-hand edge.
func (g Grid) East(x, y int) (int, bool) {
	if !g.InBounds(x+1, y) {
		return 0, false
	}
	return g.Index(x+1, y), true
}

// South returns the index of the cell at (x, y+1). ok is false on the bottom
// edge.
func (g Grid) South(x, y int) (int, bool) {
	if !g.InBounds(x, y+1) {
		return 0, false
	}
	return g.Index(x, y+1), true
}

// Field is a dense temperature array addressed by a Grid.
type Field struct {
	Grid
	data []float32
}

// NewField allocates a zeroed field.
func NewField(g Grid) *Field {
	return &Field{Grid: g, data: make([]float32, g.Len())}
}

func (f *Field) At(x, y int) float32     { return f.data[f.Index(x, y)] }
func (f *Field) Set(x, y int, v float32) { f.data[f.Index(x, y)] = v }

// Values exposes the backing slice. Callers outside the solver must treat it
// as read-only.
func (f *Field) Values() []float32 { return f.data }

// CopyTo copies the temperatures into dst, growing it if needed.
func (f *Field) CopyTo(dst []float32) []float32 {
	if cap(dst) < len(f.data) {
		dst = make([]float32, len(f.data))
	}
	dst = dst[:len(f.data)]
	copy(dst, f.data)
	return dst
}

// Fill sets every cell to v.
func (f *Field) Fill(v float32) {
	for i := range f.data {
		f.data[i] = v
	}
}
