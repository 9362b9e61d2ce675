package heat

// Accumulator collects net flux per cell across a sweep. It is double
// buffered: Commit moves the active buffer aside so the last sweep's flux
// stays readable while the next sweep accumulates into a zeroed buffer.
type Accumulator struct {
	grid      Grid
	active    []float32
	committed []float32
}

func NewAccumulator(g Grid) *Accumulator {
	return &Accumulator{
		grid:      g,
		active:    make([]float32, g.Len()),
		committed: make([]float32, g.Len()),
	}
}

// Accumulate moves flux from cell a to cell b.
func (a *Accumulator) Accumulate(from, to int, flux float32) {
	a.active[from] -= flux
	a.active[to] += flux
}

// At returns the flux accumulated so far for the cell at index i.
func (a *Accumulator) At(i int) float32 { return a.active[i] }

// Active exposes the in-progress buffer. Read-only.
func (a *Accumulator) Active() []float32 { return a.active }

// Committed exposes the net flux of the last completed sweep. Read-only.
func (a *Accumulator) Committed() []float32 { return a.committed }

// Sum returns the sum of the in-progress buffer in float64.
func (a *Accumulator) Sum() float64 {
	sum := 0.0
	for _, v := range a.active {
		sum += float64(v)
	}
	return sum
}

// Commit swaps the buffers and zeroes the new active buffer.
func (a *Accumulator) Commit() {
	a.active, a.committed = a.committed, a.active
	a.Reset()
}

// Reset zeroes the in-progress buffer.
func (a *Accumulator) Reset() {
	for i := range a.active {
		a.active[i] = 0
	}
}
