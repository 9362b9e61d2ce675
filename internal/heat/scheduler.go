package heat

import "image"

// Cursor is a position in chunk-grid units.
type Cursor struct {
	CX, CY int
}

// Scheduler walks the grid one chunk per tick in row-major order.
type Scheduler struct {
	grid   Grid
	size   int
	cols   int
	rows   int
	cursor Cursor
}

// NewScheduler returns a scheduler with its cursor at the origin. chunkSize
// must be positive; trailing partial chunks are clamped to the grid.
func NewScheduler(g Grid, chunkSize int) *Scheduler {
	return &Scheduler{
		grid: g,
		size: chunkSize,
		cols: (g.W + chunkSize - 1) / chunkSize,
		rows: (g.H + chunkSize - 1) / chunkSize,
	}
}

func (s *Scheduler) Cursor() Cursor { return s.cursor }
func (s *Scheduler) Size() int      { return s.size }

// ChunksPerSweep is the number of ticks needed to cover the grid once.
func (s *Scheduler) ChunksPerSweep() int { return s.cols * s.rows }

// Chunk returns the cell rectangle under the cursor.
func (s *Scheduler) Chunk() image.Rectangle {
	x0 := s.cursor.CX * s.size
	y0 := s.cursor.CY * s.size
	return image.Rect(x0, y0, min(x0+s.size, s.grid.W), min(y0+s.size, s.grid.H))
}

// Advance moves the cursor to the next chunk and reports whether it wrapped
// back to the origin, which marks a completed sweep.
func (s *Scheduler) Advance() bool {
	s.cursor.CX++
	if s.cursor.CX*s.size >= s.grid.W {
		s.cursor.CX = 0
		s.cursor.CY++
		if s.cursor.CY*s.size >= s.grid.H {
			s.cursor.CY = 0
		}
	}
	return s.cursor == Cursor{}
}

func (s *Scheduler) Reset() { s.cursor = Cursor{} }
