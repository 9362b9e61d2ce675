package heat

import "image"

// Seeder fills a freshly allocated field with initial temperatures.
type Seeder interface {
	Seed(f *Field)
}

// SeederFunc adapts a function to the Seeder interface.
type SeederFunc func(f *Field)

func (fn SeederFunc) Seed(f *Field) { fn(f) }

// TickResult describes the work done by one Tick.
type TickResult struct {
	// Chunk is the cell rectangle that accumulated flux this tick.
	Chunk image.Rectangle
	// SweepComplete is set on the tick that integrated and committed a sweep.
	SweepComplete bool
	// Clamped counts cells forced back into [MinHeat, MaxHeat] by integration.
	Clamped int
}

// Solver is the simulation context: it owns the temperature field, the flux
// accumulator and the chunk cursor.
type Solver struct {
	params     Params
	grid       Grid
	cond       Conductivity
	field      *Field
	acc        *Accumulator
	sched      *Scheduler
	integrator *Integrator

	ticks        int
	sweeps       int
	sweepElapsed float32
}

// New validates p and builds a solver seeded by seeder. A nil seeder leaves
// every cell at MinHeat.
func New(p Params, seeder Seeder) (*Solver, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	g := p.Grid()
	s := &Solver{
		params:     p,
		grid:       g,
		cond:       p.Conductivity,
		field:      NewField(g),
		acc:        NewAccumulator(g),
		sched:      NewScheduler(g, p.ChunkSize),
		integrator: NewIntegrator(p),
	}
	s.Reseed(seeder)
	return s, nil
}

// Reseed replaces the temperatures and restarts the sweep in progress.
// Seeded values outside [MinHeat, MaxHeat] are clamped.
func (s *Solver) Reseed(seeder Seeder) {
	s.field.Fill(s.params.MinHeat)
	if seeder != nil {
		seeder.Seed(s.field)
	}
	for i, t := range s.field.data {
		s.field.data[i] = clamp(t, s.params.MinHeat, s.params.MaxHeat)
	}
	s.acc.Reset()
	s.sched.Reset()
	s.ticks, s.sweeps, s.sweepElapsed = 0, 0, 0
}

// Tick accumulates flux for the current chunk, advances the cursor and, when
// that completes a sweep, integrates and commits the accumulator.
func (s *Solver) Tick(dt float32) TickResult {
	chunk := s.sched.Chunk()
	s.accumulate(chunk)

	s.ticks++
	s.sweepElapsed += dt
	res := TickResult{Chunk: chunk}
	if !s.sched.Advance() {
		return res
	}

	step := dt
	if s.params.StepMode == StepSweep {
		step = s.sweepElapsed
	}
	res.Clamped = s.integrator.Apply(s.field, s.acc.Active(), step)
	res.SweepComplete = true
	s.acc.Commit()
	s.sweeps++
	s.sweepElapsed = 0
	return res
}

// Sweep ticks until the sweep in progress completes and returns the number of
// ticks taken and the clamp count of the integration.
func (s *Solver) Sweep(dt float32) (ticks, clamped int) {
	for {
		ticks++
		if r := s.Tick(dt); r.SweepComplete {
			return ticks, r.Clamped
		}
	}
}

func (s *Solver) accumulate(r image.Rectangle) {
	t := s.field.data
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := s.grid.Index(x, y)
			if j, ok := s.grid.East(x, y); ok {
				s.acc.Accumulate(i, j, s.cond.Flux(t[i], t[j]))
			}
			if j, ok := s.grid.South(x, y); ok {
				s.acc.Accumulate(i, j, s.cond.Flux(t[i], t[j]))
			}
		}
	}
}

func (s *Solver) Params() Params { return s.params }
func (s *Solver) Grid() Grid     { return s.grid }
func (s *Solver) Ticks() int     { return s.ticks }
func (s *Solver) Sweeps() int    { return s.sweeps }
func (s *Solver) Cursor() Cursor { return s.sched.Cursor() }

// TicksPerSweep is ceil(W/C) * ceil(H/C).
func (s *Solver) TicksPerSweep() int { return s.sched.ChunksPerSweep() }

// Field returns the committed temperatures. Read-only outside the solver.
func (s *Solver) Field() *Field { return s.field }

// Snapshot copies the temperatures into dst.
func (s *Solver) Snapshot(dst []float32) []float32 { return s.field.CopyTo(dst) }

// PendingFlux is the accumulator of the sweep in progress. Read-only.
func (s *Solver) PendingFlux() []float32 { return s.acc.Active() }

// NetFlux is the accumulated flux of the last completed sweep. Read-only.
func (s *Solver) NetFlux() []float32 { return s.acc.Committed() }

func clamp(v, lo, hi float32) float32 {
	if v > hi {
		return hi
	}
	if !(v >= lo) {
		return lo
	}
	return v
}
