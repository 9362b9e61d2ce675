package sim

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/san-kum/heatsim/internal/heat"
)

// Simulator drives a heat.Solver from a fixed-step clock.
type Simulator struct {
	solver    *heat.Solver
	metrics   []Metric
	observers []Observer
	pool      *FramePool
	logger    *slog.Logger
	logCells  bool
}

func New(solver *heat.Solver) *Simulator {
	return &Simulator{
		solver:    solver,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		pool:      NewFramePool(solver.Grid().Len()),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) Solver() *heat.Solver   { return s.solver }
func (s *Simulator) Pool() *FramePool       { return s.pool }

// SetPool shares p across simulators so released frames are reused by
// later runs.
func (s *Simulator) SetPool(p *FramePool) {
	if p != nil {
		s.pool = p
	}
}

// SetLogger routes sweep and run logs to l. logCells additionally dumps every
// committed cell temperature at debug level.
func (s *Simulator) SetLogger(l *slog.Logger, logCells bool) {
	s.logger = l
	s.logCells = logCells
}

// Run advances the solver cfg.Ticks times. Cancellation is checked between
// ticks; the partial result is returned alongside the context error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{
		Initial: s.solver.Snapshot(nil),
		Frames:  make([]Frame, 0),
		Metrics: make(map[string]float64),
	}
	initial := Frame{Time: 0, Temps: result.Initial}
	for _, m := range s.metrics {
		m.Observe(initial)
	}

	dt := float32(cfg.Dt)
	t := 0.0
	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, t)
			return result, &RunError{Tick: i, Time: t, Wrapped: ctx.Err()}
		default:
		}

		r := s.solver.Tick(dt)
		t += cfg.Dt
		result.Ticks++

		if !r.SweepComplete {
			s.notify(r, nil)
			continue
		}

		result.Sweeps++
		result.Clamped += r.Clamped
		frame := Frame{
			Sweep:   s.solver.Sweeps(),
			Tick:    s.solver.Ticks(),
			Time:    t,
			Clamped: r.Clamped,
		}
		keep := cfg.RecordEvery > 0 && result.Sweeps%cfg.RecordEvery == 0
		if keep {
			frame.Temps = s.solver.Snapshot(s.pool.Get())
		} else {
			frame.Temps = s.solver.Field().Values()
		}

		for _, m := range s.metrics {
			m.Observe(frame)
		}
		s.notify(r, &frame)
		s.logSweep(frame)

		if keep {
			result.Frames = append(result.Frames, frame)
		}
	}

	s.finish(result, t)
	s.logger.Info("run complete",
		"ticks", result.Ticks,
		"sweeps", result.Sweeps,
		"clamped", result.Clamped,
		"sim_time", t,
	)
	return result, nil
}

// RunWithCallback ticks until callback returns false or ctx is done. The
// callback sees every tick; frame is non-nil when a sweep was committed.
func (s *Simulator) RunWithCallback(ctx context.Context, dt float64, callback func(r heat.TickResult, frame *Frame) bool) error {
	if dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", dt)
	}
	t := 0.0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r := s.solver.Tick(float32(dt))
		t += dt

		var frame *Frame
		if r.SweepComplete {
			frame = &Frame{
				Sweep:   s.solver.Sweeps(),
				Tick:    s.solver.Ticks(),
				Time:    t,
				Clamped: r.Clamped,
				Temps:   s.solver.Field().Values(),
			}
			for _, m := range s.metrics {
				m.Observe(*frame)
			}
			s.logSweep(*frame)
		}
		s.notify(r, frame)

		if !callback(r, frame) {
			return nil
		}
	}
}

func (s *Simulator) notify(r heat.TickResult, frame *Frame) {
	for _, obs := range s.observers {
		obs.OnTick(r, frame)
	}
}

func (s *Simulator) finish(result *Result, t float64) {
	result.Final = s.solver.Snapshot(nil)
	result.Duration = t
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) logSweep(f Frame) {
	if !s.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	s.logger.Debug("sweep committed", "sweep", f.Sweep, "tick", f.Tick, "t", f.Time, "clamped", f.Clamped)
	if !s.logCells {
		return
	}
	g := s.solver.Grid()
	for i, temp := range f.Temps {
		x, y := g.Coord(i)
		s.logger.Debug("cell", "x", x, "y", y, "temp", temp)
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if cfg.RecordEvery < 0 {
		return fmt.Errorf("record_every must be non-negative, got %d", cfg.RecordEvery)
	}
	return nil
}
