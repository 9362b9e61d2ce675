package sim

import (
	"fmt"

	"github.com/san-kum/heatsim/internal/heat"
)

// Frame is the committed temperature field after a completed sweep.
type Frame struct {
	Sweep   int
	Tick    int
	Time    float64
	Clamped int
	Temps   []float32
}

// Metric observes every committed frame. Frame.Temps may alias the live
// field and must be copied if retained.
type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// Observer is notified after every tick; sweep is non-nil on ticks that
// committed a sweep.
type Observer interface {
	OnTick(r heat.TickResult, sweep *Frame)
}

// Config drives a fixed-step run.
type Config struct {
	// Dt is the fixed tick delta in seconds.
	Dt float64
	// Ticks is the number of ticks to run.
	Ticks int
	// RecordEvery keeps every Nth committed frame; zero keeps none, one keeps all.
	RecordEvery int
}

func DefaultConfig() Config {
	return Config{
		Dt:          1.0 / 64,
		Ticks:       1600,
		RecordEvery: 1,
	}
}

// Result summarises a run.
type Result struct {
	Initial  []float32
	Final    []float32
	Frames   []Frame
	Metrics  map[string]float64
	Ticks    int
	Sweeps   int
	Clamped  int
	Duration float64
}

// RunError reports the tick at which a run stopped early.
type RunError struct {
	Tick    int
	Time    float64
	Wrapped error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f): %v", e.Tick, e.Time, e.Wrapped)
}

func (e *RunError) Unwrap() error { return e.Wrapped }
