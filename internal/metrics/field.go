package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/heatsim/internal/sim"
)

// MeanTemperature reports the mean temperature of the latest frame.
type MeanTemperature struct {
	buf  []float64
	mean float64
}

func NewMeanTemperature() *MeanTemperature { return &MeanTemperature{} }

func (m *MeanTemperature) Name() string { return "mean_temperature" }

func (m *MeanTemperature) Observe(f sim.Frame) {
	if len(f.Temps) == 0 {
		return
	}
	m.buf = widen(m.buf, f.Temps)
	m.mean = floats.Sum(m.buf) / float64(len(m.buf))
}

func (m *MeanTemperature) Value() float64 { return m.mean }
func (m *MeanTemperature) Reset()         { m.mean = 0 }

// Spread reports max minus min temperature of the latest frame. It decays
// toward zero as the field relaxes.
type Spread struct {
	buf    []float64
	spread float64
}

func NewSpread() *Spread { return &Spread{} }

func (m *Spread) Name() string { return "spread" }

func (m *Spread) Observe(f sim.Frame) {
	if len(f.Temps) == 0 {
		return
	}
	m.buf = widen(m.buf, f.Temps)
	m.spread = floats.Max(m.buf) - floats.Min(m.buf)
}

func (m *Spread) Value() float64 { return m.spread }
func (m *Spread) Reset()         { m.spread = 0 }

// ClampCount totals the cells clamped by integration across all sweeps.
type ClampCount struct {
	count int
}

func NewClampCount() *ClampCount { return &ClampCount{} }

func (m *ClampCount) Name() string        { return "clamped" }
func (m *ClampCount) Observe(f sim.Frame) { m.count += f.Clamped }
func (m *ClampCount) Value() float64      { return float64(m.count) }
func (m *ClampCount) Reset()              { m.count = 0 }

// Default returns a fresh set of every field metric.
func Default() []sim.Metric {
	return []sim.Metric{
		NewTotalHeat(),
		NewHeatDrift(),
		NewMeanTemperature(),
		NewSpread(),
		NewClampCount(),
	}
}
