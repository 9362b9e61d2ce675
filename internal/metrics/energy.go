package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/heatsim/internal/sim"
)

// widen converts temps into buf, reusing its storage.
func widen(buf []float64, temps []float32) []float64 {
	if cap(buf) < len(temps) {
		buf = make([]float64, len(temps))
	}
	buf = buf[:len(temps)]
	for i, t := range temps {
		buf[i] = float64(t)
	}
	return buf
}

// TotalHeat reports the sum of cell temperatures in the latest frame. With
// uniform tile mass and heat capacity this is proportional to stored energy.
type TotalHeat struct {
	buf   []float64
	total float64
}

func NewTotalHeat() *TotalHeat { return &TotalHeat{} }

func (m *TotalHeat) Name() string { return "total_heat" }

func (m *TotalHeat) Observe(f sim.Frame) {
	m.buf = widen(m.buf, f.Temps)
	m.total = floats.Sum(m.buf)
}

func (m *TotalHeat) Value() float64 { return m.total }
func (m *TotalHeat) Reset()         { m.total = 0 }

// HeatDrift is the largest relative deviation of total heat from the first
// observed frame. Interior exchange is conservative and the boundary is
// insulated, so drift comes only from clamping and rounding.
type HeatDrift struct {
	buf      []float64
	initial  float64
	maxDrift float64
	samples  int
}

func NewHeatDrift() *HeatDrift { return &HeatDrift{} }

func (m *HeatDrift) Name() string { return "heat_drift" }

func (m *HeatDrift) Observe(f sim.Frame) {
	m.buf = widen(m.buf, f.Temps)
	total := floats.Sum(m.buf)
	if m.samples == 0 {
		m.initial = total
	}
	m.samples++
	if m.initial != 0 {
		m.maxDrift = math.Max(m.maxDrift, math.Abs(total-m.initial)/math.Abs(m.initial))
	}
}

func (m *HeatDrift) Value() float64 { return m.maxDrift }

func (m *HeatDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}
