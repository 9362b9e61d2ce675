package analysis

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/sim"
)

// RowProfile returns the temperatures of row y, or nil when y is outside g.
func RowProfile(temps []float32, g heat.Grid, y int) []float64 {
	if y < 0 || y >= g.H || len(temps) < g.Len() {
		return nil
	}
	out := make([]float64, g.W)
	for x := 0; x < g.W; x++ {
		out[x] = float64(temps[g.Index(x, y)])
	}
	return out
}

// ColumnProfile returns the temperatures of column x, or nil when x is
// outside g.
func ColumnProfile(temps []float32, g heat.Grid, x int) []float64 {
	if x < 0 || x >= g.W || len(temps) < g.Len() {
		return nil
	}
	out := make([]float64, g.H)
	for y := 0; y < g.H; y++ {
		out[y] = float64(temps[g.Index(x, y)])
	}
	return out
}

// MeanSeries returns the mean temperature of each frame.
func MeanSeries(frames []sim.Frame) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		if len(f.Temps) == 0 {
			continue
		}
		out[i] = floats.Sum(widen(f.Temps)) / float64(len(f.Temps))
	}
	return out
}

// SpreadSeries returns max minus min temperature of each frame.
func SpreadSeries(frames []sim.Frame) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = spread(f.Temps)
	}
	return out
}

// RelaxationSweep returns the sweep of the first frame whose spread is at
// most tol.
func RelaxationSweep(frames []sim.Frame, tol float64) (int, bool) {
	for _, f := range frames {
		if len(f.Temps) > 0 && spread(f.Temps) <= tol {
			return f.Sweep, true
		}
	}
	return 0, false
}

func spread(temps []float32) float64 {
	if len(temps) == 0 {
		return 0
	}
	w := widen(temps)
	return floats.Max(w) - floats.Min(w)
}

func widen(temps []float32) []float64 {
	out := make([]float64, len(temps))
	for i, v := range temps {
		out[i] = float64(v)
	}
	return out
}
