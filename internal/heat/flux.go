package heat

import "math"

// Conductivity is a quadratic fit of thermal conductivity against
// temperature: k(t) = A0 + A1*t + A2*t^2.
type Conductivity struct {
	A0 float32 `yaml:"a0" json:"a0"`
	A1 float32 `yaml:"a1" json:"a1"`
	A2 float32 `yaml:"a2" json:"a2"`
}

// DefaultConductivity approximates a real conductivity curve over 0-100.
var DefaultConductivity = Conductivity{A0: 0.6065, A1: -0.00122, A2: 0.0000063}

// At evaluates the conductivity at temperature t, saturating at the float32 range.
func (c Conductivity) At(t float32) float32 {
	return saturate(c.at(float64(t)))
}

func (c Conductivity) at(t float64) float64 {
	return float64(c.A0) + float64(c.A1)*t + float64(c.A2)*t*t
}

// Flux returns the heat flowing from a cell at t1 into a neighbour at t2.
// The result is positive when t1 > t2 and exactly zero when t1 == t2.
// It is evaluated in float64 and saturates instead of overflowing, so it is
// finite for all finite inputs.
func (c Conductivity) Flux(t1, t2 float32) float32 {
	if t1 == t2 {
		return 0
	}
	a, b := float64(t1), float64(t2)
	return saturate(c.at((a+b)/2) * (a - b))
}

func saturate(v float64) float32 {
	switch {
	case v > math.MaxFloat32:
		return math.MaxFloat32
	case v < -math.MaxFloat32:
		return -math.MaxFloat32
	}
	return float32(v)
}

// Flux evaluates [Conductivity.Flux] with [DefaultConductivity].
func Flux(t1, t2 float32) float32 {
	return DefaultConductivity.Flux(t1, t2)
}
