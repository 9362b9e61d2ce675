package heat

import (
	"math"
	"testing"
)

func TestFluxEqualTemperatures(t *testing.T) {
	for _, temp := range []float32{0, 25, 50, 100, -273.15} {
		if f := Flux(temp, temp); f != 0 {
			t.Errorf("Flux(%v,%v) = %v, want 0", temp, temp, f)
		}
	}
}

func TestFluxAntisymmetric(t *testing.T) {
	pairs := [][2]float32{{0, 100}, {20, 80}, {99, 1}, {-10, 30}}
	for _, p := range pairs {
		a, b := Flux(p[0], p[1]), Flux(p[1], p[0])
		if a != -b {
			t.Errorf("Flux(%v,%v)=%v but Flux(%v,%v)=%v", p[0], p[1], a, p[1], p[0], b)
		}
	}
}

func TestFluxDirection(t *testing.T) {
	if f := Flux(100, 0); f <= 0 {
		t.Errorf("hot to cold flux = %v, want positive", f)
	}
	if f := Flux(0, 100); f >= 0 {
		t.Errorf("cold to hot flux = %v, want negative", f)
	}
}

func TestConductivityAt(t *testing.T) {
	tests := []struct {
		temp float32
		want float64
	}{
		{0, 0.6065},
		{50, 0.6065 - 0.061 + 0.01575},
		{100, 0.6065 - 0.122 + 0.063},
	}
	for _, tt := range tests {
		got := DefaultConductivity.At(tt.temp)
		if math.Abs(float64(got)-tt.want) > 1e-5 {
			t.Errorf("At(%v) = %v, want %v", tt.temp, got, tt.want)
		}
	}
}

func TestFluxValue(t *testing.T) {
	got := Flux(100, 0)
	want := (0.6065 - 0.061 + 0.01575) * 100.0
	if math.Abs(float64(got)-want) > 1e-3 {
		t.Errorf("Flux(100,0) = %v, want %v", got, want)
	}
}

func TestFluxHugeTemperatures(t *testing.T) {
	tests := []struct {
		t1, t2 float32
		sign   int
	}{
		{1e22, 1e22, 0},
		{3e38, 3e38, 0},
		{1e23, 0, 1},
		{0, 1e23, -1},
		{-1e30, 1e30, -1},
	}
	for _, tt := range tests {
		f := Flux(tt.t1, tt.t2)
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			t.Errorf("Flux(%v,%v) = %v, want finite", tt.t1, tt.t2, f)
			continue
		}
		switch {
		case tt.sign == 0 && f != 0:
			t.Errorf("Flux(%v,%v) = %v, want 0", tt.t1, tt.t2, f)
		case tt.sign > 0 && f <= 0:
			t.Errorf("Flux(%v,%v) = %v, want positive", tt.t1, tt.t2, f)
		case tt.sign < 0 && f >= 0:
			t.Errorf("Flux(%v,%v) = %v, want negative", tt.t1, tt.t2, f)
		}
	}
}

func TestIntegratorClampsNonNumbers(t *testing.T) {
	p := DefaultParams()
	p.Width, p.Height = 3, 1
	f := NewField(p.Grid())
	copy(f.Values(), []float32{50, 50, 50})
	flux := []float32{float32(math.NaN()), float32(math.Inf(1)), float32(math.Inf(-1))}

	clamped := NewIntegrator(p).Apply(f, flux, 1.0/64)
	if clamped != 3 {
		t.Errorf("clamped = %d, want 3", clamped)
	}
	want := []float32{p.MinHeat, p.MaxHeat, p.MinHeat}
	for i, v := range f.Values() {
		if v != want[i] {
			t.Errorf("cell %d = %v, want %v", i, v, want[i])
		}
	}
}
