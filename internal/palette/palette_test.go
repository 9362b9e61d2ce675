package palette

import (
	"image/color"
	"math"
	"testing"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		temp, lo, hi float32
		want         float64
	}{
		{0, 0, 100, 0},
		{50, 0, 100, 0.5},
		{100, 0, 100, 1},
		{-20, 0, 100, 0},
		{150, 0, 100, 1},
		{0, -100, 100, 0.5},
		{5, 10, 10, 0},
		{float32(math.NaN()), 0, 100, 0},
		{0, float32(math.Inf(-1)), 100, 0},
	}
	for _, tt := range tests {
		if got := Ratio(tt.temp, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Ratio(%v,%v,%v) = %v, want %v", tt.temp, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestHotCold(t *testing.T) {
	p := HotCold{}
	if c := p.Color(0); c != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("cold = %v", c)
	}
	if c := p.Color(1); c != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("hot = %v", c)
	}
}

func TestSpectrumEnds(t *testing.T) {
	p := NewSpectrum()
	cold, hot := p.Color(0), p.Color(1)
	if cold.B != 255 || cold.R != 0 {
		t.Errorf("cold end = %v, want blue", cold)
	}
	if hot.R != 255 || hot.B != 0 {
		t.Errorf("hot end = %v, want red", hot)
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range Names() {
		p, err := Get(name)
		if err != nil {
			t.Fatalf("Get(%s): %v", name, err)
		}
		if p.Name() != name {
			t.Errorf("palette %s reports name %s", name, p.Name())
		}
		if c := p.Color(0.5); c.A != 255 {
			t.Errorf("palette %s returned transparent colour", name)
		}
	}
	if _, err := Get("nonexistent"); err == nil {
		t.Error("expected error for unknown palette")
	}
}

func TestHTMLGradient(t *testing.T) {
	p, err := NewHTMLGradient("bw", "#000000", "#ffffff")
	if err != nil {
		t.Fatal(err)
	}
	if c := p.Color(0); c.R != 0 {
		t.Errorf("start = %v", c)
	}
	if c := p.Color(1); c.R != 255 {
		t.Errorf("end = %v", c)
	}
	if _, err := NewHTMLGradient("bad", "not-a-colour", "#fff"); err == nil {
		t.Error("expected error for invalid colour")
	}
}

func TestHex(t *testing.T) {
	if got := Hex(color.RGBA{255, 128, 0, 255}); got != "#ff8000" {
		t.Errorf("Hex = %s", got)
	}
}

func TestTilePosition(t *testing.T) {
	tile := Tile{OffsetX: 10, OffsetY: -5, CellSize: 32}
	if x, y := tile.Position(2, 3); x != 74 || y != 91 {
		t.Errorf("Position(2,3) = (%v,%v)", x, y)
	}
	c := Centered(3, 3, 10)
	if x, y := c.Position(1, 1); x != 0 || y != 0 {
		t.Errorf("centre cell at (%v,%v)", x, y)
	}
}
