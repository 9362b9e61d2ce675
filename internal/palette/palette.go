// Package palette maps committed temperatures to colours and tiles to world
// positions for presentation layers.
package palette

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/crazy3lf/colorconv"
	"github.com/mazznoer/colorgrad"
)

const lutSize = 256

// Ratio maps t linearly from [minHeat, maxHeat] to [0, 1], clamping outside.
func Ratio(t, minHeat, maxHeat float32) float64 {
	if maxHeat <= minHeat {
		return 0
	}
	r := (float64(t) - float64(minHeat)) / (float64(maxHeat) - float64(minHeat))
	if !(r >= 0) {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// Palette maps a ratio in [0, 1] to a colour.
type Palette interface {
	Name() string
	Color(ratio float64) color.RGBA
}

// HotCold blends pure blue at 0 into pure red at 1.
type HotCold struct{}

func (HotCold) Name() string { return "hotcold" }

func (HotCold) Color(ratio float64) color.RGBA {
	r := clamp01(ratio)
	return color.RGBA{R: uint8(r*255 + 0.5), G: 0, B: uint8((1-r)*255 + 0.5), A: 255}
}

// Spectrum sweeps the HSV hue wheel from blue (cold) to red (hot).
type Spectrum struct {
	lut [lutSize]color.RGBA
}

func NewSpectrum() *Spectrum {
	s := &Spectrum{}
	for i := range s.lut {
		hue := 240 * (1 - float64(i)/(lutSize-1))
		r, g, b, err := colorconv.HSVToRGB(hue, 1, 1)
		if err != nil {
			continue
		}
		s.lut[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return s
}

func (s *Spectrum) Name() string { return "spectrum" }

func (s *Spectrum) Color(ratio float64) color.RGBA {
	return s.lut[lutIndex(ratio)]
}

// Gradient samples a colorgrad gradient through a lookup table.
type Gradient struct {
	name string
	lut  [lutSize]color.RGBA
}

// NewGradient samples g into a lookup table.
func NewGradient(name string, g colorgrad.Gradient) *Gradient {
	p := &Gradient{name: name}
	for i, c := range g.Colors(lutSize) {
		p.lut[i] = color.RGBAModel.Convert(c).(color.RGBA)
	}
	return p
}

// NewHTMLGradient builds a gradient through the given CSS colours.
func NewHTMLGradient(name string, stops ...string) (*Gradient, error) {
	g, err := colorgrad.NewGradient().HtmlColors(stops...).Build()
	if err != nil {
		return nil, fmt.Errorf("palette %s: %w", name, err)
	}
	return NewGradient(name, g), nil
}

func (p *Gradient) Name() string { return p.name }

func (p *Gradient) Color(ratio float64) color.RGBA {
	return p.lut[lutIndex(ratio)]
}

var registry = map[string]func() (Palette, error){
	"hotcold":  func() (Palette, error) { return HotCold{}, nil },
	"spectrum": func() (Palette, error) { return NewSpectrum(), nil },
	"inferno":  func() (Palette, error) { return NewGradient("inferno", colorgrad.Inferno()), nil },
	"viridis":  func() (Palette, error) { return NewGradient("viridis", colorgrad.Viridis()), nil },
	"turbo":    func() (Palette, error) { return NewGradient("turbo", colorgrad.Turbo()), nil },
	"thermal": func() (Palette, error) {
		return NewHTMLGradient("thermal", "#000080", "#0080ff", "#ffffff", "#ff8000", "#800000")
	},
}

// Get returns the named palette.
func Get(name string) (Palette, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette: %s (available: %v)", name, Names())
	}
	return fn()
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func lutIndex(ratio float64) int {
	return int(clamp01(ratio)*(lutSize-1) + 0.5)
}

func clamp01(v float64) float64 {
	if !(v >= 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
