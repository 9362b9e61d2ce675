package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"

	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/palette"
)

const gifLevels = 256

// Recorder collects committed fields as GIF frames.
type Recorder struct {
	grid             heat.Grid
	colors           color.Palette
	minHeat, maxHeat float32
	scale            int
	frames           []*image.Paletted
}

// NewRecorder samples p into a 256-entry GIF palette. Each cell becomes a
// scale x scale block of pixels.
func NewRecorder(g heat.Grid, p palette.Palette, minHeat, maxHeat float32, scale int) *Recorder {
	if scale < 1 {
		scale = 1
	}
	colors := make(color.Palette, gifLevels)
	for i := range colors {
		colors[i] = p.Color(float64(i) / (gifLevels - 1))
	}
	return &Recorder{grid: g, colors: colors, minHeat: minHeat, maxHeat: maxHeat, scale: scale}
}

// Capture appends a frame for temps.
func (r *Recorder) Capture(temps []float32) {
	if len(temps) < r.grid.Len() {
		return
	}
	img := image.NewPaletted(image.Rect(0, 0, r.grid.W*r.scale, r.grid.H*r.scale), r.colors)
	for i := 0; i < r.grid.Len(); i++ {
		x, y := r.grid.Coord(i)
		idx := uint8(palette.Ratio(temps[i], r.minHeat, r.maxHeat)*(gifLevels-1) + 0.5)
		for py := 0; py < r.scale; py++ {
			for px := 0; px < r.scale; px++ {
				img.SetColorIndex(x*r.scale+px, y*r.scale+py, idx)
			}
		}
	}
	r.frames = append(r.frames, img)
}

func (r *Recorder) Len() int { return len(r.frames) }

// Save writes the captured frames as a looping GIF.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return fmt.Errorf("no frames recorded")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
