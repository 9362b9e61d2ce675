// Package gui draws a heat solver in a desktop window. The window itself
// needs the ebiten build tag; without it Run reports ErrUnavailable.
package gui

import (
	"errors"
	"image"

	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/palette"
)

// ErrUnavailable is returned by Run in builds without the ebiten tag.
var ErrUnavailable = errors.New("gui: built without the ebiten build tag; rebuild with -tags ebiten")

// Options configures the window.
type Options struct {
	Title   string
	Dt      float32
	Palette string
	Tile    palette.Tile
	// Overlay starts the window with each cell's temperature printed on it.
	Overlay bool
	// Margin is the padding in pixels around the grid.
	Margin int
}

// view is the toggleable display state of a window.
type view struct {
	pal     palette.Palette
	paused  bool
	overlay bool
}

func newView(o Options) (view, error) {
	pal, err := palette.Get(o.Palette)
	if err != nil {
		return view{}, err
	}
	return view{pal: pal, overlay: o.Overlay}, nil
}

func (v *view) cyclePalette() {
	names := palette.Names()
	for i, name := range names {
		if name == v.pal.Name() {
			if next, err := palette.Get(names[(i+1)%len(names)]); err == nil {
				v.pal = next
			}
			return
		}
	}
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "heatsim"
	}
	if o.Palette == "" {
		o.Palette = "hotcold"
	}
	if o.Dt <= 0 {
		o.Dt = 1.0 / 64
	}
	if o.Tile.CellSize <= 0 {
		o.Tile.CellSize = 32
	}
	if o.Margin < 0 {
		o.Margin = 0
	}
	return o
}

// ScreenSize returns the window size that fits the grid plus margins.
func ScreenSize(g heat.Grid, o Options) (int, int) {
	o = o.withDefaults()
	w := int(float64(g.W)*o.Tile.CellSize) + 2*o.Margin
	h := int(float64(g.H)*o.Tile.CellSize) + 2*o.Margin
	return w, h
}

// TileRect returns the screen rectangle of cell (x, y). The tile's world
// offset is measured from the top-left margin corner.
func TileRect(x, y int, o Options) image.Rectangle {
	px, py := o.Tile.Position(x, y)
	x0 := int(px) + o.Margin
	y0 := int(py) + o.Margin
	size := int(o.Tile.CellSize)
	return image.Rect(x0, y0, x0+size, y0+size)
}
