// Package tui prints committed sweeps as ASCII shading for terminals that
// cannot host the full-screen view.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/palette"
	"github.com/san-kum/heatsim/internal/sim"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// ramp runs from cold to hot
const ramp = " .:-=+*#%@"

// Watcher is a sim.Observer that redraws the field after committed sweeps,
// at most frameRate times per second.
type Watcher struct {
	out              io.Writer
	grid             heat.Grid
	minHeat, maxHeat float32
	frameRate        int
	ansi             bool
	lastFrame        time.Time
	buf              strings.Builder
}

// NewWatcher writes to out. With ansi set, each frame clears the screen
// first; otherwise frames are appended.
func NewWatcher(out io.Writer, p heat.Params, frameRate int, ansi bool) *Watcher {
	if frameRate <= 0 {
		frameRate = 10
	}
	return &Watcher{
		out:       out,
		grid:      p.Grid(),
		minHeat:   p.MinHeat,
		maxHeat:   p.MaxHeat,
		frameRate: frameRate,
		ansi:      ansi,
	}
}

func (w *Watcher) OnTick(r heat.TickResult, f *sim.Frame) {
	if f == nil {
		return
	}
	now := time.Now()
	if now.Sub(w.lastFrame) < time.Second/time.Duration(w.frameRate) {
		return
	}
	w.lastFrame = now
	w.Render(*f)
}

// Render draws f unconditionally.
func (w *Watcher) Render(f sim.Frame) {
	w.buf.Reset()
	if w.ansi {
		w.buf.WriteString(clearScreen + hideCursor)
	}
	fmt.Fprintf(&w.buf, "sweep %d  tick %d  t=%.3fs  clamped %d\n", f.Sweep, f.Tick, f.Time, f.Clamped)
	w.buf.WriteString(Shade(f.Temps, w.grid, w.minHeat, w.maxHeat))
	w.buf.WriteByte('\n')
	io.WriteString(w.out, w.buf.String())
}

// Close restores the cursor.
func (w *Watcher) Close() {
	if w.ansi {
		io.WriteString(w.out, showCursor)
	}
}

// Shade maps each cell to a character of the ramp, two characters per cell
// so the grid keeps roughly square proportions.
func Shade(temps []float32, g heat.Grid, minHeat, maxHeat float32) string {
	if len(temps) < g.Len() {
		return ""
	}
	var sb strings.Builder
	last := len(ramp) - 1
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			r := palette.Ratio(temps[g.Index(x, y)], minHeat, maxHeat)
			c := ramp[int(r*float64(last)+0.5)]
			sb.WriteByte(c)
			sb.WriteByte(c)
		}
		if y+1 < g.H {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
