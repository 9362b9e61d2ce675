//go:build ebiten

package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/palette"
)

var colBg = color.RGBA{10, 10, 10, 255}

// Game advances the solver one tick per frame and draws the committed field.
type Game struct {
	view
	solver *heat.Solver
	seeder heat.Seeder
	opts   Options
	pixel  *ebiten.Image
	width  int
	height int
}

func NewGame(solver *heat.Solver, seeder heat.Seeder, opts Options) (*Game, error) {
	opts = opts.withDefaults()
	v, err := newView(opts)
	if err != nil {
		return nil, err
	}
	g := &Game{view: v, solver: solver, seeder: seeder, opts: opts}
	g.pixel = ebiten.NewImage(1, 1)
	g.pixel.Fill(color.White)
	g.width, g.height = ScreenSize(solver.Grid(), opts)
	return g, nil
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyPeriod):
		g.solver.Tick(g.opts.Dt)
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		g.solver.Sweep(g.opts.Dt)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.solver.Reseed(g.seeder)
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.overlay = !g.overlay
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.cyclePalette()
	}
	if !g.paused {
		g.solver.Tick(g.opts.Dt)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBg)

	p := g.solver.Params()
	grid := g.solver.Grid()
	field := g.solver.Field()
	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			t := field.At(x, y)
			r := TileRect(x, y, g.opts)

			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
			op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
			op.ColorScale.ScaleWithColor(g.pal.Color(palette.Ratio(t, p.MinHeat, p.MaxHeat)))
			screen.DrawImage(g.pixel, op)

			if g.overlay && r.Dx() >= 24 {
				ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.0f", t), r.Min.X+2, r.Min.Y+2)
			}
		}
	}

	c := g.solver.Cursor()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("sweep %d  tick %d  cursor (%d,%d)  %s",
		g.solver.Sweeps(), g.solver.Ticks(), c.CX, c.CY, g.pal.Name()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run opens a window and blocks until it is closed.
func Run(solver *heat.Solver, seeder heat.Seeder, opts Options) error {
	game, err := NewGame(solver, seeder, opts)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(game.width, game.height)
	ebiten.SetWindowTitle(game.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(game)
}
