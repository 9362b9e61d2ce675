package viz

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/palette"
)

func cellColor(p palette.Palette, t, minHeat, maxHeat float32) lipgloss.Color {
	return lipgloss.Color(palette.Hex(p.Color(palette.Ratio(t, minHeat, maxHeat))))
}

// RenderHalfBlocks draws two grid rows per terminal line using the upper
// half block, foreground for the upper cell and background for the lower.
func RenderHalfBlocks(temps []float32, g heat.Grid, p palette.Palette, minHeat, maxHeat float32) string {
	if len(temps) < g.Len() {
		return ""
	}
	var sb strings.Builder
	for y := 0; y < g.H; y += 2 {
		for x := 0; x < g.W; x++ {
			style := lipgloss.NewStyle().Foreground(cellColor(p, temps[g.Index(x, y)], minHeat, maxHeat))
			if y+1 < g.H {
				style = style.Background(cellColor(p, temps[g.Index(x, y+1)], minHeat, maxHeat))
			}
			sb.WriteString(style.Render("▀"))
		}
		if y+2 < g.H {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// RenderOverlay draws one grid row per line with each temperature printed on
// its cell colour.
func RenderOverlay(temps []float32, g heat.Grid, p palette.Palette, minHeat, maxHeat float32) string {
	if len(temps) < g.Len() {
		return ""
	}
	var sb strings.Builder
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			t := temps[g.Index(x, y)]
			c := p.Color(palette.Ratio(t, minHeat, maxHeat))
			style := lipgloss.NewStyle().
				Background(lipgloss.Color(palette.Hex(c))).
				Foreground(contrast(c))
			sb.WriteString(style.Render(fmt.Sprintf("%4.0f", t)))
		}
		if y+1 < g.H {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// contrast picks black or white text for legibility on c.
func contrast(c color.RGBA) lipgloss.Color {
	luma := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	if luma > 140 {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#ffffff")
}
