package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/palette"
)

// HeatmapSVG renders a row-major temperature field as one rect per cell.
func HeatmapSVG(temps []float32, g heat.Grid, p palette.Palette, minHeat, maxHeat float32, cellSize float64) string {
	if len(temps) < g.Len() || g.Len() == 0 {
		return ""
	}

	width := float64(g.W) * cellSize
	height := float64(g.H) * cellSize

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	tile := palette.Tile{CellSize: cellSize}
	for i := 0; i < g.Len(); i++ {
		x, y := g.Coord(i)
		px, py := tile.Position(x, y)
		c := p.Color(palette.Ratio(temps[i], minHeat, maxHeat))
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"><title>(%d,%d) %.2f</title></rect>
`, px, py, cellSize, cellSize, palette.Hex(c), x, y, temps[i]))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesSVG draws a polyline of values against their index.
func SeriesSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(values) - 1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
