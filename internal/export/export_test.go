package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/palette"
	"github.com/san-kum/heatsim/internal/sim"
	"github.com/san-kum/heatsim/internal/storage"
)

func TestHeatmapSVG(t *testing.T) {
	g := heat.Grid{W: 2, H: 2}
	svg := HeatmapSVG([]float32{0, 100, 50, 100}, g, palette.HotCold{}, 0, 100, 10)

	if !strings.HasPrefix(svg, "<?xml") {
		t.Fatal("missing xml header")
	}
	if n := strings.Count(svg, "<rect x="); n != 4 {
		t.Errorf("expected 4 cell rects, got %d", n)
	}
	if !strings.Contains(svg, `fill="#0000ff"`) {
		t.Error("cold cell not blue")
	}
	if !strings.Contains(svg, `x="10.0" y="10.0"`) {
		t.Error("cell (1,1) not placed at (10,10)")
	}
}

func TestHeatmapSVGShortField(t *testing.T) {
	if svg := HeatmapSVG([]float32{1}, heat.Grid{W: 2, H: 2}, palette.HotCold{}, 0, 100, 10); svg != "" {
		t.Error("expected empty output for short field")
	}
}

func TestSeriesSVG(t *testing.T) {
	if SeriesSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for single point")
	}
	svg := SeriesSVG([]float64{1, 2, 3}, 100, 50, "#ff0000")
	if !strings.Contains(svg, `stroke="#ff0000"`) || strings.Count(svg, " L") != 2 {
		t.Errorf("unexpected path: %s", svg)
	}
}

func TestWriteJSON(t *testing.T) {
	meta := &storage.RunMetadata{ID: "run_1", Width: 2, Height: 1, Sweeps: 1}
	frames := []sim.Frame{{Sweep: 1, Tick: 2, Temps: []float32{10, 90}}}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, meta, frames); err != nil {
		t.Fatal(err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != "run_1" || len(got.Frames) != 1 || got.Frames[0].Temps[1] != 90 {
		t.Errorf("unexpected export: %+v", got)
	}
}
