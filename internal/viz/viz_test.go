package viz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/palette"
	"github.com/san-kum/heatsim/internal/seed"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	p := heat.DefaultParams()
	p.Width, p.Height, p.ChunkSize = 4, 4, 2
	seeder := seed.HotEdge(0, 100)
	s, err := heat.New(p, seeder)
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(s, seeder, Options{Name: "test", Palette: "hotcold"})
}

func press(m Model, key string) Model {
	var msg tea.KeyMsg
	if key == " " {
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	} else {
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelKeys(t *testing.T) {
	m := newTestModel(t)
	if !m.running {
		t.Fatal("model should start running")
	}

	m = press(m, " ")
	if m.running {
		t.Error("space should pause")
	}

	m = press(m, ".")
	if m.solver.Ticks() != 1 || m.solver.Sweeps() != 0 {
		t.Errorf("single tick: ticks=%d sweeps=%d", m.solver.Ticks(), m.solver.Sweeps())
	}

	m = press(m, "w")
	if m.solver.Sweeps() != 1 {
		t.Errorf("full sweep: sweeps=%d", m.solver.Sweeps())
	}
	if len(m.history) != 2 {
		t.Errorf("expected initial and one committed snapshot, got %d", len(m.history))
	}

	m = press(m, "n")
	if !m.overlay {
		t.Error("n should enable overlay")
	}

	before := m.pal.Name()
	m = press(m, "p")
	if m.pal.Name() == before {
		t.Error("p should change palette")
	}

	m = press(m, "r")
	if m.solver.Ticks() != 0 || len(m.history) != 1 {
		t.Errorf("reseed: ticks=%d history=%d", m.solver.Ticks(), len(m.history))
	}
	if m.solver.Field().At(0, 3) != 100 {
		t.Error("reseed did not restore the hot edge")
	}
}

func TestModelTickMsgAdvances(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 4; i++ {
		next, _ := m.Update(TickMsg{})
		m = next.(Model)
	}
	if m.solver.Sweeps() != 1 {
		t.Errorf("4 frames over 4 chunks should commit one sweep, got %d", m.solver.Sweeps())
	}
}

func TestModelScrub(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "w")
	m = press(m, "w")

	m = press(m, "[")
	if m.playHead != len(m.history)-2 || m.running {
		t.Errorf("scrub back: playHead=%d running=%v", m.playHead, m.running)
	}
	if m.displayed().Sweep != 1 {
		t.Errorf("displayed sweep = %d, want 1", m.displayed().Sweep)
	}
	m = press(m, "]")
	m = press(m, "]")
	if m.playHead != -1 {
		t.Errorf("scrubbing past the end should return to live, got %d", m.playHead)
	}
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "w")
	if v := m.View(); !strings.Contains(v, "TEST") || !strings.Contains(v, "Sweep") {
		t.Errorf("view missing header or stats:\n%s", v)
	}
	m = press(m, "n")
	if v := m.View(); !strings.Contains(v, "100") {
		t.Error("overlay should print temperatures")
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	g := heat.Grid{W: 3, H: 3}
	out := RenderHalfBlocks(make([]float32, 9), g, palette.HotCold{}, 0, 100)
	if lines := strings.Count(out, "\n") + 1; lines != 2 {
		t.Errorf("3 rows should need 2 lines, got %d", lines)
	}
	if RenderHalfBlocks(nil, g, palette.HotCold{}, 0, 100) != "" {
		t.Error("expected empty output for short field")
	}
}

func TestRecorder(t *testing.T) {
	g := heat.Grid{W: 2, H: 2}
	r := NewRecorder(g, palette.HotCold{}, 0, 100, 2)
	if err := r.Save(filepath.Join(t.TempDir(), "empty.gif")); err == nil {
		t.Error("expected error saving without frames")
	}

	r.Capture([]float32{0, 100, 50, 25})
	r.Capture([]float32{10, 90, 50, 25})
	if r.Len() != 2 {
		t.Fatalf("expected 2 frames, got %d", r.Len())
	}
	if idx := r.frames[0].ColorIndexAt(2, 0); idx != 255 {
		t.Errorf("hot cell index = %d, want 255", idx)
	}

	path := filepath.Join(t.TempDir(), "run.gif")
	if err := r.Save(path); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("gif not written: %v", err)
	}
}

func TestSparklineAndProgress(t *testing.T) {
	if s := Sparkline([]float64{1, 2, 3}, 10); !strings.Contains(s, "▁") || !strings.Contains(s, "█") {
		t.Errorf("sparkline = %q", s)
	}
	if s := ProgressBar(0.5, 10); strings.Count(s, "█") != 5 {
		t.Errorf("progress = %q", s)
	}
}
