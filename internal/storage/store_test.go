package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Frames: []sim.Frame{
			{Sweep: 1, Tick: 4, Time: 0.0625, Temps: []float32{10, 20, 30, 40}},
			{Sweep: 2, Tick: 8, Time: 0.125, Clamped: 1, Temps: []float32{11, 20, 30, 39}},
		},
		Metrics: map[string]float64{"total_heat": 100},
		Ticks:   8,
		Sweeps:  2,
		Clamped: 1,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Name = "test"
	cfg.Grid = config.GridConfig{Width: 2, Height: 2, ChunkSize: 1}
	cfg.Seed.Seed = 42

	runID, err := st.Save(cfg, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Preset != "test" {
		t.Errorf("expected preset 'test', got '%s'", meta.Preset)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Sweeps != 2 || meta.Ticks != 8 {
		t.Errorf("expected 2 sweeps over 8 ticks, got %d over %d", meta.Sweeps, meta.Ticks)
	}
	if meta.Metrics["total_heat"] != 100 {
		t.Errorf("expected total_heat 100, got %f", meta.Metrics["total_heat"])
	}
	if meta.Config == nil || meta.Config.Grid.Width != 2 {
		t.Errorf("expected embedded config, got %+v", meta.Config)
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[1].Sweep != 2 || frames[1].Clamped != 1 {
		t.Errorf("frame header mismatch: %+v", frames[1])
	}
	if frames[1].Temps[3] != 39 {
		t.Errorf("expected c3=39, got %v", frames[1].Temps[3])
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on empty store: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	cfg := config.DefaultConfig()
	cfg.Grid = config.GridConfig{Width: 2, Height: 2, ChunkSize: 1}
	for i := 0; i < 2; i++ {
		if _, err := st.Save(cfg, testResult()); err != nil {
			t.Fatal(err)
		}
	}
	// stray directories without metadata are skipped
	if err := os.Mkdir(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestReadFramesRejectsBadRows(t *testing.T) {
	in := "sweep,tick,time,clamped,c0\n1,4,0.1,0,abc\n"
	if _, err := ReadFrames(bytes.NewBufferString(in)); err == nil {
		t.Error("expected parse error")
	}
}

func TestFramesRoundTripEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrames(&buf, 3, nil); err != nil {
		t.Fatal(err)
	}
	frames, err := ReadFrames(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 0 {
		t.Errorf("expected no frames, got %d", len(frames))
	}
}
