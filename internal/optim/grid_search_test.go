package optim

import (
	"context"
	"testing"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/experiment"
)

func TestGridSearchMinimisesSpread(t *testing.T) {
	base := config.GetPreset("hot_edge")
	base.Run.Ticks = 40

	gs := NewGridSearch(
		[]string{"heat_transfer_speed", "tile_mass"},
		[][]float64{{0.0005, 0.001, 0.002}, {0.01, 0.02}},
	)
	params, val, err := gs.Search(context.Background(), ConfigBuilder(base, experiment.NewRegistry()), "spread")
	if err != nil {
		t.Fatal(err)
	}
	if params["heat_transfer_speed"] != 0.002 || params["tile_mass"] != 0.01 {
		t.Errorf("expected fastest, lightest combination, got %v", params)
	}
	if val <= 0 || val >= 100 {
		t.Errorf("spread = %v out of range", val)
	}
}

func TestGridSearchErrors(t *testing.T) {
	base := config.GetPreset("hot_edge")
	build := ConfigBuilder(base, experiment.NewRegistry())

	gs := NewGridSearch([]string{"a", "b"}, [][]float64{{1}})
	if _, _, err := gs.Search(context.Background(), build, "spread"); err == nil {
		t.Error("expected error for mismatched ranges")
	}

	gs = NewGridSearch([]string{"nonexistent"}, [][]float64{{1, 2}})
	if _, _, err := gs.Search(context.Background(), build, "spread"); err == nil {
		t.Error("expected error when every combination fails")
	}
}
