package experiment

import (
	"context"
	"testing"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/heat"
)

func TestRegistrySeeders(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"uniform", "noise", "constant", "hot_edge"} {
		cfg := config.DefaultConfig()
		cfg.Seed.Strategy = name
		if _, err := r.Build(cfg); err != nil {
			t.Errorf("build with %s: %v", name, err)
		}
	}

	cfg := config.DefaultConfig()
	cfg.Seed.Strategy = "nonexistent"
	if _, err := r.Build(cfg); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	r.Register("stripes", func(c config.SeedConfig) heat.Seeder {
		return heat.SeederFunc(func(f *heat.Field) {
			for x := 0; x < f.W; x += 2 {
				for y := 0; y < f.H; y++ {
					f.Set(x, y, c.High)
				}
			}
		})
	})
	cfg := config.DefaultConfig()
	cfg.Seed.Strategy = "stripes"
	s, err := r.Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if s.Field().At(0, 0) != 100 || s.Field().At(1, 0) != 0 {
		t.Error("custom seeder not applied")
	}
}

func TestExperimentRun(t *testing.T) {
	cfg := config.GetPreset("hot_edge")
	cfg.Run.Ticks = 40

	r := NewRegistry()
	exp := New(cfg)
	if _, err := exp.Run(context.Background()); err == nil {
		t.Error("expected error before setup")
	}
	if err := exp.Setup(r, r.DefaultMetrics()); err != nil {
		t.Fatal(err)
	}
	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.Sweeps != 10 {
		t.Errorf("expected 10 sweeps, got %d", result.Sweeps)
	}
	if result.Metrics["spread"] >= 100 {
		t.Errorf("field did not relax: spread %v", result.Metrics["spread"])
	}
	if result.Metrics["clamped"] != 0 {
		t.Errorf("unexpected clamping: %v", result.Metrics["clamped"])
	}
}

func TestFactorySeeds(t *testing.T) {
	r := NewRegistry()
	f := r.Factory(config.DefaultConfig())
	a, err := f(1)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := f(2)
	if a.Field().At(0, 0) == b.Field().At(0, 0) && a.Field().At(1, 0) == b.Field().At(1, 0) {
		t.Error("factory ignored seed")
	}
}
