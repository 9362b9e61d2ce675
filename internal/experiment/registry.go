package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/metrics"
	"github.com/san-kum/heatsim/internal/seed"
	"github.com/san-kum/heatsim/internal/sim"
)

// SeedFactory builds a seeder from the seed section of a config.
type SeedFactory func(c config.SeedConfig) heat.Seeder

type Registry struct {
	seeders map[string]SeedFactory
}

func NewRegistry() *Registry {
	r := &Registry{seeders: make(map[string]SeedFactory)}

	r.seeders["uniform"] = func(c config.SeedConfig) heat.Seeder {
		return seed.Uniform(c.Seed, c.Low, c.High)
	}
	r.seeders["noise"] = func(c config.SeedConfig) heat.Seeder {
		return seed.Noise(c.Seed, c.Scale, c.Octaves, c.Low, c.High)
	}
	r.seeders["constant"] = func(c config.SeedConfig) heat.Seeder {
		return seed.Constant(c.Value)
	}
	r.seeders["hot_edge"] = func(c config.SeedConfig) heat.Seeder {
		return seed.HotEdge(c.Low, c.High)
	}

	return r
}

// Register adds or replaces a seed strategy.
func (r *Registry) Register(name string, f SeedFactory) {
	if name == "" || f == nil {
		return
	}
	r.seeders[name] = f
}

func (r *Registry) GetSeeder(c config.SeedConfig) (heat.Seeder, error) {
	fn, ok := r.seeders[c.Strategy]
	if !ok {
		return nil, fmt.Errorf("unknown seed strategy: %s (available: %v)", c.Strategy, r.ListSeeders())
	}
	return fn(c), nil
}

func (r *Registry) ListSeeders() []string {
	names := make([]string, 0, len(r.seeders))
	for name := range r.seeders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build validates cfg and returns a seeded solver.
func (r *Registry) Build(cfg *config.Config) (*heat.Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seeder, err := r.GetSeeder(cfg.Seed)
	if err != nil {
		return nil, err
	}
	return heat.New(cfg.Params(), seeder)
}

// Factory returns a sim.Factory that builds cfg with the given seed.
func (r *Registry) Factory(cfg *config.Config) sim.Factory {
	return func(s int64) (*heat.Solver, error) {
		c := cfg.Clone()
		c.Seed.Seed = s
		return r.Build(c)
	}
}

func (r *Registry) DefaultMetrics() []sim.Metric {
	return metrics.Default()
}
