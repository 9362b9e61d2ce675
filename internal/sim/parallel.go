package sim

import (
	"context"
	"sync"

	"github.com/san-kum/heatsim/internal/heat"
)

// Factory builds an independent solver for the given seed.
type Factory func(seed int64) (*heat.Solver, error)

// Ensemble runs independent solvers concurrently, one per seed. Solvers share
// no state, so each goroutine owns its own field and accumulator.
type Ensemble struct {
	factory   Factory
	metrics   func() []Metric
	numRuns   int
	seedStart int64
}

// NewEnsemble runs numRuns solvers seeded seedStart, seedStart+1, ...
// metrics, if non-nil, is called once per run so metric state is not shared.
func NewEnsemble(factory Factory, metrics func() []Metric, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{factory: factory, metrics: metrics, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			solver, err := e.factory(e.seedStart + int64(idx))
			if err != nil {
				errs[idx] = err
				return
			}
			s := New(solver)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}
			results[idx], errs[idx] = s.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Comparison is the per-sweep divergence between a primary solver and its
// shadow.
type Comparison struct {
	Sweeps       int
	MaxDiff      float64
	MeanDiff     float64
	PrimaryTicks int
	ShadowTicks  int
	Divergence   []float64
}

// Compare advances primary and shadow by the same number of sweeps and records
// the largest absolute temperature difference after each one.
func Compare(primary, shadow *heat.Solver, dt float32, sweeps int) Comparison {
	c := Comparison{Sweeps: sweeps, Divergence: make([]float64, 0, sweeps)}
	for i := 0; i < sweeps; i++ {
		primary.Sweep(dt)
		shadow.Sweep(dt)

		a, b := primary.Field().Values(), shadow.Field().Values()
		worst, total := 0.0, 0.0
		for j := range a {
			d := float64(a[j] - b[j])
			if d < 0 {
				d = -d
			}
			total += d
			if d > worst {
				worst = d
			}
		}
		c.Divergence = append(c.Divergence, worst)
		if worst > c.MaxDiff {
			c.MaxDiff = worst
		}
		if len(a) > 0 {
			c.MeanDiff = total / float64(len(a))
		}
	}
	c.PrimaryTicks, c.ShadowTicks = primary.Ticks(), shadow.Ticks()
	return c
}
