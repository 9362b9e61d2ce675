package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/sim"
)

type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup builds the solver and attaches metrics.
func (e *Experiment) Setup(r *Registry, metrics []sim.Metric) error {
	solver, err := r.Build(e.cfg)
	if err != nil {
		return err
	}
	e.simulator = sim.New(solver)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

// SetLogger forwards to the simulator. Call after Setup.
func (e *Experiment) SetLogger(l *slog.Logger, logCells bool) {
	if e.simulator != nil {
		e.simulator.SetLogger(l, logCells)
	}
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.cfg.SimConfig())
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
