package automation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/experiment"
	"github.com/san-kum/heatsim/internal/sim"
	"github.com/san-kum/heatsim/internal/storage"
)

// Scenario defines a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. The step starts from Preset (or the defaults),
// then applies Overrides by parameter name.
type ScenarioStep struct {
	Preset    string             `yaml:"preset"`
	Strategy  string             `yaml:"strategy"`
	StepMode  string             `yaml:"step_mode"`
	Overrides map[string]float64 `yaml:"overrides"`
	SaveAs    string             `yaml:"save_as"`
}

// StepResult pairs a step's effective config with its result.
type StepResult struct {
	Name   string
	RunID  string
	Config *config.Config
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	return &scenario, nil
}

// Config returns the effective configuration of the step.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", s.Preset, config.ListPresets())
		}
	}
	if s.Strategy != "" {
		cfg.Seed.Strategy = s.Strategy
	}
	if s.StepMode != "" {
		cfg.StepMode = s.StepMode
	}
	for name, v := range s.Overrides {
		if err := cfg.SetParam(name, v); err != nil {
			return nil, err
		}
	}
	if s.SaveAs != "" {
		cfg.Name = s.SaveAs
	}
	return cfg, nil
}

// Runner executes scenarios and sweeps. Store may be nil, in which case
// save_as is ignored.
type Runner struct {
	Registry *experiment.Registry
	Store    *storage.Store
	Logger   *slog.Logger

	pools map[int]*sim.FramePool
}

func NewRunner(r *experiment.Registry, st *storage.Store, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{Registry: r, Store: st, Logger: logger}
}

func (r *Runner) run(ctx context.Context, cfg *config.Config) (*sim.Result, error) {
	exp := experiment.New(cfg)
	if err := exp.Setup(r.Registry, r.Registry.DefaultMetrics()); err != nil {
		return nil, err
	}
	exp.SetLogger(r.Logger, false)
	exp.GetSimulator().SetPool(r.pool(cfg.Grid.Width * cfg.Grid.Height))
	return exp.Run(ctx)
}

// pool returns the frame pool shared by every run with the given cell count.
func (r *Runner) pool(cells int) *sim.FramePool {
	if r.pools == nil {
		r.pools = make(map[int]*sim.FramePool)
	}
	p, ok := r.pools[cells]
	if !ok {
		p = sim.NewFramePool(cells)
		r.pools[cells] = p
	}
	return p
}

// RunScenario executes all steps in order, stopping at the first failure.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		r.Logger.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "preset", step.Preset)

		result, err := r.run(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: cfg.Name, Config: cfg, Result: result}
		if step.SaveAs != "" && r.Store != nil {
			id, err := r.Store.Save(cfg, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			sr.RunID = id
		}
		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep runs the base config across evenly spaced values of one
// named parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds one point of a parameter sweep.
type SweepResult struct {
	ParamValue float64
	Sweeps     int
	Clamped    int
	Metrics    map[string]float64
}

// RunSweep executes a parameter sweep.
func (r *Runner) RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	if _, ok := sweep.Base.GetParams()[sweep.ParamName]; !ok {
		return nil, fmt.Errorf("unknown parameter: %s (available: %v)", sweep.ParamName, config.ParamNames())
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep
		cfg := sweep.Base.Clone()
		if err := cfg.SetParam(sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		result, err := r.run(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Sweeps:     result.Sweeps,
			Clamped:    result.Clamped,
			Metrics:    result.Metrics,
		})
		r.pool(cfg.Grid.Width * cfg.Grid.Height).Release(result)
		r.Logger.Info("sweep point", "index", i+1, "of", sweep.NumSteps, "param", sweep.ParamName, "value", paramVal)
	}

	return results, nil
}

// EnsembleStats summarises runs of one config over consecutive seeds.
type EnsembleStats struct {
	Runs        int
	MeanSpread  float64
	WorstSpread float64
	MeanDrift   float64
	Clamped     int
}

// RunEnsemble runs cfg concurrently for numRuns seeds starting at cfg's seed.
func (r *Runner) RunEnsemble(ctx context.Context, cfg *config.Config, numRuns int) (*EnsembleStats, error) {
	if numRuns < 1 {
		return nil, fmt.Errorf("ensemble needs at least one run, got %d", numRuns)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ens := sim.NewEnsemble(r.Registry.Factory(cfg), r.Registry.DefaultMetrics, numRuns, cfg.Seed.Seed)
	results, err := ens.Run(ctx, cfg.SimConfig())
	if err != nil {
		return nil, err
	}

	stats := &EnsembleStats{Runs: len(results)}
	for _, res := range results {
		spread := res.Metrics["spread"]
		stats.MeanSpread += spread
		stats.MeanDrift += res.Metrics["heat_drift"]
		stats.Clamped += res.Clamped
		if spread > stats.WorstSpread {
			stats.WorstSpread = spread
		}
	}
	stats.MeanSpread /= float64(len(results))
	stats.MeanDrift /= float64(len(results))
	return stats, nil
}
