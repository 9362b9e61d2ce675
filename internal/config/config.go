package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/sim"
)

const (
	DefaultWidth     = 16
	DefaultHeight    = 16
	DefaultChunkSize = 4
	DefaultDt        = 1.0 / 64
	DefaultTicks     = 1600
	DefaultCellSize  = 32.0
	DefaultPalette   = "hotcold"
	DefaultStrategy  = "uniform"
)

type Config struct {
	Name         string            `yaml:"name,omitempty"`
	Grid         GridConfig        `yaml:"grid"`
	Material     MaterialConfig    `yaml:"material"`
	Bounds       BoundsConfig      `yaml:"bounds"`
	Conductivity heat.Conductivity `yaml:"conductivity"`
	StepMode     string            `yaml:"step_mode"`
	Seed         SeedConfig        `yaml:"seed"`
	Run          RunConfig         `yaml:"run"`
	View         ViewConfig        `yaml:"view"`
}

type GridConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	ChunkSize int `yaml:"chunk_size"`
}

type MaterialConfig struct {
	TileMass          float32 `yaml:"tile_mass"`
	TileHeatCapacity  float32 `yaml:"tile_heat_capacity"`
	HeatTransferSpeed float32 `yaml:"heat_transfer_speed"`
}

type BoundsConfig struct {
	MinHeat float32 `yaml:"min_heat"`
	MaxHeat float32 `yaml:"max_heat"`
}

type SeedConfig struct {
	Strategy string  `yaml:"strategy"`
	Seed     int64   `yaml:"seed"`
	Low      float32 `yaml:"low"`
	High     float32 `yaml:"high"`
	Value    float32 `yaml:"value"`
	Scale    float64 `yaml:"scale"`
	Octaves  int32   `yaml:"octaves"`
}

type RunConfig struct {
	Dt          float64 `yaml:"dt"`
	Ticks       int     `yaml:"ticks"`
	RecordEvery int     `yaml:"record_every"`
}

type ViewConfig struct {
	Palette  string  `yaml:"palette"`
	CellSize float64 `yaml:"cell_size"`
	OffsetX  float64 `yaml:"offset_x"`
	OffsetY  float64 `yaml:"offset_y"`
	Overlay  bool    `yaml:"overlay"`
}

func DefaultConfig() *Config {
	p := heat.DefaultParams()
	return &Config{
		Grid: GridConfig{
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			ChunkSize: DefaultChunkSize,
		},
		Material: MaterialConfig{
			TileMass:          p.TileMass,
			TileHeatCapacity:  p.TileHeatCapacity,
			HeatTransferSpeed: p.HeatTransferSpeed,
		},
		Bounds:       BoundsConfig{MinHeat: p.MinHeat, MaxHeat: p.MaxHeat},
		Conductivity: heat.DefaultConductivity,
		StepMode:     heat.StepTick.String(),
		Seed: SeedConfig{
			Strategy: DefaultStrategy,
			Low:      0,
			High:     100,
			Value:    50,
		},
		Run: RunConfig{
			Dt:          DefaultDt,
			Ticks:       DefaultTicks,
			RecordEvery: 1,
		},
		View: ViewConfig{
			Palette:  DefaultPalette,
			CellSize: DefaultCellSize,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Params converts the solver sections to heat.Params.
func (c *Config) Params() heat.Params {
	return heat.Params{
		Width:             c.Grid.Width,
		Height:            c.Grid.Height,
		ChunkSize:         c.Grid.ChunkSize,
		TileMass:          c.Material.TileMass,
		TileHeatCapacity:  c.Material.TileHeatCapacity,
		HeatTransferSpeed: c.Material.HeatTransferSpeed,
		MinHeat:           c.Bounds.MinHeat,
		MaxHeat:           c.Bounds.MaxHeat,
		Conductivity:      c.Conductivity,
		StepMode:          heat.ParseStepMode(c.StepMode),
	}
}

// SimConfig converts the run section to sim.Config.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:          c.Run.Dt,
		Ticks:       c.Run.Ticks,
		RecordEvery: c.Run.RecordEvery,
	}
}

// Validate checks the solver parameters and the step mode.
func (c *Config) Validate() error {
	if c.StepMode != "" && c.StepMode != "tick" && c.StepMode != "sweep" {
		return fmt.Errorf("unknown step_mode %q (want tick or sweep)", c.StepMode)
	}
	return c.Params().Validate()
}

type param struct {
	get func(c *Config) float64
	set func(c *Config, v float64)
}

var params = map[string]param{
	"width": {
		func(c *Config) float64 { return float64(c.Grid.Width) },
		func(c *Config, v float64) { c.Grid.Width = int(v) },
	},
	"height": {
		func(c *Config) float64 { return float64(c.Grid.Height) },
		func(c *Config, v float64) { c.Grid.Height = int(v) },
	},
	"chunk_size": {
		func(c *Config) float64 { return float64(c.Grid.ChunkSize) },
		func(c *Config, v float64) { c.Grid.ChunkSize = int(v) },
	},
	"tile_mass": {
		func(c *Config) float64 { return float64(c.Material.TileMass) },
		func(c *Config, v float64) { c.Material.TileMass = float32(v) },
	},
	"tile_heat_capacity": {
		func(c *Config) float64 { return float64(c.Material.TileHeatCapacity) },
		func(c *Config, v float64) { c.Material.TileHeatCapacity = float32(v) },
	},
	"heat_transfer_speed": {
		func(c *Config) float64 { return float64(c.Material.HeatTransferSpeed) },
		func(c *Config, v float64) { c.Material.HeatTransferSpeed = float32(v) },
	},
	"min_heat": {
		func(c *Config) float64 { return float64(c.Bounds.MinHeat) },
		func(c *Config, v float64) { c.Bounds.MinHeat = float32(v) },
	},
	"max_heat": {
		func(c *Config) float64 { return float64(c.Bounds.MaxHeat) },
		func(c *Config, v float64) { c.Bounds.MaxHeat = float32(v) },
	},
	"dt": {
		func(c *Config) float64 { return c.Run.Dt },
		func(c *Config, v float64) { c.Run.Dt = v },
	},
	"ticks": {
		func(c *Config) float64 { return float64(c.Run.Ticks) },
		func(c *Config, v float64) { c.Run.Ticks = int(v) },
	},
	"seed": {
		func(c *Config) float64 { return float64(c.Seed.Seed) },
		func(c *Config, v float64) { c.Seed.Seed = int64(v) },
	},
}

// GetParams returns every numeric knob by name.
func (c *Config) GetParams() map[string]float64 {
	out := make(map[string]float64, len(params))
	for name, p := range params {
		out[name] = p.get(c)
	}
	return out
}

// SetParam sets a numeric knob by name.
func (c *Config) SetParam(name string, value float64) error {
	p, ok := params[name]
	if !ok {
		return fmt.Errorf("unknown parameter: %s (available: %v)", name, ParamNames())
	}
	p.set(c, value)
	return nil
}

func ParamNames() []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
