package heat

import "math"

// AbsoluteZero is the floor used by the unbounded-below variant of the model.
const AbsoluteZero = -273.15

// StepMode selects the time step used when a sweep is integrated.
type StepMode int

const (
	// StepTick integrates with the delta of the tick that completed the sweep.
	StepTick StepMode = iota
	// StepSweep integrates with the deltas summed over every tick of the sweep.
	StepSweep
)

func (m StepMode) String() string {
	if m == StepSweep {
		return "sweep"
	}
	return "tick"
}

// ParseStepMode accepts "tick" or "sweep"; anything else is StepTick.
func ParseStepMode(s string) StepMode {
	if s == "sweep" {
		return StepSweep
	}
	return StepTick
}

// Params is the fixed configuration of a solver.
type Params struct {
	Width     int
	Height    int
	ChunkSize int

	TileMass          float32
	TileHeatCapacity  float32
	HeatTransferSpeed float32

	MinHeat float32
	MaxHeat float32

	Conductivity Conductivity
	StepMode     StepMode
}

func DefaultParams() Params {
	return Params{
		Width:             16,
		Height:            16,
		ChunkSize:         4,
		TileMass:          0.01,
		TileHeatCapacity:  1.0,
		HeatTransferSpeed: 0.001,
		MinHeat:           0,
		MaxHeat:           100,
		Conductivity:      DefaultConductivity,
		StepMode:          StepTick,
	}
}

func (p Params) Grid() Grid { return Grid{W: p.Width, H: p.Height} }

// Validate reports the first invalid parameter as a *ConfigError.
func (p Params) Validate() error {
	switch {
	case p.Width <= 0:
		return &ConfigError{Field: "width", Value: p.Width, Err: ErrInvalidGrid}
	case p.Height <= 0:
		return &ConfigError{Field: "height", Value: p.Height, Err: ErrInvalidGrid}
	case p.ChunkSize <= 0:
		return &ConfigError{Field: "chunk_size", Value: p.ChunkSize, Err: ErrInvalidChunk}
	case !(p.TileMass > 0) || isInf(p.TileMass):
		return &ConfigError{Field: "tile_mass", Value: p.TileMass, Err: ErrInvalidMaterial}
	case !(p.TileHeatCapacity > 0) || isInf(p.TileHeatCapacity):
		return &ConfigError{Field: "tile_heat_capacity", Value: p.TileHeatCapacity, Err: ErrInvalidMaterial}
	case !(p.HeatTransferSpeed >= 0) || isInf(p.HeatTransferSpeed):
		return &ConfigError{Field: "heat_transfer_speed", Value: p.HeatTransferSpeed, Err: ErrInvalidRate}
	case isInf(p.MinHeat):
		return &ConfigError{Field: "min_heat", Value: p.MinHeat, Err: ErrInvalidBounds}
	case isInf(p.MaxHeat):
		return &ConfigError{Field: "max_heat", Value: p.MaxHeat, Err: ErrInvalidBounds}
	case !(p.MinHeat < p.MaxHeat):
		return &ConfigError{Field: "min_heat", Value: p.MinHeat, Err: ErrInvalidBounds}
	}
	return nil
}

func isInf(v float32) bool { return math.IsInf(float64(v), 0) }
