package config

import "sort"

// Presets are complete configurations keyed by name. Use GetPreset, which
// returns a copy, rather than mutating entries.
var Presets = map[string]func() *Config{
	// classic reproduces the single-pass 16x16 model with an absolute-zero
	// floor instead of a clamp at zero.
	"classic": func() *Config {
		c := DefaultConfig()
		c.Grid.ChunkSize = 16
		c.Bounds.MinHeat = -273.15
		return c
	},
	"incremental": func() *Config {
		c := DefaultConfig()
		c.Grid = GridConfig{Width: 64, Height: 64, ChunkSize: 8}
		c.Run.Ticks = 64 * 200
		c.Run.RecordEvery = 10
		c.View.CellSize = 8
		return c
	},
	"hot_edge": func() *Config {
		c := DefaultConfig()
		c.Grid = GridConfig{Width: 4, Height: 4, ChunkSize: 2}
		c.Seed = SeedConfig{Strategy: "hot_edge", Low: 0, High: 100}
		c.Run.Ticks = 400
		return c
	},
	"noise": func() *Config {
		c := DefaultConfig()
		c.Grid = GridConfig{Width: 48, Height: 32, ChunkSize: 8}
		c.Seed = SeedConfig{Strategy: "noise", Seed: 1, Low: 0, High: 100, Scale: 0.08, Octaves: 3}
		c.View.Palette = "inferno"
		return c
	},
	"fast": func() *Config {
		c := DefaultConfig()
		c.Material.HeatTransferSpeed = 0.01
		c.StepMode = "sweep"
		return c
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	c := fn()
	c.Name = name
	return c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
