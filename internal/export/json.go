package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/heatsim/internal/sim"
	"github.com/san-kum/heatsim/internal/storage"
)

type FrameData struct {
	Sweep   int       `json:"sweep"`
	Tick    int       `json:"tick"`
	Time    float64   `json:"time"`
	Clamped int       `json:"clamped"`
	Temps   []float32 `json:"temps"`
}

type ExportData struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset,omitempty"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	ChunkSize int                `json:"chunk_size"`
	StepMode  string             `json:"step_mode"`
	Dt        float64            `json:"dt"`
	Ticks     int                `json:"ticks"`
	Sweeps    int                `json:"sweeps"`
	MinHeat   float32            `json:"min_heat"`
	MaxHeat   float32            `json:"max_heat"`
	Metrics   map[string]float64 `json:"metrics"`
	Frames    []FrameData        `json:"frames"`
}

// WriteJSON encodes a stored run and its frames as indented JSON.
func WriteJSON(w io.Writer, meta *storage.RunMetadata, frames []sim.Frame) error {
	data := ExportData{
		ID:        meta.ID,
		Preset:    meta.Preset,
		Width:     meta.Width,
		Height:    meta.Height,
		ChunkSize: meta.ChunkSize,
		StepMode:  meta.StepMode,
		Dt:        meta.Dt,
		Ticks:     meta.Ticks,
		Sweeps:    meta.Sweeps,
		MinHeat:   meta.MinHeat,
		MaxHeat:   meta.MaxHeat,
		Metrics:   meta.Metrics,
		Frames:    make([]FrameData, len(frames)),
	}
	for i, f := range frames {
		data.Frames[i] = FrameData{
			Sweep:   f.Sweep,
			Tick:    f.Tick,
			Time:    f.Time,
			Clamped: f.Clamped,
			Temps:   f.Temps,
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
