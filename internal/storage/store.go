package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	sweepsFile   = "sweeps.csv"

	// leading columns before the per-cell temperatures
	frameColumns = 4
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	ChunkSize int                `json:"chunk_size"`
	StepMode  string             `json:"step_mode"`
	Strategy  string             `json:"strategy"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Ticks     int                `json:"ticks"`
	Sweeps    int                `json:"sweeps"`
	Clamped   int                `json:"clamped"`
	MinHeat   float32            `json:"min_heat"`
	MaxHeat   float32            `json:"max_heat"`
	Metrics   map[string]float64 `json:"metrics"`
	Config    *config.Config     `json:"config"`
}

// Save writes the run metadata and every recorded frame, returning the run id.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	name := cfg.Name
	if name == "" {
		name = "heat"
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    cfg.Name,
		Timestamp: now,
		Width:     cfg.Grid.Width,
		Height:    cfg.Grid.Height,
		ChunkSize: cfg.Grid.ChunkSize,
		StepMode:  cfg.StepMode,
		Strategy:  cfg.Seed.Strategy,
		Seed:      cfg.Seed.Seed,
		Dt:        cfg.Run.Dt,
		Duration:  result.Duration,
		Ticks:     result.Ticks,
		Sweeps:    result.Sweeps,
		Clamped:   result.Clamped,
		MinHeat:   cfg.Bounds.MinHeat,
		MaxHeat:   cfg.Bounds.MaxHeat,
		Metrics:   result.Metrics,
		Config:    cfg,
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), &meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, sweepsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteFrames(csvFile, cfg.Grid.Width*cfg.Grid.Height, result.Frames); err != nil {
		return "", err
	}
	return runID, nil
}

func writeMetadata(path string, meta *RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// WriteFrames writes one CSV row per frame: sweep, tick, time, clamped and
// then the temperature of every cell in row-major order.
func WriteFrames(out io.Writer, cells int, frames []sim.Frame) error {
	w := csv.NewWriter(out)

	header := []string{"sweep", "tick", "time", "clamped"}
	for i := 0; i < cells; i++ {
		header = append(header, fmt.Sprintf("c%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, 0, frameColumns+cells)
	for _, f := range frames {
		row = row[:0]
		row = append(row,
			strconv.Itoa(f.Sweep),
			strconv.Itoa(f.Tick),
			strconv.FormatFloat(f.Time, 'f', 6, 64),
			strconv.Itoa(f.Clamped),
		)
		for _, v := range f.Temps {
			row = append(row, strconv.FormatFloat(float64(v), 'f', 6, 32))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadFrames reads the recorded frames of a run.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, sweepsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadFrames(file)
}

// ReadFrames parses the format written by WriteFrames.
func ReadFrames(in io.Reader) ([]sim.Frame, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) < frameColumns {
			return nil, fmt.Errorf("row %d: expected at least %d columns, got %d", i+1, frameColumns, len(record))
		}
		var f sim.Frame
		if f.Sweep, err = strconv.Atoi(record[0]); err != nil {
			return nil, fmt.Errorf("row %d sweep: %w", i+1, err)
		}
		if f.Tick, err = strconv.Atoi(record[1]); err != nil {
			return nil, fmt.Errorf("row %d tick: %w", i+1, err)
		}
		if f.Time, err = strconv.ParseFloat(record[2], 64); err != nil {
			return nil, fmt.Errorf("row %d time: %w", i+1, err)
		}
		if f.Clamped, err = strconv.Atoi(record[3]); err != nil {
			return nil, fmt.Errorf("row %d clamped: %w", i+1, err)
		}

		f.Temps = make([]float32, len(record)-frameColumns)
		for j, field := range record[frameColumns:] {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("row %d cell %d: %w", i+1, j, err)
			}
			f.Temps[j] = float32(v)
		}
		frames = append(frames, f)
	}
	return frames, nil
}
