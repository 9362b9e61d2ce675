package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/san-kum/heatsim/internal/analysis"
	"github.com/san-kum/heatsim/internal/automation"
	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/experiment"
	"github.com/san-kum/heatsim/internal/export"
	"github.com/san-kum/heatsim/internal/gui"
	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/optim"
	"github.com/san-kum/heatsim/internal/palette"
	"github.com/san-kum/heatsim/internal/sim"
	"github.com/san-kum/heatsim/internal/storage"
	"github.com/san-kum/heatsim/internal/tui"
	"github.com/san-kum/heatsim/internal/viz"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	exp := experiment.New(cfg)
	if err := exp.Setup(registry, registry.DefaultMetrics()); err != nil {
		return err
	}
	exp.SetLogger(logger, logCells)

	if watch {
		w := tui.NewWatcher(os.Stdout, cfg.Params(), frameRate, isatty.IsTerminal(os.Stdout.Fd()))
		defer w.Close()
		exp.GetSimulator().AddObserver(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("running", "grid", fmt.Sprintf("%dx%d", cfg.Grid.Width, cfg.Grid.Height),
		"chunk", cfg.Grid.ChunkSize, "ticks", cfg.Run.Ticks, "strategy", cfg.Seed.Strategy)
	start := time.Now()

	result, err := exp.Run(ctx)
	var runErr *sim.RunError
	switch {
	case errors.As(err, &runErr) && result != nil:
		logger.Warn("run interrupted, saving partial result", "tick", runErr.Tick)
	case err != nil:
		return err
	}
	elapsed := time.Since(start)

	runID, err := saveRun(st, exp.GetSimulator(), cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d  sweeps: %d  clamped: %d\n", result.Ticks, result.Sweeps, result.Clamped)
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	return nil
}

// saveRun stores result and hands its frame buffers back to the simulator's pool.
func saveRun(st *storage.Store, s *sim.Simulator, cfg *config.Config, result *sim.Result) (string, error) {
	defer s.Pool().Release(result)
	return st.Save(cfg, result)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tGRID\tCHUNK\tMODE\tSEED\tSWEEPS\tSPREAD")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%s\t%s\t%d\t%.3f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.ChunkSize,
			run.StepMode,
			run.Strategy,
			run.Sweeps,
			run.Metrics["spread"],
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []sim.Frame, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, frames, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(frames) < 2 {
		return fmt.Errorf("need at least 2 recorded sweeps to plot, have %d", len(frames))
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d chunk %d\n", meta.Width, meta.Height, meta.ChunkSize)
	fmt.Printf("sweeps recorded: %d\n\n", len(frames))

	series := []struct {
		caption string
		data    []float64
	}{
		{"mean temperature per sweep", analysis.MeanSeries(frames)},
		{"spread (max - min) per sweep", analysis.SpreadSeries(frames)},
	}
	for _, s := range series {
		fmt.Println(asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		))
		fmt.Println()
	}

	if outFile != "" {
		svg := export.SeriesSVG(series[1].data, 640, 240, "#d9480f")
		if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.WriteFrames(os.Stdout, meta.Width*meta.Height, frames)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, meta, frames)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no recorded sweeps")
	}

	idx := frameIdx
	if idx < 0 {
		idx += len(frames)
	}
	if idx < 0 || idx >= len(frames) {
		return fmt.Errorf("frame %d out of range [0,%d)", frameIdx, len(frames))
	}

	name := paletteName
	if name == "" && meta.Config != nil {
		name = meta.Config.View.Palette
	}
	if name == "" {
		name = config.DefaultPalette
	}
	pal, err := palette.Get(name)
	if err != nil {
		return err
	}

	svg := export.HeatmapSVG(frames[idx].Temps, heat.Grid{W: meta.Width, H: meta.Height}, pal, meta.MinHeat, meta.MaxHeat, cellSize)
	if outFile == "" {
		_, err = fmt.Println(svg)
		return err
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote sweep %d to %s\n", frames[idx].Sweep, outFile)
	return nil
}

func buildSolver(cfg *config.Config) (*heat.Solver, heat.Seeder, error) {
	registry := experiment.NewRegistry()
	seeder, err := registry.GetSeeder(cfg.Seed)
	if err != nil {
		return nil, nil, err
	}
	solver, err := registry.Build(cfg)
	if err != nil {
		return nil, nil, err
	}
	return solver, seeder, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	solver, seeder, err := buildSolver(cfg)
	if err != nil {
		return err
	}
	return viz.RunLive(solver, seeder, viz.Options{
		Name:    cfg.Name,
		Dt:      float32(cfg.Run.Dt),
		FPS:     frameRate,
		Palette: cfg.View.Palette,
		Overlay: cfg.View.Overlay,
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	solver, seeder, err := buildSolver(cfg)
	if err != nil {
		return err
	}
	return gui.Run(solver, seeder, gui.Options{
		Title:   "heatsim " + cfg.Name,
		Dt:      float32(cfg.Run.Dt),
		Palette: cfg.View.Palette,
		Tile: palette.Tile{
			OffsetX:  cfg.View.OffsetX,
			OffsetY:  cfg.View.OffsetY,
			CellSize: cfg.View.CellSize,
		},
		Overlay: cfg.View.Overlay,
		Margin:  8,
	})
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGRID\tCHUNK\tTICKS/SWEEP\tBOUNDS\tSEED\tMODE")
	for _, name := range config.ListPresets() {
		c := config.GetPreset(name)
		p := c.Params()
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%d\t[%g,%g]\t%s\t%s\n",
			name, c.Grid.Width, c.Grid.Height, c.Grid.ChunkSize,
			heat.NewScheduler(p.Grid(), p.ChunkSize).ChunksPerSweep(),
			c.Bounds.MinHeat, c.Bounds.MaxHeat, c.Seed.Strategy, c.StepMode)
	}
	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("analysis: %s\n\n", meta.ID)

	if sweep, ok := analysis.RelaxationSweep(frames, tolerance); ok {
		fmt.Printf("relaxed (spread <= %g) at sweep %d\n", tolerance, sweep)
	} else {
		spreads := analysis.SpreadSeries(frames)
		fmt.Printf("not relaxed: final spread %.4f > %g\n", spreads[len(spreads)-1], tolerance)
	}

	g := heat.Grid{W: meta.Width, H: meta.Height}
	y := row
	if y < 0 {
		y = g.H / 2
	}
	final := frames[len(frames)-1]
	profile := analysis.RowProfile(final.Temps, g, y)
	if profile == nil {
		return fmt.Errorf("row %d outside grid of height %d", y, g.H)
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(profile,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("row %d at sweep %d", y, final.Sweep)),
	))

	ps := analysis.PowerSpectrum(profile)
	if len(ps) < 2 {
		return nil
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(ps,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("spatial power spectrum"),
	))
	if bin := analysis.DominantBin(ps); bin > 0 {
		fmt.Printf("\ndominant wavelength: %.2f cells\n", float64(len(profile))/float64(bin))
	}
	return nil
}

func benchSolver(cmd *cobra.Command, args []string) error {
	sizes := []int{16, 64, 256}
	chunks := []int{4, 16, 0}
	const sweeps = 10

	fmt.Printf("benchmarking %d sweeps per configuration\n\n", sweeps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tCHUNK\tTICKS\tTIME\tTICKS/SEC\tCELLS/SEC")

	registry := experiment.NewRegistry()
	for _, size := range sizes {
		for _, chunk := range chunks {
			if chunk == 0 {
				chunk = size
			}
			cfg := config.DefaultConfig()
			cfg.Grid = config.GridConfig{Width: size, Height: size, ChunkSize: chunk}
			cfg.Seed.Seed = 42
			solver, err := registry.Build(cfg)
			if err != nil {
				return err
			}

			dtf := float32(cfg.Run.Dt)
			start := time.Now()
			for i := 0; i < sweeps; i++ {
				solver.Sweep(dtf)
			}
			elapsed := time.Since(start)

			n := solver.Ticks()
			fmt.Fprintf(w, "%dx%d\t%d\t%d\t%v\t%.0f\t%.3g\n",
				size, size, chunk, n, elapsed,
				float64(n)/elapsed.Seconds(),
				float64(sweeps*size*size)/elapsed.Seconds())
		}
	}

	return w.Flush()
}

func compareShadow(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	shadowCfg := cfg.Clone()
	shadowCfg.Grid.ChunkSize = max(cfg.Grid.Width, cfg.Grid.Height)

	registry := experiment.NewRegistry()
	primary, err := registry.Build(cfg)
	if err != nil {
		return err
	}
	shadow, err := registry.Build(shadowCfg)
	if err != nil {
		return err
	}

	sweeps := max(cfg.Run.Ticks/primary.TicksPerSweep(), 1)
	c := sim.Compare(primary, shadow, float32(cfg.Run.Dt), sweeps)

	fmt.Printf("primary: chunk %d (%d ticks/sweep)   shadow: full grid (1 tick/sweep)\n",
		cfg.Grid.ChunkSize, primary.TicksPerSweep())
	fmt.Printf("step mode: %s   sweeps: %d\n\n", cfg.StepMode, c.Sweeps)
	fmt.Printf("%-14s %d\n", "primary ticks", c.PrimaryTicks)
	fmt.Printf("%-14s %d\n", "shadow ticks", c.ShadowTicks)
	fmt.Printf("%-14s %.3e\n", "max diff", c.MaxDiff)
	fmt.Printf("%-14s %.3e\n", "final mean", c.MeanDiff)

	if len(c.Divergence) > 1 && c.MaxDiff > 0 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(c.Divergence,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("max |primary - shadow| per sweep"),
		))
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Run.RecordEvery = 0

	runner := automation.NewRunner(experiment.NewRegistry(), nil, newLogger())
	start := time.Now()
	stats, err := runner.RunEnsemble(cmd.Context(), cfg, numRuns)
	if err != nil {
		return err
	}

	fmt.Printf("%d runs from seed %d in %v\n\n", stats.Runs, cfg.Seed.Seed, time.Since(start))
	fmt.Printf("%-14s %.4f\n", "mean spread", stats.MeanSpread)
	fmt.Printf("%-14s %.4f\n", "worst spread", stats.WorstSpread)
	fmt.Printf("%-14s %.3e\n", "mean drift", stats.MeanDrift)
	fmt.Printf("%-14s %d\n", "clamped", stats.Clamped)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runner := automation.NewRunner(experiment.NewRegistry(), st, newLogger())

	results, err := runner.RunScenario(cmd.Context(), scenario)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tNAME\tSWEEPS\tSPREAD\tDRIFT\tRUN ID")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%.4f\t%.2e\t%s\n",
			i+1, r.Name, r.Result.Sweeps, r.Result.Metrics["spread"], r.Result.Metrics["heat_drift"], r.RunID)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Run.RecordEvery = 0

	runner := automation.NewRunner(experiment.NewRegistry(), nil, newLogger())
	results, err := runner.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Base:      cfg,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSWEEPS\tSPREAD\tMEAN\tCLAMPED\n", strings.ToUpper(sweepParam))
	spreads := make([]float64, len(results))
	for i, r := range results {
		spreads[i] = r.Metrics["spread"]
		fmt.Fprintf(w, "%g\t%d\t%.4f\t%.4f\t%d\n",
			r.ParamValue, r.Sweeps, r.Metrics["spread"], r.Metrics["mean_temperature"], r.Clamped)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(spreads) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(spreads,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("final spread vs "+sweepParam),
		))
	}
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Run.RecordEvery = 0

	if len(tuneParams) == 0 {
		return fmt.Errorf("at least one --param name=v1,v2,... is required")
	}
	names := make([]string, 0, len(tuneParams))
	ranges := make([][]float64, 0, len(tuneParams))
	for _, p := range tuneParams {
		name, values, err := parseParamList(p)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	gs := optim.NewGridSearch(names, ranges)
	best, val, err := gs.Search(cmd.Context(), optim.ConfigBuilder(cfg, experiment.NewRegistry()), tuneMetric)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.6f\n", tuneMetric, val)
	for _, name := range names {
		fmt.Printf("  %s = %g\n", name, best[name])
	}
	return nil
}

// parseParamList parses name=v1,v2,...
func parseParamList(arg string) (string, []float64, error) {
	name, list, ok := strings.Cut(arg, "=")
	if !ok || name == "" || list == "" {
		return "", nil, fmt.Errorf("invalid --param %q, want name=v1,v2,...", arg)
	}
	parts := strings.Split(list, ",")
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return "", nil, fmt.Errorf("--param %s: %w", name, err)
		}
		values = append(values, v)
	}
	return name, values, nil
}
