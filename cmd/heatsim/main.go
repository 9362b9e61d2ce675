package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/experiment"
	"github.com/san-kum/heatsim/internal/viz"
)

var (
	dataDir  string
	verbose  bool
	logCells bool

	configFile  string
	preset      string
	dt          float64
	ticks       int
	seed        int64
	strategy    string
	width       int
	height      int
	chunkSize   int
	stepMode    string
	recordEvery int

	paletteName string
	overlay     bool
	cellSize    float64
	frameRate   int
	watch       bool

	outFile   string
	frameIdx  int
	row       int
	tolerance float64
	numRuns   int

	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int

	tuneParams []string
	tuneMetric string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "heatsim",
		Short:        "chunked 2-d heat diffusion lab",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(experiment.NewRegistry())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".heatsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&logCells, "log-cells", false, "log every cell temperature after each sweep (implies --verbose)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().IntVar(&recordEvery, "record-every", 1, "keep every nth committed sweep")
	runCmd.Flags().BoolVar(&watch, "watch", false, "print each committed sweep as ascii shading")
	runCmd.Flags().IntVar(&frameRate, "fps", 10, "watch redraw limit")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot mean temperature and spread per sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVarP(&outFile, "out", "o", "", "also write the spread series as SVG")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export recorded sweeps to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a recorded sweep as an SVG heat map",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().IntVar(&frameIdx, "frame", -1, "frame index, negative counts from the end")
	svgCmd.Flags().StringVar(&paletteName, "palette", "", "palette (default from the run config)")
	svgCmd.Flags().Float64Var(&cellSize, "cell", 16, "cell size in pixels")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with a live terminal heat map",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	addViewFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run in a desktop window (requires -tags ebiten)",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	addSimFlags(guiCmd)
	addViewFlags(guiCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "relaxation and spatial spectrum of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&row, "row", -1, "row for the spectrum (default middle row)")
	analyzeCmd.Flags().Float64Var(&tolerance, "tol", 0.5, "spread below which the field counts as relaxed")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure ticks per second across grid and chunk sizes",
		RunE:  benchSolver,
	}

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare the chunked solver against a full-grid shadow",
		Args:  cobra.NoArgs,
		RunE:  compareShadow,
	}
	addSimFlags(compareCmd)

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run one configuration over consecutive seeds in parallel",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addSimFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter across a range",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "heat_transfer_speed", "parameter name")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.0005, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.005, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search parameters minimising a metric",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	addSimFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&tuneParams, "param", nil, "name=v1,v2,... (repeatable)")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "spread", "metric to minimise")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, svgCmd, liveCmd, guiCmd,
		presetsCmd, analyzeCmd, benchCmd, compareCmd, ensembleCmd, scenarioCmd, sweepCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "tick delta in seconds")
	cmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().StringVar(&strategy, "strategy", config.DefaultStrategy, "seed strategy")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "grid width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "grid height")
	cmd.Flags().IntVar(&chunkSize, "chunk", config.DefaultChunkSize, "chunk size in cells")
	cmd.Flags().StringVar(&stepMode, "step-mode", "tick", "integration delta: tick or sweep")
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&paletteName, "palette", config.DefaultPalette, "palette")
	cmd.Flags().BoolVar(&overlay, "overlay", false, "start with the numeric overlay")
	cmd.Flags().Float64Var(&cellSize, "cell", config.DefaultCellSize, "cell size in pixels (gui)")
}

// resolveConfig starts from the config file, else the preset, else the
// defaults, then applies only the flags the user set.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Run.Dt = dt
	}
	if flags.Changed("ticks") {
		cfg.Run.Ticks = ticks
	}
	if flags.Changed("seed") {
		cfg.Seed.Seed = seed
	}
	if flags.Changed("strategy") {
		cfg.Seed.Strategy = strategy
	}
	if flags.Changed("width") {
		cfg.Grid.Width = width
	}
	if flags.Changed("height") {
		cfg.Grid.Height = height
	}
	if flags.Changed("chunk") {
		cfg.Grid.ChunkSize = chunkSize
	}
	if flags.Changed("step-mode") {
		cfg.StepMode = stepMode
	}
	if flags.Changed("record-every") {
		cfg.Run.RecordEvery = recordEvery
	}
	if flags.Changed("palette") {
		cfg.View.Palette = paletteName
	}
	if flags.Changed("overlay") {
		cfg.View.Overlay = overlay
	}
	if flags.Changed("cell") {
		cfg.View.CellSize = cellSize
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose || logCells {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
