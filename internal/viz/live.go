package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/palette"
	"github.com/san-kum/heatsim/internal/sim"
)

const (
	historyCapacity = 600
	defaultFPS      = 30
)

// Snapshot is a committed field kept for replay.
type Snapshot struct {
	Sweep  int
	Temps  []float32
	Mean   float64
	Spread float64
}

var (
	fieldStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Options configures the live view.
type Options struct {
	Name          string
	Dt            float32
	FPS           int
	TicksPerFrame int
	Palette       string
	Overlay       bool
}

// Model owns a solver and renders its committed field.
type Model struct {
	solver        *heat.Solver
	seeder        heat.Seeder
	opts          Options
	pal           palette.Palette
	palettes      []string
	running       bool
	overlay       bool
	showHelp      bool
	meanHistory   []float64
	spreadHistory []float64
	history       []Snapshot
	playHead      int
	recorder      *Recorder
	pool          *sim.FramePool
	lastErr       string
}

// NewModel wraps solver. seeder is reapplied on reset.
func NewModel(solver *heat.Solver, seeder heat.Seeder, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = defaultFPS
	}
	if opts.TicksPerFrame <= 0 {
		opts.TicksPerFrame = 1
	}
	if opts.Dt <= 0 {
		opts.Dt = 1.0 / 64
	}
	pal, err := palette.Get(opts.Palette)
	if err != nil {
		pal = palette.HotCold{}
	}
	m := Model{
		solver:        solver,
		seeder:        seeder,
		opts:          opts,
		pal:           pal,
		palettes:      palette.Names(),
		running:       true,
		overlay:       opts.Overlay,
		meanHistory:   make([]float64, 0, historyCapacity),
		spreadHistory: make([]float64, 0, historyCapacity),
		history:       make([]Snapshot, 0, historyCapacity),
		playHead:      -1,
		pool:          sim.NewFramePool(solver.Grid().Len()),
	}
	m.record()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Update handles input events and steps the solver.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case ".":
			m.running = false
			m.playHead = -1
			m.step(1)
		case "w":
			m.running = false
			m.playHead = -1
			m.sweep()
		case "r":
			m.reset()
		case "n":
			m.overlay = !m.overlay
		case "p":
			m.cyclePalette()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "g":
			m.toggleRecording()
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				m.step(m.opts.TicksPerFrame)
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances n ticks, recording every committed sweep.
func (m *Model) step(n int) {
	for i := 0; i < n; i++ {
		if r := m.solver.Tick(m.opts.Dt); r.SweepComplete {
			m.record()
		}
	}
}

func (m *Model) sweep() {
	m.solver.Sweep(m.opts.Dt)
	m.record()
}

func (m *Model) record() {
	temps := m.solver.Field().Values()
	mean, spread := fieldStats(temps)

	m.meanHistory = appendCapped(m.meanHistory, mean)
	m.spreadHistory = appendCapped(m.spreadHistory, spread)

	snap := Snapshot{
		Sweep:  m.solver.Sweeps(),
		Temps:  m.solver.Snapshot(m.pool.Get()),
		Mean:   mean,
		Spread: spread,
	}
	if len(m.history) >= historyCapacity {
		m.pool.Put(m.history[0].Temps)
		m.history = m.history[1:]
	}
	m.history = append(m.history, snap)

	if m.recorder != nil {
		m.recorder.Capture(snap.Temps)
	}
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

func fieldStats(temps []float32) (mean, spread float64) {
	if len(temps) == 0 {
		return 0, 0
	}
	lo, hi := temps[0], temps[0]
	sum := 0.0
	for _, t := range temps {
		sum += float64(t)
		if t < lo {
			lo = t
		}
		if t > hi {
			hi = t
		}
	}
	return sum / float64(len(temps)), float64(hi - lo)
}

// scrub moves the replay position through committed sweeps.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

// reset reseeds the solver and clears history.
func (m *Model) reset() {
	m.solver.Reseed(m.seeder)
	for _, s := range m.history {
		m.pool.Put(s.Temps)
	}
	m.history = m.history[:0]
	m.meanHistory = m.meanHistory[:0]
	m.spreadHistory = m.spreadHistory[:0]
	m.playHead = -1
	m.record()
}

func (m *Model) cyclePalette() {
	for i, name := range m.palettes {
		if name == m.pal.Name() {
			next, err := palette.Get(m.palettes[(i+1)%len(m.palettes)])
			if err == nil {
				m.pal = next
			}
			return
		}
	}
	if len(m.palettes) > 0 {
		if p, err := palette.Get(m.palettes[0]); err == nil {
			m.pal = p
		}
	}
}

func (m *Model) toggleRecording() {
	if m.recorder == nil {
		p := m.solver.Params()
		m.recorder = NewRecorder(m.solver.Grid(), m.pal, p.MinHeat, p.MaxHeat, 4)
		return
	}
	path := fmt.Sprintf("heatsim_%d.gif", time.Now().Unix())
	if err := m.recorder.Save(path); err != nil {
		m.lastErr = err.Error()
	}
	m.recorder = nil
}

// displayed returns the frame to draw, which is a replayed snapshot when
// scrubbing.
func (m Model) displayed() Snapshot {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		return m.history[m.playHead]
	}
	if len(m.history) > 0 {
		return m.history[len(m.history)-1]
	}
	return Snapshot{Temps: m.solver.Field().Values()}
}

// View renders the TUI interface.
func (m Model) View() string {
	snap := m.displayed()
	p := m.solver.Params()
	g := m.solver.Grid()

	var field string
	if m.overlay {
		field = RenderOverlay(snap.Temps, g, m.pal, p.MinHeat, p.MaxHeat)
	} else {
		field = RenderHalfBlocks(snap.Temps, g, m.pal, p.MinHeat, p.MaxHeat)
	}
	fieldView := fieldStyle.Render(field)

	var s strings.Builder
	title := m.opts.Name
	if title == "" {
		title = "heat"
	}
	s.WriteString(HeaderStyle().Render(strings.ToUpper(title)) + "\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.meanHistory) > 1 {
		chart := asciigraph.PlotMany([][]float64{m.meanHistory, m.spreadHistory},
			asciigraph.Height(6), asciigraph.Width(30),
			asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
			asciigraph.Caption("mean / spread"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	c := m.solver.Cursor()
	tps := m.solver.TicksPerSweep()
	progress := float64(m.solver.Ticks()%tps) / float64(tps)
	rows := [][2]string{
		{"Grid", fmt.Sprintf("%dx%d / %d", g.W, g.H, p.ChunkSize)},
		{"Sweep", fmt.Sprintf("%d", snap.Sweep)},
		{"Tick", fmt.Sprintf("%d", m.solver.Ticks())},
		{"Cursor", fmt.Sprintf("(%d,%d)", c.CX, c.CY)},
		{"Mean", fmt.Sprintf("%.3f", snap.Mean)},
		{"Spread", fmt.Sprintf("%.3f", snap.Spread)},
		{"Palette", m.pal.Name()},
		{"Mode", p.StepMode.String()},
	}
	for _, r := range rows {
		s.WriteString(LabelStyle().Render(r[0]) + ValueStyle().Render(r[1]) + "\n")
	}
	s.WriteString(LabelStyle().Render("Chunks") + ProgressBar(progress, 20) + "\n")
	s.WriteString(LabelStyle().Render("Trend") + Sparkline(m.spreadHistory, 30) + "\n")
	if m.lastErr != "" {
		s.WriteString(StatusStyle(false, true).Render(m.lastErr) + "\n")
	}

	s.WriteString(helpStyle.Render("\n" + Separator(30) + "\nSP:Pause .:Tick W:Sweep R:Reseed\nN:Values P:Palette Q:Quit ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, fieldView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

func (m Model) status() string {
	var status string
	switch {
	case m.playHead != -1:
		status = StatusStyle(false, false).Render(fmt.Sprintf("REPLAY sweep %d", m.history[m.playHead].Sweep))
	case m.running:
		status = StatusStyle(true, false).Render(Spinner(m.solver.Ticks()) + " RUNNING")
	default:
		status = StatusStyle(false, false).Render("PAUSED")
	}
	if m.recorder != nil {
		status += "  " + StatusStyle(false, true).Render(fmt.Sprintf("REC %d", m.recorder.Len()))
	}
	return status
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  .        - Advance one tick         ║
║  W        - Advance one sweep        ║
║  R        - Reseed                   ║
║  N        - Toggle numeric overlay   ║
║  P        - Cycle palettes           ║
║  [ ]      - Replay committed sweeps  ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// RunLive starts a full-screen live view.
func RunLive(solver *heat.Solver, seeder heat.Seeder, opts Options) error {
	_, err := tea.NewProgram(NewModel(solver, seeder, opts), tea.WithAltScreen()).Run()
	return err
}
