package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/experiment"
)

var presetInfo = map[string]string{
	"classic":     "single pass, absolute-zero floor",
	"incremental": "64x64 in 8x8 chunks",
	"hot_edge":    "4x4, hot bottom row",
	"noise":       "coherent noise seed",
	"fast":        "sweep step mode",
}

// editable knobs shown on the config screen
var editParams = []string{"width", "height", "chunk_size", "heat_transfer_speed", "tile_mass", "seed"}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

type app struct {
	state       int
	cursor      int
	presets     []string
	cfg         *config.Config
	paramCursor int
	editing     bool
	editBuf     string
	errMsg      string
	registry    *experiment.Registry
	live        Model
}

// NewInteractiveApp returns a preset picker that opens a live view.
func NewInteractiveApp(r *experiment.Registry) tea.Model {
	return app{state: stateMenu, presets: config.ListPresets(), registry: r}
}

func (m app) Init() tea.Cmd { return nil }

func (m app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.menuKey(key)
		case stateConfig:
			return m.configKey(key)
		}
	}
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	return m, nil
}

func (m app) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, len(m.presets)-1)
	case "enter", " ":
		m.cfg = config.GetPreset(m.presets[m.cursor])
		m.state, m.paramCursor, m.errMsg = stateConfig, 0, ""
	}
	return m, nil
}

func (m app) configKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name := editParams[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				_ = m.cfg.SetParam(name, v)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-e") {
				m.editBuf += s
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		m.paramCursor = max(m.paramCursor-1, 0)
	case "down", "j":
		m.paramCursor = min(m.paramCursor+1, len(editParams)-1)
	case "enter", " ":
		m.editing = true
		m.editBuf = strconv.FormatFloat(m.cfg.GetParams()[name], 'g', -1, 64)
	case "s":
		return m.start()
	}
	return m, nil
}

func (m app) start() (tea.Model, tea.Cmd) {
	solver, err := m.registry.Build(m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	seeder, err := m.registry.GetSeeder(m.cfg.Seed)
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.live = NewModel(solver, seeder, Options{
		Name:    m.cfg.Name,
		Dt:      float32(m.cfg.Run.Dt),
		Palette: m.cfg.View.Palette,
		Overlay: m.cfg.View.Overlay,
	})
	m.state = stateSim
	return m, m.live.Init()
}

func (m app) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.live.View()
	}
	return ""
}

func (m app) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + HeaderStyle().Render("HEATSIM") + "\n    " + subtle("chunked heat diffusion") + "\n\n")
	selected := lipgloss.NewStyle().Foreground(CurrentTheme.Text).Bold(true)
	for i, name := range m.presets {
		line := fmt.Sprintf("%-14s", name)
		if i == m.cursor {
			b.WriteString("  ▸ " + selected.Render(line) + "  " + ValueStyle().Render(presetInfo[name]) + "\n")
		} else {
			b.WriteString("    " + subtle(line+"  "+presetInfo[name]) + "\n")
		}
	}
	b.WriteString("\n    " + subtle("j/k navigate  enter select  q quit") + "\n")
	return b.String()
}

func (m app) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + HeaderStyle().Render(strings.ToUpper(m.cfg.Name)) + "\n    " + subtle(presetInfo[m.cfg.Name]) + "\n\n")
	values := m.cfg.GetParams()
	selected := lipgloss.NewStyle().Foreground(CurrentTheme.Text).Bold(true)
	for i, name := range editParams {
		val := strconv.FormatFloat(values[name], 'g', 6, 64)
		if m.editing && i == m.paramCursor {
			val = m.editBuf + "_"
		}
		line := fmt.Sprintf("%-20s %10s", name, val)
		if i == m.paramCursor {
			b.WriteString("  ▸ " + selected.Render(line) + "\n")
		} else {
			b.WriteString("    " + subtle(line) + "\n")
		}
	}
	if m.errMsg != "" {
		b.WriteString("\n    " + StatusStyle(false, true).Render(m.errMsg) + "\n")
	}
	b.WriteString("\n    " + subtle("j/k select  enter edit  s start  esc back") + "\n")
	return b.String()
}

func RunInteractive(r *experiment.Registry) error {
	_, err := tea.NewProgram(NewInteractiveApp(r), tea.WithAltScreen()).Run()
	return err
}
