package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/mechsim/internal/sim"
)

const (
	canvasWidth     = 72
	canvasHeight    = 24
	historyCapacity = 600
)

type TickMsg time.Time

// Model drives a Stepper at a fixed frame rate and renders the world.
type Model struct {
	stepper  *sim.Stepper
	title    string
	interval time.Duration
	canvas   *Canvas
	energy   []float64
	theme    int
	showHelp bool
}

// NewModel wraps st. The simulation starts paused.
func NewModel(st *sim.Stepper, title string, fps int, theme string) Model {
	if fps <= 0 {
		fps = 60
	}
	return Model{
		stepper:  st,
		title:    title,
		interval: time.Second / time.Duration(fps),
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		energy:   make([]float64, 0, historyCapacity),
		theme:    ThemeIndex(theme),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.stepper.Running() {
				m.stepper.Stop()
			} else {
				m.stepper.Start()
			}
		case "s":
			m.stepper.StepOnce()
			m.record()
		case "r":
			m.stepper.Reset()
			m.energy = m.energy[:0]
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.stepper.Step() {
			m.record()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) record() {
	m.energy = append(m.energy, m.stepper.World().TotalEnergy().Mechanical)
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}
}

func (m Model) status(st styles) string {
	switch {
	case m.stepper.Running():
		return st.running.Render("RUNNING")
	case m.stepper.Done():
		return st.paused.Render("DONE")
	default:
		return st.paused.Render("PAUSED")
	}
}

func (m Model) View() string {
	st := newStyles(Themes[m.theme])
	w := m.stepper.World()
	snap := w.Snapshot()
	DrawWorld(m.canvas, snap)

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(m.status(st) + "\n\n")

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs / %.0fs", snap.Time, m.stepper.MaxTime()))
	s.WriteString(st.label.Render("") + ProgressBar(snap.Time/m.stepper.MaxTime(), 20) + "\n")
	row("Steps", fmt.Sprintf("%d", m.stepper.Steps()))
	row("Bodies", fmt.Sprintf("%d", len(snap.Objects)))
	row("Kinetic", fmt.Sprintf("%.2f J", snap.TotalKineticEnergy))
	row("Potential", fmt.Sprintf("%.2f J", snap.TotalPotentialEnergy))
	row("Mechanical", fmt.Sprintf("%.2f J", snap.TotalMechanicalEnergy))
	row("Momentum", fmt.Sprintf("%.2f kg·m/s", snap.TotalMomentumMagnitude))
	row("Energy loss", fmt.Sprintf("%.2f J", snap.EnergyHistory.EnergyLoss))

	if g := EnergyGraph(m.energy, 30, 5, "Mechanical energy"); g != "" {
		s.WriteString(st.graph.Render(g) + "\n")
	}
	s.WriteString(st.help.Render("SP:Run/Pause S:Step R:Reset\nT:Theme ?:Help Q:Quit"))

	view := lipgloss.JoinHorizontal(lipgloss.Top,
		st.canvas.Render(m.canvas.String()),
		st.stats.Render(s.String()),
	)
	if m.showHelp {
		return helpText + "\n" + view
	}
	return view
}

const helpText = `
  Space  run or pause the simulation
  S      advance exactly one step
  R      reset every body to its initial state
  T      cycle color themes
  ?      toggle this help
  Q      quit
`
