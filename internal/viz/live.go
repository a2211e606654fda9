package viz

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/chaoslab/internal/dynamo"
	"github.com/san-kum/chaoslab/internal/metrics"
	"github.com/san-kum/chaoslab/internal/physics"
)

const (
	canvasWidth     = 72
	canvasHeight    = 24
	historyCapacity = 300
	frameInterval   = time.Second / 30
)

// Simulation is an engine the live view can drive.
type Simulation interface {
	dynamo.Configurable
	Name() string
	// Advance runs n integration steps.
	Advance(n int)
	Draw(c *Canvas)
	// Observable is the scalar charted under the canvas.
	Observable() (label string, v float64)
	// Status lines shown in the side panel.
	Status() []string
	Reset()
}

type lorenzSim struct {
	l   *physics.Lorenz
	cam *Camera
}

// NewLorenzSimulation wraps l for the live view with a slowly orbiting
// camera.
func NewLorenzSimulation(l *physics.Lorenz) Simulation {
	return &lorenzSim{l: l, cam: NewLorenzCamera()}
}

func (s *lorenzSim) Name() string                              { return "lorenz" }
func (s *lorenzSim) Advance(n int)                             { s.l.CalculateSteps(n) }
func (s *lorenzSim) GetParams() map[string]float64             { return s.l.GetParams() }
func (s *lorenzSim) SetParam(name string, value float64) error { return s.l.SetParam(name, value) }
func (s *lorenzSim) Reset()                                    { s.l.Reset() }

func (s *lorenzSim) Draw(c *Canvas) {
	s.cam.RotateY(0.01)
	c.DrawTrail3D(s.cam, s.l.Trail())
}

func (s *lorenzSim) Observable() (string, float64) { return "x(t)", s.l.Position().X }

func (s *lorenzSim) Status() []string {
	p := s.l.Position()
	regime := "periodic"
	if s.l.IsChaotic() {
		regime = "chaotic"
	}
	return []string{
		fmt.Sprintf("position (%.2f, %.2f, %.2f)", p.X, p.Y, p.Z),
		fmt.Sprintf("regime   %s (ρ=%.2f)", regime, s.l.Params().Rho),
		fmt.Sprintf("trail    %d", s.l.TrailLen()),
	}
}

type pendulumSim struct {
	d     *physics.DoublePendulum
	drift *metrics.EnergyDrift
}

// NewPendulumSimulation wraps d for the live view and tracks its energy
// drift.
func NewPendulumSimulation(d *physics.DoublePendulum) Simulation {
	s := &pendulumSim{d: d, drift: metrics.NewEnergyDrift(d)}
	s.drift.ObserveEnergy(d.TotalEnergy())
	return s
}

func (s *pendulumSim) Name() string                  { return "double pendulum" }
func (s *pendulumSim) GetParams() map[string]float64 { return s.d.GetParams() }

func (s *pendulumSim) SetParam(name string, value float64) error {
	if err := s.d.SetParam(name, value); err != nil {
		return err
	}
	s.drift.Reset()
	s.drift.ObserveEnergy(s.d.TotalEnergy())
	return nil
}

func (s *pendulumSim) Advance(n int) {
	for range n {
		s.d.Step()
	}
	s.drift.ObserveEnergy(s.d.TotalEnergy())
}

func (s *pendulumSim) Draw(c *Canvas) {
	c.DrawPendulum(s.d.Positions(), s.d.Trail(), PendulumReach(s.d.Params()))
}

func (s *pendulumSim) Observable() (string, float64) { return "energy", s.d.TotalEnergy() }

func (s *pendulumSim) Status() []string {
	st := s.d.State()
	return []string{
		fmt.Sprintf("θ1 %+.3f  ω1 %+.3f", st.Theta1, st.Omega1),
		fmt.Sprintf("θ2 %+.3f  ω2 %+.3f", st.Theta2, st.Omega2),
		fmt.Sprintf("drift %.2e", s.drift.Value()),
	}
}

func (s *pendulumSim) Reset() {
	s.d.Reset()
	s.drift.Reset()
	s.drift.ObserveEnergy(s.d.TotalEnergy())
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the bubbletea model of the live view.
type Model struct {
	sim           Simulation
	stepsPerFrame int
	canvas        *Canvas
	history       *dynamo.Trail[float64]
	running       bool
	paramKeys     []string
	selected      int
	theme         Theme
	lastErr       error
}

// NewModel builds a live view that advances sim by stepsPerFrame steps on
// every frame.
func NewModel(sim Simulation, stepsPerFrame int) Model {
	return Model{
		sim:           sim,
		stepsPerFrame: max(stepsPerFrame, 1),
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		history:       dynamo.NewTrail[float64](historyCapacity),
		running:       true,
		paramKeys:     slices.Sorted(maps.Keys(sim.GetParams())),
		theme:         Themes[0],
	}
}

// WithTheme returns a copy of m using t.
func (m Model) WithTheme(t Theme) Model {
	m.theme = t
	return m
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.sim.Reset()
			m.history.Clear()
			m.lastErr = nil
		case "tab":
			if len(m.paramKeys) > 0 {
				m.selected = (m.selected + 1) % len(m.paramKeys)
			}
		case "up", "k":
			m.adjust(1.05)
		case "down", "j":
			m.adjust(0.95)
		case "t":
			m.theme = NextTheme(m.theme)
		case "n":
			if !m.running {
				m.advance()
			}
		}
	case tickMsg:
		if m.running {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance() {
	m.sim.Advance(m.stepsPerFrame)
	_, v := m.sim.Observable()
	m.history.Push(v)
}

// adjust scales the selected parameter. A rejected value leaves the engine
// unchanged and is reported in the panel.
func (m *Model) adjust(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	v := m.sim.GetParams()[key]
	if v == 0 {
		v = 0.01 / factor
	}
	m.lastErr = m.sim.SetParam(key, v*factor)
}

func (m Model) View() string {
	st := m.theme.styles()

	m.canvas.Clear()
	m.sim.Draw(m.canvas)
	canvasView := st.canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.sim.Name())) + "\n")
	if m.running {
		s.WriteString(st.value.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(st.active.Render("PAUSED") + "\n\n")
	}

	label, v := m.sim.Observable()
	if chart := PlotSeries(m.history.Points(), label, 30, 4); chart != "" {
		s.WriteString(st.graph.Render(chart) + "\n")
	}
	s.WriteString(st.label.Render(label) + st.value.Render(fmt.Sprintf("%.4f", v)) + "\n")
	for _, line := range m.sim.Status() {
		s.WriteString(st.value.Render(line) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	params := m.sim.GetParams()
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-14s %.4g", k, params[k])
		if i == m.selected {
			s.WriteString(st.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.value.Render(line) + "\n")
		}
	}
	if m.lastErr != nil {
		s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Warning).Render(m.lastErr.Error()) + "\n")
	}
	s.WriteString(st.help.Render("SPC pause  N step  R reset  Q quit\nTAB param  ↑↓ ±5%  T theme"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))
}

// Run starts the live view on the terminal's alternate screen.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
