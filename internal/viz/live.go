package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/eschmidt42/hardspheres-2d/internal/engine"
	"github.com/eschmidt42/hardspheres-2d/internal/gas"
)

const (
	canvasWidth   = 80
	canvasHeight  = 24
	historyCap    = 600
	maxStepFactor = 64
)

type TickMsg time.Time

// Model is the live view: it owns a stepper and a working state, advances
// a few steps per frame, and renders the gas next to a metrics panel.
type Model struct {
	initial *gas.State
	st      *gas.State
	stepper *engine.Stepper

	running       bool
	stepsPerFrame int
	showHelp      bool
	err           error

	resolutions int
	wallImpulse float64
	energyHist  []float64

	canvas *Canvas
}

// NewModel prepares a live view over a copy of st, stepping at dt.
func NewModel(st *gas.State, dt float64) Model {
	return Model{
		initial:       st.Clone(),
		st:            st.Clone(),
		stepper:       engine.NewStepper(dt),
		running:       true,
		stepsPerFrame: 4,
		energyHist:    make([]float64, 0, historyCap),
		canvas:        NewCanvas(canvasWidth, canvasHeight),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances the simulation on ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.err == nil {
				m.running = !m.running
			}
		case "n":
			if !m.running && m.err == nil {
				m.advance(1)
			}
		case "r":
			m.reset()
		case "+", "=":
			if m.stepsPerFrame < maxStepFactor {
				m.stepsPerFrame *= 2
			}
		case "-", "_":
			if m.stepsPerFrame > 1 {
				m.stepsPerFrame /= 2
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.advance(m.stepsPerFrame)
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// advance steps the gas and extends the energy history once per call.
func (m *Model) advance(steps int) {
	for i := 0; i < steps; i++ {
		seq, err := m.stepper.Step(m.st)
		if err != nil {
			m.err = err
			m.running = false
			return
		}
		m.st = seq[len(seq)-1]
		stats := m.stepper.LastStats()
		m.resolutions += stats.Resolutions
		m.wallImpulse += stats.WallImpulse
	}
	m.energyHist = append(m.energyHist, m.st.KineticEnergy())
	if len(m.energyHist) > historyCap {
		m.energyHist = m.energyHist[1:]
	}
}

// reset restores the initial gas and clears the accumulated metrics.
func (m *Model) reset() {
	m.st = m.initial.Clone()
	m.err = nil
	m.running = true
	m.resolutions = 0
	m.wallImpulse = 0
	m.energyHist = m.energyHist[:0]
}

// View renders the canvas and the metrics panel.
func (m Model) View() string {
	m.drawGas()
	canvasView := canvasStyle.Render(m.canvas.String())

	span := m.st.Time
	rate, pressure := 0.0, 0.0
	if span > 0 {
		rate = float64(m.resolutions) / span
		pressure = m.wallImpulse / (span * m.st.Bounds.Perimeter())
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("HARD SPHERES") + "\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.energyHist) > 1 {
		chart := asciigraph.Plot(m.energyHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2f", m.st.Time))
	row("Disks", fmt.Sprintf("%d", m.st.N()))
	row("Energy", fmt.Sprintf("%.4f", m.st.KineticEnergy()))
	row("Temp", fmt.Sprintf("%.3f", m.st.Temperature()))
	row("Packing", fmt.Sprintf("%.3f", m.st.PackingFraction()))
	row("Collisions", fmt.Sprintf("%d", m.resolutions))
	row("Rate", fmt.Sprintf("%.1f", rate))
	row("Pressure", fmt.Sprintf("%.4f", pressure))
	row("Speed", fmt.Sprintf("%d steps/frame", m.stepsPerFrame))

	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause N:Step R:Reset\n+/-:Speed ?:Help Q:Quit"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return statusFault.Render("FAULT")
	case !m.running:
		return statusPaused.Render("PAUSED")
	default:
		return statusRunning.Render("RUNNING")
	}
}

// drawGas projects the domain onto the canvas: walls as a rectangle, each
// disk as a filled circle. Screen y grows downward, so the domain is
// flipped vertically.
func (m Model) drawGas() {
	m.canvas.Clear()

	cw := float64(canvasWidth * 2)
	ch := float64(canvasHeight * 4)
	b := m.st.Bounds
	scale := math.Min((cw-2)/b.Width, (ch-2)/b.Height)

	w := int(b.Width * scale)
	h := int(b.Height * scale)
	ox := (int(cw) - w) / 2
	oy := (int(ch) - h) / 2

	m.canvas.DrawRect(ox, oy, ox+w, oy+h)

	for i := 0; i < m.st.N(); i++ {
		p := m.st.Pos[i]
		x := ox + int(p.X*scale)
		y := oy + int((b.Height-p.Y)*scale)
		m.canvas.FillCircle(x, y, int(m.st.Radius[i]*scale))
	}
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  N        - Single step (paused)     ║
║  R        - Reset simulation         ║
║  +        - Double steps per frame   ║
║  -        - Halve steps per frame    ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`
