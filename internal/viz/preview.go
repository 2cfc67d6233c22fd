package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/physgen/gravgen/internal/scenario"
	"github.com/physgen/gravgen/internal/sim"
)

const (
	canvasWidth  = 60
	canvasHeight = 24
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model plays back one precomputed trajectory in the terminal. The
// simulation is already finished when the model starts, playback only
// moves a cursor through the sample sequence.
type Model struct {
	sc           scenario.Scenario
	traj         sim.Trajectory
	dt           float64
	radiusMeters float64
	engine       string

	canvas  *Canvas
	frame   int
	playing bool
	heights []float64
}

func NewModel(sc scenario.Scenario, traj sim.Trajectory, dt, radiusMeters float64, engine string) Model {
	heights := make([]float64, len(traj))
	for i, s := range traj {
		heights[i] = s.Height
	}
	return Model{
		sc:           sc,
		traj:         traj,
		dt:           dt,
		radiusMeters: radiusMeters,
		engine:       engine,
		canvas:       NewCanvas(canvasWidth, canvasHeight),
		playing:      true,
		heights:      heights,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Duration(m.dt*float64(time.Second)), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "r":
			m.frame = 0
			m.playing = true
		case "[":
			m.playing = false
			if m.frame > 0 {
				m.frame--
			}
		case "]":
			m.playing = false
			if m.frame < len(m.traj)-1 {
				m.frame++
			}
		}
	case TickMsg:
		if m.playing {
			m.frame++
			if m.frame >= len(m.traj) {
				m.frame = 0
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// draw paints the ground and the ball for the current frame. Vertical
// scale fits the trajectory's peak so the whole arc stays on screen.
func (m *Model) draw() {
	m.canvas.Clear()
	dw, dh := m.canvas.DotWidth(), m.canvas.DotHeight()

	groundY := dh - 3
	m.canvas.DrawLine(0, groundY, dw-1, groundY)

	peak := m.radiusMeters
	for _, s := range m.traj {
		if s.Height > peak {
			peak = s.Height
		}
	}
	scale := float64(groundY-4) / (peak + 2*m.radiusMeters)

	s := m.traj[m.frame]
	ballR := int(m.radiusMeters * scale)
	if ballR < 1 {
		ballR = 1
	}
	ballY := groundY - ballR - int(s.Height*scale)
	m.canvas.FillCircle(dw/2, ballY, ballR)
}

func (m Model) View() string {
	if len(m.traj) == 0 {
		return "no trajectory\n"
	}
	m.draw()

	s := m.traj[m.frame]
	status := "PLAYING"
	if !m.playing {
		status = "PAUSED"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("GRAVITY PREVIEW") + "\n")
	b.WriteString(status + "\n\n")

	if m.frame > 1 {
		chart := asciigraph.Plot(m.heights[:m.frame+1],
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Height"))
		b.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	b.WriteString(labelStyle.Render("Engine") + valueStyle.Render(m.engine) + "\n")
	b.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d/%d", m.frame+1, len(m.traj))) + "\n")
	b.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", float64(m.frame)*m.dt)) + "\n")
	b.WriteString(labelStyle.Render("Height") + valueStyle.Render(fmt.Sprintf("%.2f m", s.Height)) + "\n")
	b.WriteString(labelStyle.Render("Velocity") + valueStyle.Render(fmt.Sprintf("%+.2f m/s", s.Velocity)) + "\n")
	b.WriteString(labelStyle.Render("Gravity") + valueStyle.Render(fmt.Sprintf("%.2f m/s²", m.sc.Gravity)) + "\n")
	if s.Settled(m.radiusMeters) {
		b.WriteString(labelStyle.Render("State") + valueStyle.Render("settled") + "\n")
	} else {
		b.WriteString(labelStyle.Render("State") + valueStyle.Render("in flight") + "\n")
	}

	b.WriteString(helpStyle.Render("\n──────────────────────\nSP:Pause R:Replay Q:Quit\n[ ]:Step frames"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(b.String()))
}
