// Package tui shows a running simulation as a top-down view of the x/y
// plane, redrawn at every snapshot.
package tui

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/sim"
)

const (
	width    = 70
	height   = 22
	trailLen = 60
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	frame  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238"))
)

var markers = []rune{'O', '*', '@', '#', '%', '&'}

type SnapshotMsg sim.Snapshot

type DoneMsg struct {
	Result *sim.Result
	Err    error
}

type cell struct{ x, y int }

type Model struct {
	name   string
	steps  int
	names  []string
	scale  float64
	canvas [][]rune
	trails [][]cell

	last     *sim.Snapshot
	done     bool
	quitting bool
	err      error
}

// NewModel sizes the view so every initial body fits with some margin.
func NewModel(name string, steps int, initial []body.Body) Model {
	extent := 0.0
	names := make([]string, len(initial))
	for i, b := range initial {
		names[i] = b.Name
		extent = math.Max(extent, math.Max(math.Abs(b.Position.X), math.Abs(b.Position.Y)))
	}
	if extent == 0 {
		extent = 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return Model{
		name:   name,
		steps:  steps,
		names:  names,
		scale:  1.3 * extent,
		canvas: canvas,
		trails: make([][]cell, len(initial)),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	case SnapshotMsg:
		snap := sim.Snapshot(msg)
		m.last = &snap
		for i, b := range snap.Bodies {
			if i >= len(m.trails) {
				break
			}
			c := m.project(b)
			m.trails[i] = append(m.trails[i], c)
			if len(m.trails[i]) > trailLen {
				m.trails[i] = m.trails[i][1:]
			}
		}
	case DoneMsg:
		m.done = true
		m.err = msg.Err
		if msg.Result != nil && len(msg.Result.Final) > 0 {
			final := sim.Snapshot{Step: msg.Result.StepsTaken, Bodies: msg.Result.Final}
			if m.last != nil {
				final.Time = m.last.Time / float64(m.last.Step) * float64(final.Step)
			}
			m.last = &final
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) project(b body.Body) cell {
	// terminal cells are roughly twice as tall as wide
	x := width/2 + int(math.Round(b.Position.X/m.scale*float64(height)))
	y := height/2 - int(math.Round(b.Position.Y/m.scale*float64(height/2)))
	return cell{x, y}
}

func (m Model) clear() {
	for y := range m.canvas {
		for x := range m.canvas[y] {
			m.canvas[y][x] = ' '
		}
	}
}

func (m Model) set(c cell, r rune) {
	if c.x >= 0 && c.x < width && c.y >= 0 && c.y < height {
		m.canvas[c.y][c.x] = r
	}
}

func (m Model) View() string {
	m.clear()
	m.set(cell{width / 2, height / 2}, '+')
	for i, trail := range m.trails {
		for j, c := range trail {
			if j == len(trail)-1 {
				m.set(c, markers[i%len(markers)])
			} else {
				m.set(c, '.')
			}
		}
	}

	var b strings.Builder
	step, t := 0, 0.0
	if m.last != nil {
		step, t = m.last.Step, m.last.Time
	}
	b.WriteString(cyan.Render(m.name))
	b.WriteString(dim.Render(fmt.Sprintf("  step %d/%d  t=%.4gs", step, m.steps, t)))
	b.WriteString("\n")

	rows := make([]string, len(m.canvas))
	for i, row := range m.canvas {
		rows[i] = string(row)
	}
	b.WriteString(frame.Render(strings.Join(rows, "\n")))
	b.WriteString("\n")
	b.WriteString(progressBar(step, m.steps, width))
	b.WriteString("\n")

	for i, name := range m.names {
		line := fmt.Sprintf("  %c %s", markers[i%len(markers)], name)
		if m.last != nil && i < len(m.last.Bodies) {
			p := m.last.Bodies[i].Position
			line += dim.Render(fmt.Sprintf("  (%.3e, %.3e, %.3e) m", p.X, p.Y, p.Z))
		}
		b.WriteString(line + "\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(red.Render("failed: "+m.err.Error()) + "\n")
	case m.done:
		b.WriteString(green.Render("completed") + "\n")
	case m.quitting:
		b.WriteString(yellow.Render("stopping") + "\n")
	default:
		b.WriteString(dim.Render("q to stop") + "\n")
	}
	return b.String()
}

func progressBar(step, total, w int) string {
	if total <= 0 {
		return ""
	}
	filled := step * w / total
	if filled > w {
		filled = w
	}
	return green.Render(strings.Repeat("█", filled)) + dim.Render(strings.Repeat("░", w-filled))
}

// Run drives run on its own goroutine and renders the snapshots s produces.
// Quitting the view cancels the run.
func Run(ctx context.Context, s *sim.Simulation, run func(context.Context) (*sim.Result, error), opts ...tea.ProgramOption) (*sim.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg := s.Config()
	p := tea.NewProgram(NewModel(cfg.Name, cfg.Steps, s.Bodies()), opts...)
	s.AddObserver(sim.ObserverFunc(func(snap sim.Snapshot) {
		p.Send(SnapshotMsg(snap))
	}))

	done := make(chan DoneMsg, 1)
	go func() {
		res, err := run(ctx)
		msg := DoneMsg{Result: res, Err: err}
		done <- msg
		p.Send(msg)
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return nil, err
	}
	cancel()
	out := <-done
	return out.Result, out.Err
}
