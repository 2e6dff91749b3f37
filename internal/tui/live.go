// Package tui is an interactive playback viewer for finished results.
// It steps through the rows of a result frame, charting one column at a
// time with the rest shown as a live value table.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/quantsim/internal/quantity"
)

const (
	chartWidth  = 64
	chartHeight = 12
	maxSpeed    = 16
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(20)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the bubbletea model. It never mutates the result it plays.
type Model struct {
	name    string
	result  quantity.Frame
	columns []string

	selected int
	head     int
	playing  bool
	speed    int
}

func NewModel(name string, result quantity.Frame) Model {
	return Model{
		name:    name,
		result:  result,
		columns: result.Columns(),
		playing: true,
		speed:   1,
	}
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "p":
			m.playing = !m.playing
		case "r":
			m.head = 0
			m.playing = true
		case "tab":
			if len(m.columns) > 0 {
				m.selected = (m.selected + 1) % len(m.columns)
			}
		case "shift+tab":
			if len(m.columns) > 0 {
				m.selected = (m.selected + len(m.columns) - 1) % len(m.columns)
			}
		case "[":
			m.playing = false
			m.scrub(-1)
		case "]":
			m.playing = false
			m.scrub(1)
		case "+", "=":
			if m.speed < maxSpeed {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 1 {
				m.speed /= 2
			}
		}
	case TickMsg:
		if m.playing {
			m.scrub(m.speed)
			if m.head == m.result.Duration()-1 {
				m.playing = false
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) scrub(rows int) {
	m.head += rows
	if m.head < 0 {
		m.head = 0
	}
	if last := m.result.Duration() - 1; m.head > last {
		m.head = last
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")

	status := "PAUSED"
	if m.playing {
		status = fmt.Sprintf("PLAYING x%d", m.speed)
	}
	b.WriteString(fmt.Sprintf("%s  row %d/%d\n", status, m.head+1, m.result.Duration()))

	if len(m.columns) > 0 {
		col := m.columns[m.selected]
		b.WriteString(graphStyle.Render(m.chart(col)) + "\n")
	}

	for i, col := range m.columns {
		line := labelStyle.Render(col) + valueStyle.Render(fmt.Sprintf("%.6g", m.result[col][m.head]))
		if i == m.selected {
			line = activeStyle.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(helpStyle.Render("space:pause  [ ]:scrub  tab:column  +/-:speed  r:rewind  q:quit"))
	return b.String()
}

// chart plots the selected column up to the playback head, windowed to
// the chart width so long runs scroll instead of squashing.
func (m Model) chart(col string) string {
	series := m.result[col]
	start := m.head + 1 - chartWidth
	if start < 0 {
		start = 0
	}
	window := series[start : m.head+1]
	if len(window) < 2 {
		return fmt.Sprintf("%s = %.6g", col, window[len(window)-1])
	}
	return asciigraph.Plot(window,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Caption(col),
	)
}
