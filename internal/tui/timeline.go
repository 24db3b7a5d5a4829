// Package tui implements the live terminal timeline for a crewplan project.
package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/crewtide/crewplan/internal/config"
	"github.com/crewtide/crewplan/internal/member"
	"github.com/crewtide/crewplan/internal/output"
	"github.com/crewtide/crewplan/internal/plan"
)

// ReloadMsg asks the model to re-read the plan file (sent by the watcher).
type ReloadMsg struct{}

// layout constants
const (
	chromeLines = 4 // title + axis labels + ruler + status bar
	sideMargin  = 4
)

var (
	titleBarStyle  = lipgloss.NewStyle().Bold(true)
	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Timeline is the top-level bubbletea model.
type Timeline struct {
	cfg      *config.Config
	reg      *member.Registry
	view     plan.View
	width    int
	height   int
	showSubs bool
	err      error
}

// NewTimeline creates the model and performs the initial plan load.
func NewTimeline(cfg *config.Config) *Timeline {
	m := &Timeline{
		cfg:      cfg,
		reg:      cfg.Registry(),
		showSubs: cfg.TUI.ShowSubtasks,
	}
	m.load()
	return m
}

// WatchPaths returns the directories the file watcher should monitor.
func (m *Timeline) WatchPaths() []string {
	return []string{m.cfg.Dir()}
}

func (m *Timeline) load() {
	store, err := plan.Load(m.cfg.PlanPath(), m.reg)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.view = store.Snapshot()
}

// Init implements tea.Model.
func (m *Timeline) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Timeline) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case ReloadMsg:
		m.load()
		return m, nil
	}
	return m, nil
}

func (m *Timeline) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return m, tea.Quit
	}
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "s":
		m.showSubs = !m.showSubs
	case "r":
		m.load()
	}
	return m, nil
}

// View implements tea.Model.
func (m *Timeline) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleBarStyle.Render(m.cfg.Project.Name))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
	} else {
		var chart bytes.Buffer
		output.Gantt(&chart, m.view, m.reg, output.GanttOptions{
			Width:        m.width - sideMargin,
			ShowSubtasks: m.showSubs,
		})
		b.WriteString(m.clampHeight(chart.String()))
	}

	b.WriteString("\n")
	b.WriteString(statusBarStyle.Render("s: subtasks  r: reload  q: quit"))
	return b.String()
}

// clampHeight trims the chart to the visible rows so resizes never wrap.
func (m *Timeline) clampHeight(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	limit := m.height - chromeLines
	if limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	return strings.Join(lines, "\n") + "\n"
}
