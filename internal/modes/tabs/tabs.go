package tabs

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/loanflow/internal/config"
	"github.com/kingrea/loanflow/internal/modes"
)

// Tab identifies one page of the shell.
type Tab int

const (
	TabHome Tab = iota
	TabSettings
	TabStats
)

var tabOrder = []Tab{TabHome, TabSettings, TabStats}

func (t Tab) String() string {
	switch t {
	case TabHome:
		return "Home"
	case TabSettings:
		return "Settings"
	case TabStats:
		return "Stats"
	default:
		return "Unknown"
	}
}

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5B8DEF")).
			Padding(0, 2)
	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(0, 2)
	contentStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(1, 2)
)

// Mode is a static tabbed shell.
type Mode struct {
	modes.BaseMode
	active Tab
}

// New creates a new tabs mode
func New() *Mode {
	return &Mode{BaseMode: modes.NewBaseMode(config.DemoTabs, "Tabbed Navigation")}
}

// Active returns the selected tab.
func (m *Mode) Active() Tab {
	return m.active
}

func (m *Mode) Init(ctx *modes.ModeContext) tea.Cmd {
	m.SetContext(ctx)
	m.SetStatusMsg("←/→ or 1-3 → switch tab")
	return nil
}

func (m *Mode) Update(msg tea.Msg) (modes.Mode, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "right", "l":
			m.selectTab(tabOrder[(int(m.active)+1)%len(tabOrder)])
		case "left", "h":
			m.selectTab(tabOrder[(int(m.active)-1+len(tabOrder))%len(tabOrder)])
		case "1":
			m.selectTab(TabHome)
		case "2":
			m.selectTab(TabSettings)
		case "3":
			m.selectTab(TabStats)
		}
	}
	return m, nil
}

func (m *Mode) selectTab(t Tab) {
	if t == m.active {
		return
	}
	m.active = t
	m.LogInfo("Tabs · %s selected", t)
}

func (m *Mode) View() string {
	labels := make([]string, 0, len(tabOrder))
	for _, t := range tabOrder {
		if t == m.active {
			labels = append(labels, activeTabStyle.Render(t.String()))
		} else {
			labels = append(labels, tabStyle.Render(t.String()))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, labels...)
	return lipgloss.JoinVertical(lipgloss.Left, bar, contentStyle.Render(content(m.active)))
}

func content(t Tab) string {
	var body string
	switch t {
	case TabHome:
		body = "This is the home tab. Put your dashboard stuff here."
	case TabSettings:
		body = "These settings do absolutely nothing. Yet."
	case TabStats:
		body = "Stats go here. (Charts, metrics, numbers, etc.)"
	}
	return strings.Join([]string{lipgloss.NewStyle().Bold(true).Render(t.String()), "", body}, "\n")
}
