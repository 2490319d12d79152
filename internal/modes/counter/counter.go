// internal/modes/counter/counter.go
//
// Counter mode demonstrates three independent pieces of state and an
// effect that runs whenever any of them changes.

package counter

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/loanflow/internal/config"
	"github.com/kingrea/loanflow/internal/modes"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	rowStyle     = lipgloss.NewStyle().MarginBottom(1)
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	childStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#5B8DEF")).Padding(0, 1)
)

// Values is the observable state of the demo.
type Values struct {
	Count int
	Name  string
	Flag  bool
}

// Mode handles the three-state demo
type Mode struct {
	modes.BaseMode
	values  Values
	effects int
}

// New creates a new counter mode
func New() *Mode {
	return &Mode{
		BaseMode: modes.NewBaseMode(config.DemoCounter, "Three-State Example"),
		values:   Values{Name: "Alice"},
	}
}

// Values returns the current state.
func (m *Mode) Values() Values {
	return m.values
}

// EffectRuns reports how often the change effect has fired.
func (m *Mode) EffectRuns() int {
	return m.effects
}

// Init runs the effect once, as it would on mount
func (m *Mode) Init(ctx *modes.ModeContext) tea.Cmd {
	m.SetContext(ctx)
	m.SetStatusMsg("+/- count    b/c name    t toggle flag")
	m.runEffect()
	return nil
}

// Update handles messages for the counter mode
func (m *Mode) Update(msg tea.Msg) (modes.Mode, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		before := m.values
		switch msg.String() {
		case "+", "=":
			m.values.Count++
		case "-", "_":
			m.values.Count--
		case "b":
			m.values.Name = "Bob"
		case "c":
			m.values.Name = "Carol"
		case "t", " ":
			m.values.Flag = !m.values.Flag
		}
		if m.values != before {
			m.runEffect()
		}
	}
	return m, nil
}

func (m *Mode) runEffect() {
	m.effects++
	m.LogInfo("Effect ran: count=%d, name=%s, flag=%t", m.values.Count, m.values.Name, m.values.Flag)
}

// View renders the counter mode
func (m *Mode) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		headingStyle.Render("Three-State Example"),
		"",
		rowStyle.Render(fmt.Sprintf("Count: %d  %s", m.values.Count, keyStyle.Render("[+] [-]"))),
		rowStyle.Render(fmt.Sprintf("Name: %s  %s", m.values.Name, keyStyle.Render("[b] Set Bob  [c] Set Carol"))),
		rowStyle.Render(fmt.Sprintf("Flag: %t  %s", m.values.Flag, keyStyle.Render("[t] Toggle"))),
		childStyle.Render(child(m.values.Count)),
	)
}

// child is the nested component: it only sees the count it is handed.
func child(n int) string {
	return fmt.Sprintf("hi %d", n+1)
}
