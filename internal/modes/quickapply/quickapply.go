// internal/modes/quickapply/quickapply.go
//
// Application mode is the single-form mortgage calculator. Submitting the
// form opens a modal with a spinner while the score is computed in the
// background; the verdict replaces the spinner once it lands.

package quickapply

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/loanflow/internal/application"
	"github.com/kingrea/loanflow/internal/config"
	"github.com/kingrea/loanflow/internal/modes"
	"github.com/kingrea/loanflow/internal/workflow"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#667EEA"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).Width(60)
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#764BA2")).Padding(1, 2)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).MarginTop(1)
)

// scoreReadyMsg carries a background score back into the update loop.
type scoreReadyMsg struct {
	done workflow.Complete
}

// Mode handles the mortgage application demo
type Mode struct {
	modes.BaseMode
	controller *workflow.Controller
	state      workflow.State
	form       *modes.FormInputs
	spinner    spinner.Model
	delay      time.Duration
	opts       []workflow.Option
}

// Option customizes the mode, mainly for tests.
type Option func(*Mode)

// WithControllerOptions forwards options to the workflow controller.
func WithControllerOptions(opts ...workflow.Option) Option {
	return func(m *Mode) {
		m.opts = append(m.opts, opts...)
	}
}

// New creates a new application mode
func New(opts ...Option) *Mode {
	m := &Mode{
		BaseMode: modes.NewBaseMode(config.DemoApplication, "Mortgage Application"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// State exposes the current workflow state.
func (m *Mode) State() workflow.State {
	return m.state
}

// Init builds the delayed controller from the configured profile.
func (m *Mode) Init(ctx *modes.ModeContext) tea.Cmd {
	m.SetContext(ctx)
	cfg := m.Config()
	scorer := application.NewScorer(cfg.ApplicationProfile())
	m.controller = workflow.NewController(workflow.VariantDelayed, application.QuickFields(), scorer, m.opts...)
	m.state = m.controller.Initial()
	m.delay = cfg.SimulatedDelay()
	m.form = modes.NewFormInputs(application.QuickFields())
	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#764BA2"))
	m.SetStatusMsg("tab → next field    enter → calculate")
	return nil
}

// Update handles messages for the application mode
func (m *Mode) Update(msg tea.Msg) (modes.Mode, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.state.Pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case scoreReadyMsg:
		prev := m.state
		m.state, _ = m.controller.Update(m.state, msg.done)
		if _, moved := workflow.Diff(prev, m.state, msg.done); moved {
			m.LogInfo("Application · processing complete: score=%.2f status=%s run=%s", m.state.Result.Score, m.state.Result.Status, m.state.RunID)
			m.SetStatusMsg("enter/c → close")
		} else {
			m.LogWarn("Application · dropped result for stale run %s", msg.done.RunID)
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Mode) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.state.Screen {
	case workflow.ScreenInput:
		switch msg.String() {
		case "tab", "down":
			return m.form.Next()
		case "shift+tab", "up":
			return m.form.Prev()
		case "enter":
			return m.submit()
		}
		change, changed, cmd := m.form.Update(msg)
		if changed {
			m.state, _ = m.controller.Update(m.state, workflow.EditField{Field: change.Field, Value: change.Value})
		}
		return cmd
	case workflow.ScreenReview:
		switch msg.String() {
		case "enter", "c":
			m.state, _ = m.controller.Update(m.state, workflow.Restart{})
			m.LogInfo("Application · modal closed")
			m.SetStatusMsg("tab → next field    enter → calculate")
			return m.form.Reset()
		}
	}
	return nil
}

// submit validates silently: an incomplete form simply does nothing.
func (m *Mode) submit() tea.Cmd {
	next, effect := m.controller.Update(m.state, workflow.Submit{})
	m.state = next
	if effect != workflow.EffectScheduleScore {
		return nil
	}
	m.LogInfo("Application · submitted run %s, scoring in %s", next.RunID, m.delay)
	m.SetStatusMsg("Calculating...")
	return tea.Batch(m.spinner.Tick, m.scheduleScore(next))
}

func (m *Mode) scheduleScore(s workflow.State) tea.Cmd {
	controller := m.controller
	snapshot := s
	snapshot.Form = s.Form.Clone()
	return tea.Tick(m.delay, func(time.Time) tea.Msg {
		return scoreReadyMsg{done: controller.Score(snapshot)}
	})
}

// View renders the form and, once submitted, the modal above it
func (m *Mode) View() string {
	form := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Mortgage application"),
		subtitleStyle.Render("Submit your information to find out if you qualify for a mortgage."),
		"",
		cardStyle.Render(m.form.View(m.state.Form, false)+hintStyle.Render("enter → Calculate")),
	)
	if m.state.Screen == workflow.ScreenInput {
		return form
	}
	return lipgloss.JoinVertical(lipgloss.Left, form, "", modalStyle.Render(m.renderModal()))
}

func (m *Mode) renderModal() string {
	switch m.state.Screen {
	case workflow.ScreenProcessing:
		return fmt.Sprintf("%s Calculating your result...", m.spinner.View())
	case workflow.ScreenReview:
		return strings.Join([]string{
			titleStyle.Render("Processing Complete"),
			"",
			Verdict(m.state.Result),
			hintStyle.Render("enter → Close"),
		}, "\n")
	default:
		return "Something went wrong."
	}
}

// Verdict phrases a result the way the modal shows it.
func Verdict(res *application.Result) string {
	if res == nil {
		return "Something went wrong."
	}
	advice := "do not qualify"
	if res.Approved {
		advice = "qualify"
	}
	return fmt.Sprintf("Based on our model, you %s for a mortgage (score %.2f, %s).", advice, res.Score, res.Status)
}
