// internal/modes/review/review.go
//
// Review mode walks one mortgage request through three desks:
// the client fills in the form, the bank scores it, the regulator reviews
// the outcome. All three panels stay on screen; the active one is wide and
// the others collapse to a title.

package review

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/loanflow/internal/application"
	"github.com/kingrea/loanflow/internal/config"
	"github.com/kingrea/loanflow/internal/modes"
	"github.com/kingrea/loanflow/internal/workflow"
)

var (
	clientColor    = lipgloss.Color("#764BA2")
	bankColor      = lipgloss.Color("#11998E")
	regulatorColor = lipgloss.Color("#F5576C")

	stepStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).Italic(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).MarginTop(1)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	debugStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
)

// Mode is the client → bank → regulator workflow.
type Mode struct {
	modes.BaseMode
	controller  *workflow.Controller
	state       workflow.State
	form        *modes.FormInputs
	showMissing bool
	debug       bool
	opts        []workflow.Option
}

// Option customizes the mode, mainly for tests.
type Option func(*Mode)

// WithControllerOptions forwards options to the workflow controller.
func WithControllerOptions(opts ...workflow.Option) Option {
	return func(m *Mode) {
		m.opts = append(m.opts, opts...)
	}
}

// New creates a new review mode
func New(opts ...Option) *Mode {
	m := &Mode{
		BaseMode: modes.NewBaseMode(config.DemoReview, "Mortgage Review Workflow"),
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

// Init builds the controller from the configured scoring profile.
func (m *Mode) Init(ctx *modes.ModeContext) tea.Cmd {
	m.SetContext(ctx)
	scorer := application.NewScorer(m.Config().ReviewProfile())
	m.controller = workflow.NewController(workflow.VariantManual, application.ReviewFields(), scorer, m.opts...)
	m.state = m.controller.Initial()
	m.form = modes.NewFormInputs(application.ReviewFields())
	m.logScreen()
	m.refreshStatus()
	return nil
}

// Update handles messages for the review mode
func (m *Mode) Update(msg tea.Msg) (modes.Mode, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Mode) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+d":
		m.debug = !m.debug
		return nil
	case "ctrl+r":
		return m.apply(workflow.Restart{})
	}

	switch m.state.Screen {
	case workflow.ScreenInput:
		switch msg.String() {
		case "tab", "down":
			return m.form.Next()
		case "shift+tab", "up":
			return m.form.Prev()
		case "enter":
			if !m.form.OnLastField() && !m.state.CanSubmit() {
				return m.form.Next()
			}
			return m.apply(workflow.Submit{})
		}
		change, changed, cmd := m.form.Update(msg)
		if changed {
			m.apply(workflow.EditField{Field: change.Field, Value: change.Value})
		}
		return cmd
	case workflow.ScreenProcessing:
		switch msg.String() {
		case "p":
			return m.apply(workflow.Process{})
		case "s":
			return m.apply(workflow.Send{})
		case "enter":
			if m.state.HasResult() {
				return m.apply(workflow.Send{})
			}
			return m.apply(workflow.Process{})
		}
	case workflow.ScreenReview:
		switch msg.String() {
		case "r", "enter":
			return m.apply(workflow.Restart{})
		}
	}
	return nil
}

func (m *Mode) apply(action workflow.Action) tea.Cmd {
	prev := m.state
	m.state, _ = m.controller.Update(m.state, action)
	next := m.state

	var cmd tea.Cmd
	switch action.(type) {
	case workflow.Submit:
		m.showMissing = next.Screen == workflow.ScreenInput
	case workflow.Process:
		if !prev.HasResult() && next.HasResult() {
			m.LogInfo("Review · processing complete: score=%.2f status=%s run=%s", next.Result.Score, next.Result.Status, next.RunID)
		}
	case workflow.Send:
		if next.Screen == workflow.ScreenReview {
			m.LogInfo("Review · sending run %s to regulator", next.RunID)
		}
	case workflow.Restart:
		m.showMissing = false
		m.LogInfo("Review · restarting workflow")
		cmd = m.form.Reset()
	}

	if tr, ok := workflow.Diff(prev, next, action); ok {
		m.LogInfo("Review · screen %s → %s (%s)", tr.From, tr.To, tr.Action)
	}
	m.refreshStatus()
	return cmd
}

func (m *Mode) logScreen() {
	m.LogInfo("Review · current screen: %s", m.state.Screen)
}

func (m *Mode) refreshStatus() {
	switch m.state.Screen {
	case workflow.ScreenInput:
		if m.showMissing {
			m.SetStatusMsg("Missing: " + strings.Join(application.MissingFields(m.state.Form), ", "))
			return
		}
		m.SetStatusMsg("tab → next field    enter → submit to bank")
	case workflow.ScreenProcessing:
		if m.state.HasResult() {
			m.SetStatusMsg("s/enter → send to regulator")
			return
		}
		m.SetStatusMsg("p/enter → process input")
	case workflow.ScreenReview:
		m.SetStatusMsg("r/enter → start new review")
	}
}

// View renders the three desks side by side
func (m *Mode) View() string {
	width := m.Width()
	if width <= 0 {
		width = 100
	}
	narrow := max(14, width/10)
	wide := max(30, width-2*narrow-12)

	panels := make([]string, 0, len(workflow.ScreenOrder))
	for _, screen := range workflow.ScreenOrder {
		active := screen == m.state.Screen
		w := narrow
		if active {
			w = wide
		}
		panels = append(panels, m.renderPanel(screen, active, w))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, panels...)
	if m.debug {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.renderDebug())
	}
	return body
}

func (m *Mode) renderPanel(screen workflow.Screen, active bool, width int) string {
	pos, total := screen.Step()
	color := panelColor(screen)
	var lines []string
	lines = append(lines, stepStyle.Render(fmt.Sprintf("Step %d of %d", pos, total)))
	if active {
		lines = append(lines,
			lipgloss.NewStyle().Bold(true).Foreground(color).Render(screen.FriendlyName()),
			subtitleStyle.Render(subtitle(screen)),
			"",
			m.renderBody(screen),
		)
	} else {
		lines = append(lines,
			lipgloss.NewStyle().Bold(true).Foreground(color).Render(screen.ShortName()),
			"",
			mutedStyle.Render(m.inactiveMessage(screen)),
		)
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(width)
	if !active {
		style = style.Faint(true)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m *Mode) renderBody(screen workflow.Screen) string {
	switch screen {
	case workflow.ScreenInput:
		return m.form.View(m.state.Form, m.showMissing) + hintStyle.Render("enter → Submit to Bank")
	case workflow.ScreenProcessing:
		if !m.state.HasResult() {
			return strings.Join([]string{
				fmt.Sprintf("Application from %s is waiting to be scored.", displayName(m.state.Form.Get(application.FieldName))),
				hintStyle.Render("p → Process input"),
			}, "\n")
		}
		res := m.state.Result
		return strings.Join([]string{
			okStyle.Render("✓ Processing Complete!"),
			"",
			fmt.Sprintf("Name:   %s", res.Fields[application.FieldName]),
			fmt.Sprintf("Score:  %.2f", res.Score),
			fmt.Sprintf("Status: %s", res.Status),
			hintStyle.Render("s → Send to Regulator"),
		}, "\n")
	case workflow.ScreenReview:
		res := m.state.Result
		if res == nil {
			return mutedStyle.Render("Awaiting results")
		}
		approved := "no"
		if res.Approved {
			approved = "yes"
		}
		return strings.Join([]string{
			"Processing Results",
			"",
			fmt.Sprintf("Applicant:  %s", res.Fields[application.FieldName]),
			fmt.Sprintf("Mortgage:   $%s", res.Fields[application.FieldMortgage]),
			fmt.Sprintf("Score:      %.2f", res.Score),
			fmt.Sprintf("Status:     %s", res.Status),
			fmt.Sprintf("Approved:   %s", approved),
			fmt.Sprintf("Reference:  %s", res.ID),
			hintStyle.Render("r → Start New Review"),
		}, "\n")
	default:
		return ""
	}
}

func (m *Mode) inactiveMessage(screen workflow.Screen) string {
	switch screen {
	case workflow.ScreenInput:
		return "Waiting..."
	case workflow.ScreenProcessing:
		return "Awaiting data"
	case workflow.ScreenReview:
		if m.state.HasResult() {
			return "Review pending"
		}
		return "Awaiting results"
	default:
		return ""
	}
}

func (m *Mode) renderDebug() string {
	fields := m.state.Form.Snapshot()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%q", k, fields[k]))
	}
	result := "none"
	if r := m.state.Result; r != nil {
		result = fmt.Sprintf("score=%.2f status=%s approved=%t", r.Score, r.Status, r.Approved)
	}
	return debugStyle.Render(strings.Join([]string{
		"Debug",
		fmt.Sprintf("current_screen %s", m.state.Screen),
		fmt.Sprintf("client_data {%s}", strings.Join(pairs, " ")),
		fmt.Sprintf("result %s", result),
	}, "\n"))
}

func subtitle(screen workflow.Screen) string {
	switch screen {
	case workflow.ScreenInput:
		return "Please enter your details"
	case workflow.ScreenProcessing:
		return "Analyzing submitted data..."
	case workflow.ScreenReview:
		return "Verification of correctness"
	default:
		return ""
	}
}

func panelColor(screen workflow.Screen) lipgloss.Color {
	switch screen {
	case workflow.ScreenProcessing:
		return bankColor
	case workflow.ScreenReview:
		return regulatorColor
	default:
		return clientColor
	}
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "the client"
	}
	return name
}
