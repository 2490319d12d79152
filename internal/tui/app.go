// internal/tui/app.go
//
// This is the main TUI for loanflow.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The App itself only owns the demo menu; each demo is a modes.Mode that
// keeps its own state for as long as the program runs.

package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/loanflow/internal/config"
	"github.com/kingrea/loanflow/internal/logbook"
	"github.com/kingrea/loanflow/internal/modes"
	"github.com/kingrea/loanflow/internal/modes/counter"
	"github.com/kingrea/loanflow/internal/modes/quickapply"
	"github.com/kingrea/loanflow/internal/modes/review"
	"github.com/kingrea/loanflow/internal/modes/tabs"
)

// appState represents which "screen" we're on
type appState int

const (
	stateMainMenu appState = iota // Demo picker
	stateDemo                     // Running one of the demos
)

const logPanelLines = 6

// ModeFactory builds a fresh demo.
type ModeFactory func() modes.Mode

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithModeFactory replaces the factory behind a demo id.
func WithModeFactory(id string, factory ModeFactory) AppOption {
	return func(a *App) {
		if factory == nil {
			return
		}
		for i := range a.catalog {
			if a.catalog[i].id == id {
				a.catalog[i].build = factory
			}
		}
	}
}

// demoOption implements list.Item for the main menu
type demoOption struct {
	id    string
	title string
	desc  string
	build ModeFactory
}

func (o demoOption) Title() string       { return o.title }
func (o demoOption) Description() string { return o.desc }
func (o demoOption) FilterValue() string { return o.title }

func defaultCatalog() []demoOption {
	return []demoOption{
		{
			id:    config.DemoReview,
			title: "Mortgage Review Workflow",
			desc:  "Client → Bank → Regulator, one screen at a time",
			build: func() modes.Mode { return review.New() },
		},
		{
			id:    config.DemoApplication,
			title: "Mortgage Application",
			desc:  "Single form with a simulated background calculation",
			build: func() modes.Mode { return quickapply.New() },
		},
		{
			id:    config.DemoCounter,
			title: "Three-State Example",
			desc:  "Count, name and flag with a change effect",
			build: func() modes.Mode { return counter.New() },
		},
		{
			id:    config.DemoTabs,
			title: "Tabbed Navigation",
			desc:  "Home, Settings and Stats tabs",
			build: func() modes.Mode { return tabs.New() },
		},
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state   appState
	config  *config.Config
	logbook *logbook.Logbook
	modeCtx *modes.ModeContext

	catalog []demoOption
	opened  map[string]modes.Mode
	active  string

	// UI components
	mainMenu  list.Model
	statusMsg string

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// NewApp creates a new App for the given project directory.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	lb, err := logbook.New(cfg.JourneyLogPath())
	if err != nil {
		return nil, err
	}
	lb.Info("Session opened · default demo: %s", cfg.DefaultDemo())
	return newApp(cfg, lb, opts...), nil
}

func newApp(cfg *config.Config, lb *logbook.Logbook, opts ...AppOption) *App {
	app := &App{
		state:   stateMainMenu,
		config:  cfg,
		logbook: lb,
		modeCtx: &modes.ModeContext{Config: cfg, Logbook: lb},
		catalog: defaultCatalog(),
		opened:  map[string]modes.Mode{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}

	items := make([]list.Item, len(app.catalog))
	for i := range app.catalog {
		items[i] = app.catalog[i]
	}
	mainMenu := list.New(items, list.NewDefaultDelegate(), 80, 20)
	mainMenu.Title = "⬡ DEMOS"
	mainMenu.SetShowStatusBar(false)
	mainMenu.SetFilteringEnabled(false)
	mainMenu.KeyMap.Quit.SetEnabled(false)
	if idx := app.catalogIndex(cfg.DefaultDemo()); idx >= 0 {
		mainMenu.Select(idx)
	}
	app.mainMenu = mainMenu
	app.statusMsg = "Enter → open demo    q → quit"
	return app
}

func (a *App) catalogIndex(id string) int {
	target := strings.ToLower(strings.TrimSpace(id))
	for i, option := range a.catalog {
		if option.id == target {
			return i
		}
	}
	return -1
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logError(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Error(format, args...)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("loanflow")
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.mainMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-12))
		return a, a.broadcast(a.modeSize())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			a.logInfo("Session closed")
			return a, tea.Quit
		case "q":
			if a.state == stateMainMenu {
				a.logInfo("Session closed")
				return a, tea.Quit
			}
		case "esc":
			if a.state != stateMainMenu {
				return a.returnToMainMenu()
			}
		case "enter":
			if a.state == stateMainMenu {
				return a.openSelectedDemo()
			}
		}

		switch a.state {
		case stateMainMenu:
			var cmd tea.Cmd
			a.mainMenu, cmd = a.mainMenu.Update(msg)
			return a, cmd
		case stateDemo:
			mode, ok := a.opened[a.active]
			if !ok {
				return a, nil
			}
			next, cmd := mode.Update(msg)
			a.opened[a.active] = next
			return a, cmd
		}
		return a, nil
	}

	// Everything that is not a key press is background traffic (ticks,
	// finished computations) and goes to every opened demo.
	var cmds []tea.Cmd
	if a.state == stateMainMenu {
		var cmd tea.Cmd
		a.mainMenu, cmd = a.mainMenu.Update(msg)
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, a.broadcast(msg))
	return a, tea.Batch(cmds...)
}

func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for id, mode := range a.opened {
		next, cmd := mode.Update(msg)
		a.opened[id] = next
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (a *App) modeSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: max(20, a.width-6), Height: max(10, a.height-12)}
}

// openSelectedDemo opens (or resumes) the demo highlighted in the menu.
func (a *App) openSelectedDemo() (tea.Model, tea.Cmd) {
	item, ok := a.mainMenu.SelectedItem().(demoOption)
	if !ok {
		return a, nil
	}
	return a.openDemo(item.id)
}

func (a *App) openDemo(id string) (tea.Model, tea.Cmd) {
	idx := a.catalogIndex(id)
	if idx < 0 {
		a.statusMsg = fmt.Sprintf("Unknown demo %q", id)
		return a, nil
	}
	option := a.catalog[idx]
	a.logInfo("Menu · %s selected", option.title)
	if err := a.config.SetDefaultDemo(option.id); err != nil {
		a.logError("Saving default demo failed: %v", err)
	}

	var cmds []tea.Cmd
	mode, ok := a.opened[option.id]
	if !ok {
		mode = option.build()
		cmds = append(cmds, mode.Init(a.modeCtx))
		if a.width > 0 {
			var sizeCmd tea.Cmd
			mode, sizeCmd = mode.Update(a.modeSize())
			cmds = append(cmds, sizeCmd)
		}
		a.opened[option.id] = mode
	}
	a.active = option.id
	a.state = stateDemo
	return a, tea.Batch(cmds...)
}

// returnToMainMenu transitions back to the main menu. Opened demos keep
// their state.
func (a *App) returnToMainMenu() (tea.Model, tea.Cmd) {
	a.state = stateMainMenu
	a.logInfo("Returned to main menu")
	a.statusMsg = "Enter → open demo    q → quit"
	return a, nil
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	var content, status string
	switch a.state {
	case stateMainMenu:
		content = a.mainMenu.View()
		status = a.statusMsg
	case stateDemo:
		if mode, ok := a.opened[a.active]; ok {
			content = mode.View()
			status = mode.StatusMsg() + "    esc → menu"
		}
	}
	return a.renderFrame(content, status, width)
}

func (a *App) renderFrame(content, status string, width int) string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginBottom(1).
		Render(a.headerTitle())
	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(20, width-4)).
		Render(content)
	sections := []string{header, body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(status)
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

func (a *App) headerTitle() string {
	if a.state == stateDemo {
		if idx := a.catalogIndex(a.active); idx >= 0 {
			return fmt.Sprintf("⬡ LOANFLOW · %s", a.catalog[idx].title)
		}
	}
	return "⬡ LOANFLOW"
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines, total := a.logbook.Tail(logPanelLines)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s (%d entries)", fileName, total))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}
