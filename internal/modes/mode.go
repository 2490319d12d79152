// internal/modes/mode.go
//
// Defines the Mode interface that every demo implements.
// Each mode owns its state and is driven by the App's bubbletea loop.

package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/loanflow/internal/config"
	"github.com/kingrea/loanflow/internal/logbook"
)

// ModeContext provides shared context for all modes
type ModeContext struct {
	Config  *config.Config
	Logbook *logbook.Logbook
}

// Mode defines the interface that all demos must implement
type Mode interface {
	// ID returns the demo identifier used in config.yaml
	ID() string

	// Name returns the mode's display name
	Name() string

	// Init initializes the mode and returns a startup command
	Init(ctx *ModeContext) tea.Cmd

	// Update handles messages and returns the updated mode plus any commands.
	// Key messages only reach the active mode; everything else is delivered
	// to every mode that has been opened, so background work still lands
	// after the user switches away.
	Update(msg tea.Msg) (Mode, tea.Cmd)

	// View renders the mode's current state
	View() string

	// StatusMsg returns a one-line hint for the footer
	StatusMsg() string
}

// BaseMode provides common functionality for all modes
type BaseMode struct {
	ctx       *ModeContext
	id        string
	name      string
	statusMsg string
	width     int
	height    int
}

// NewBaseMode creates a new BaseMode with the given id and name
func NewBaseMode(id, name string) BaseMode {
	return BaseMode{id: id, name: name}
}

// ID returns the demo identifier
func (m *BaseMode) ID() string {
	return m.id
}

// Name returns the mode's display name
func (m *BaseMode) Name() string {
	return m.name
}

// Context returns the mode context
func (m *BaseMode) Context() *ModeContext {
	return m.ctx
}

// SetContext sets the mode context
func (m *BaseMode) SetContext(ctx *ModeContext) {
	m.ctx = ctx
}

// StatusMsg returns the current status message
func (m *BaseMode) StatusMsg() string {
	return m.statusMsg
}

// SetStatusMsg sets the status message
func (m *BaseMode) SetStatusMsg(msg string) {
	m.statusMsg = msg
}

// SetSize records the space available to the mode.
func (m *BaseMode) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Width returns the last width reported by the terminal.
func (m *BaseMode) Width() int {
	return m.width
}

// Height returns the last height reported by the terminal.
func (m *BaseMode) Height() int {
	return m.height
}

// Config returns the shared configuration, or the built-in defaults.
func (m *BaseMode) Config() *config.Config {
	if m.ctx == nil || m.ctx.Config == nil {
		return config.Default()
	}
	return m.ctx.Config
}

// LogInfo appends an informational logbook entry when a logbook is wired.
func (m *BaseMode) LogInfo(format string, args ...any) {
	if m.ctx == nil || m.ctx.Logbook == nil {
		return
	}
	m.ctx.Logbook.Info(format, args...)
}

// LogWarn appends a warning logbook entry when a logbook is wired.
func (m *BaseMode) LogWarn(format string, args ...any) {
	if m.ctx == nil || m.ctx.Logbook == nil {
		return
	}
	m.ctx.Logbook.Warn(format, args...)
}
