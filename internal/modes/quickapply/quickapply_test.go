package quickapply

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/loanflow/internal/application"
	"github.com/kingrea/loanflow/internal/config"
	"github.com/kingrea/loanflow/internal/modes"
	"github.com/kingrea/loanflow/internal/workflow"
)

func newFastConfig(t *testing.T) *config.Config {
	t.Helper()
	projectDir := t.TempDir()
	stateDir := filepath.Join(projectDir, config.StateDir)
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(stateDir, "config.yaml"), []byte("simulated_delay: 1ms\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func typeText(m *Mode, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func fillForm(m *Mode, income string) {
	typeText(m, "Ada")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(m, "40")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(m, income)
}

// drain runs cmd and any batched commands, returning every message produced.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestSubmitSchedulesScoreAndCompletes(t *testing.T) {
	m := New(WithControllerOptions(workflow.WithIDGenerator(func() string { return "run-1" })))
	m.Init(&modes.ModeContext{Config: newFastConfig(t)})
	fillForm(m, "90000")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.State().Screen != workflow.ScreenProcessing || !m.State().Pending {
		t.Fatalf("submit should enter pending processing, got %+v", m.State())
	}
	if !strings.Contains(m.View(), "Calculating") {
		t.Fatalf("modal should show progress")
	}

	var ready *scoreReadyMsg
	for _, msg := range drain(cmd) {
		if r, ok := msg.(scoreReadyMsg); ok {
			ready = &r
		}
	}
	if ready == nil {
		t.Fatalf("expected a scheduled score message")
	}
	m.Update(*ready)
	state := m.State()
	if state.Screen != workflow.ScreenReview || state.Pending {
		t.Fatalf("score should land on review, got %+v", state)
	}
	if !state.Result.Approved || state.Result.Score != 90 {
		t.Fatalf("unexpected result %+v", state.Result)
	}
	if !strings.Contains(m.View(), "you qualify") {
		t.Fatalf("verdict missing from view:\n%s", m.View())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.State().Screen != workflow.ScreenInput || !m.State().Form.IsEmpty() {
		t.Fatalf("close should restart, got %+v", m.State())
	}
}

func TestIncompleteSubmitDoesNothing(t *testing.T) {
	m := New()
	m.Init(&modes.ModeContext{Config: config.Default()})
	typeText(m, "Ada")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("incomplete submit must not schedule work")
	}
	if m.State().Screen != workflow.ScreenInput {
		t.Fatalf("incomplete submit left input")
	}
}

func TestStaleScoreIsDropped(t *testing.T) {
	m := New()
	m.Init(&modes.ModeContext{Config: config.Default()})
	fillForm(m, "1000")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	stale := scoreReadyMsg{done: m.controller.Score(m.State())}
	m.state, _ = m.controller.Update(m.state, workflow.Restart{})
	m.Update(stale)
	if m.State().Screen != workflow.ScreenInput || m.State().HasResult() {
		t.Fatalf("stale score should be ignored, got %+v", m.State())
	}
}

func TestVerdict(t *testing.T) {
	low := application.NewScorer(application.IncomeOnlyProfile()).Evaluate("r", application.Fields{application.FieldIncome: "1000"})
	if got := Verdict(&low); !strings.Contains(got, "do not qualify") || !strings.Contains(got, application.StatusUnderReview) {
		t.Fatalf("verdict = %q", got)
	}
	if got := Verdict(nil); got != "Something went wrong." {
		t.Fatalf("nil verdict = %q", got)
	}
}
