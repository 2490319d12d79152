package tabs

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/loanflow/internal/config"
	"github.com/kingrea/loanflow/internal/modes"
)

func TestTabNavigation(t *testing.T) {
	m := New()
	m.Init(&modes.ModeContext{Config: config.Default()})
	cases := []struct {
		msg  tea.KeyMsg
		want Tab
	}{
		{tea.KeyMsg{Type: tea.KeyRight}, TabSettings},
		{tea.KeyMsg{Type: tea.KeyRight}, TabStats},
		{tea.KeyMsg{Type: tea.KeyRight}, TabHome},
		{tea.KeyMsg{Type: tea.KeyLeft}, TabStats},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")}, TabSettings},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")}, TabHome},
	}
	for i, tc := range cases {
		m.Update(tc.msg)
		if m.Active() != tc.want {
			t.Fatalf("step %d: active = %s, want %s", i, m.Active(), tc.want)
		}
	}
}

func TestTabContent(t *testing.T) {
	m := New()
	m.Init(&modes.ModeContext{Config: config.Default()})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	if view := m.View(); !strings.Contains(view, "Stats go here.") {
		t.Fatalf("stats tab content missing:\n%s", view)
	}
}
