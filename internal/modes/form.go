package modes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/loanflow/internal/application"
)

var (
	fieldLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	fieldFocusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	fieldMissingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

// FormInputs renders one text input per field spec and tracks focus.
type FormInputs struct {
	specs  []application.FieldSpec
	inputs []textinput.Model
	focus  int
}

// FieldChange reports the field edited by a key press.
type FieldChange struct {
	Field string
	Value string
}

// NewFormInputs builds inputs for specs with the first one focused.
func NewFormInputs(specs []application.FieldSpec) *FormInputs {
	f := &FormInputs{specs: specs, inputs: make([]textinput.Model, len(specs))}
	for i, spec := range specs {
		in := textinput.New()
		in.Prompt = "› "
		in.Placeholder = spec.Placeholder
		in.CharLimit = 64
		if spec.Kind == application.KindNumber {
			in.CharLimit = 18
		}
		f.inputs[i] = in
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

// Focused returns the name of the focused field.
func (f *FormInputs) Focused() string {
	if len(f.specs) == 0 {
		return ""
	}
	return f.specs[f.focus].Name
}

// Next moves focus to the following field, wrapping around.
func (f *FormInputs) Next() tea.Cmd {
	return f.setFocus((f.focus + 1) % max(1, len(f.inputs)))
}

// Prev moves focus to the previous field, wrapping around.
func (f *FormInputs) Prev() tea.Cmd {
	n := max(1, len(f.inputs))
	return f.setFocus((f.focus - 1 + n) % n)
}

// OnLastField reports whether focus is on the final input.
func (f *FormInputs) OnLastField() bool {
	return f.focus == len(f.inputs)-1
}

func (f *FormInputs) setFocus(idx int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	f.inputs[f.focus].Blur()
	f.focus = idx
	return f.inputs[f.focus].Focus()
}

// Update feeds a key press to the focused input. Number fields drop any
// rune that is not a digit or a decimal point.
func (f *FormInputs) Update(msg tea.KeyMsg) (FieldChange, bool, tea.Cmd) {
	if len(f.inputs) == 0 {
		return FieldChange{}, false, nil
	}
	spec := f.specs[f.focus]
	if spec.Kind == application.KindNumber && msg.Type == tea.KeyRunes && !numericRunes(msg.Runes) {
		return FieldChange{}, false, nil
	}
	before := f.inputs[f.focus].Value()
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	after := f.inputs[f.focus].Value()
	if after == before {
		return FieldChange{}, false, cmd
	}
	return FieldChange{Field: spec.Name, Value: after}, true, cmd
}

// Reset clears every input and focuses the first.
func (f *FormInputs) Reset() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	return f.setFocus(0)
}

// View renders the labelled inputs. Labels of missing required fields are
// highlighted when showMissing is set.
func (f *FormInputs) View(form application.Form, showMissing bool) string {
	missing := map[string]bool{}
	if showMissing {
		for _, spec := range f.specs {
			if spec.Required && form.Get(spec.Name) == "" {
				missing[spec.Name] = true
			}
		}
	}
	var rows []string
	for i, spec := range f.specs {
		label := fmt.Sprintf("%s:", spec.Label)
		switch {
		case missing[spec.Name]:
			label = fieldMissingStyle.Render(label + " (required)")
		case i == f.focus:
			label = fieldFocusStyle.Render(label)
		default:
			label = fieldLabelStyle.Render(label)
		}
		rows = append(rows, label, f.inputs[i].View(), "")
	}
	return strings.Join(rows, "\n")
}

func numericRunes(runes []rune) bool {
	for _, r := range runes {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}
