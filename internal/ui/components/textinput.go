package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// NameInput is a single-line text field for a display name.
type NameInput struct {
	model textinput.Model
}

func NewNameInput(placeholder string, limit int) NameInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = "› "
	return NameInput{model: ti}
}

func (n *NameInput) Focus() tea.Cmd { return n.model.Focus() }

func (n *NameInput) Blur() { n.model.Blur() }

func (n NameInput) Focused() bool { return n.model.Focused() }

func (n NameInput) Update(msg tea.Msg) (NameInput, tea.Cmd) {
	var cmd tea.Cmd
	n.model, cmd = n.model.Update(msg)
	return n, cmd
}

func (n NameInput) View() string { return n.model.View() }

// Value is the trimmed input.
func (n NameInput) Value() string {
	return strings.TrimSpace(n.model.Value())
}
