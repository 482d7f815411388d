package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/signalquiz/internal/ui/theme"
)

// MenuItem is one menu entry. Hidden items are skipped entirely.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
	Hidden bool
}

// Menu is a vertical list selected with arrows and Enter.
type Menu struct {
	items    []MenuItem
	Selected int
}

func NewMenu(items ...MenuItem) Menu {
	visible := make([]MenuItem, 0, len(items))
	for _, it := range items {
		if !it.Hidden {
			visible = append(visible, it)
		}
	}
	return Menu{items: visible}
}

// Len is the number of visible items.
func (m Menu) Len() int { return len(m.items) }

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.items) == 0 {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.Selected = (m.Selected - 1 + len(m.items)) % len(m.items)
	case "down", "j", "tab":
		m.Selected = (m.Selected + 1) % len(m.items)
	case "enter", "space":
		if a := m.items[m.Selected].Action; a != nil {
			return m, a()
		}
	}
	return m, nil
}

func (m Menu) View() string {
	lines := make([]string, len(m.items))
	for i, it := range m.items {
		if i == m.Selected {
			lines[i] = theme.Selected.Render("▸ " + it.Label)
		} else {
			lines[i] = theme.Unselected.Render("  " + it.Label)
		}
	}
	return strings.Join(lines, "\n")
}
