package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/signalquiz/internal/ui/theme"
)

// Choices is a numbered single-choice list. Keys 1-9 pick directly;
// arrows move the cursor and Enter picks the highlighted option.
type Choices struct {
	Options []string
	Cursor  int
}

func NewChoices(options []string) Choices {
	return Choices{Options: options}
}

// Update returns the picked index, or -1 when nothing was picked.
func (c Choices) Update(msg tea.Msg) (Choices, int) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, -1
	}
	s := key.String()
	switch s {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "enter":
		return c, c.Cursor
	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if n := int(s[0] - '1'); n < len(c.Options) {
				c.Cursor = n
				return c, n
			}
		}
	}
	return c, -1
}

// View renders the options wrapped to width.
func (c Choices) View(width int) string {
	wrap := lipgloss.NewStyle().Width(width)
	lines := make([]string, len(c.Options))
	for i, opt := range c.Options {
		label := fmt.Sprintf("%d. %s", i+1, opt)
		if i == c.Cursor {
			lines[i] = wrap.Inherit(theme.Selected).Render("▸ " + label)
		} else {
			lines[i] = wrap.Inherit(theme.Unselected).Render("  " + label)
		}
	}
	return strings.Join(lines, "\n\n")
}
