package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/signalquiz/internal/ui/theme"
)

// Progress renders "Question i of n" above a bar of the given width.
// i is one-based.
func Progress(i, n, width int) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d of %d", i, n))
	if n <= 0 {
		return label
	}
	filled := width * i / n
	bar := lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("━", width-filled))
	return label + "\n" + bar
}
