package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/signalquiz/internal/ui/theme"
)

// ContentWidth is the column width screens render into, capped so long
// lines stay readable on wide terminals.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 30), 64)
}

// Card boxes content at width w.
func Card(content string, w int) string {
	return theme.Card.Width(w).Render(content)
}

// AccentCard is a Card with a coloured border.
func AccentCard(content string, w int, border color.Color) string {
	return theme.Card.
		BorderForeground(border).
		Width(w).
		Render(content)
}

// Center places content in the middle of a width x height area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
