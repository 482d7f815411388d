// Package theme holds the colour palette and shared styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette. Cool signal blues on a near-black background, with a warm
// accent reserved for calls to action.
var (
	Primary   = lipgloss.Color("#6366F1") // indigo
	Secondary = lipgloss.Color("#22D3EE") // cyan
	Accent    = lipgloss.Color("#FBBF24") // amber
	Success   = lipgloss.Color("#34D399") // emerald
	Error     = lipgloss.Color("#F87171") // red
	Text      = lipgloss.Color("#F1F5F9")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#020617")
	BgCard    = lipgloss.Color("#0F172A")
	Border    = lipgloss.Color("#334155")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	SuccessText = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)
)

var (
	Bar = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

var (
	Selected = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	Unselected = lipgloss.NewStyle().Foreground(Text)

	// Highlight marks the player's own row in tables.
	Highlight = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(Secondary).
			Bold(true)
)
