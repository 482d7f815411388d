// Package screen defines what the router stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/signalquiz/internal/ui/layout"
)

// Screen is one page of the app.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	// View renders the area between header and footer.
	View(width, height int) string
	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Guard is implemented by screens that must not be left while busy.
type Guard interface {
	Busy() bool
}
