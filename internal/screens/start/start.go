// Package start is the landing screen.
package start

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/signalquiz/internal/router"
	"github.com/abhisek/signalquiz/internal/screen"
	"github.com/abhisek/signalquiz/internal/screens"
	"github.com/abhisek/signalquiz/internal/screens/board"
	"github.com/abhisek/signalquiz/internal/screens/history"
	"github.com/abhisek/signalquiz/internal/screens/question"
	"github.com/abhisek/signalquiz/internal/ui/components"
	"github.com/abhisek/signalquiz/internal/ui/layout"
	"github.com/abhisek/signalquiz/internal/ui/theme"
)

// Screen shows the banner and the main menu.
type Screen struct {
	svc  *screens.Services
	menu components.Menu
}

var _ screen.Screen = (*Screen)(nil)

func New(svc *screens.Services) *Screen {
	s := &Screen{svc: svc}
	s.menu = components.NewMenu(
		components.MenuItem{Label: "Start Quiz", Action: s.startQuiz},
		components.MenuItem{
			Label:  "Leaderboard",
			Action: s.openBoard,
			Hidden: !svc.Flow.EnableLeaderboardUI,
		},
		components.MenuItem{
			Label:  "My Results",
			Action: s.openHistory,
			Hidden: svc.History == nil,
		},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	)
	return s
}

func (s *Screen) startQuiz() tea.Cmd {
	return router.Push(question.New(s.svc))
}

func (s *Screen) openBoard() tea.Cmd {
	return router.Push(board.New(s.svc, ""))
}

func (s *Screen) openHistory() tea.Cmd {
	return router.Push(history.New(s.svc))
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == "q" {
		return s, tea.Quit
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	sections := []string{
		renderBanner(width),
		"",
		theme.Title.Render("Signal Creator Quiz"),
		theme.Subtitle.Width(cw).Render(
			fmt.Sprintf("%d questions. Find out whether your content is signal or noise.", len(s.svc.Bank))),
	}
	if id := s.svc.Env.Identity; id != nil {
		sections = append(sections, "", theme.Body.Render("Welcome, "+id.Name()))
	}
	sections = append(sections, "", s.menu.View())

	return components.Center(lipgloss.JoinVertical(lipgloss.Center, sections...), width, height)
}
