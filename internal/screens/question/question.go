// Package question asks the quiz questions one at a time.
package question

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/signalquiz/internal/quiz"
	"github.com/abhisek/signalquiz/internal/router"
	"github.com/abhisek/signalquiz/internal/screen"
	"github.com/abhisek/signalquiz/internal/screens"
	"github.com/abhisek/signalquiz/internal/screens/results"
	"github.com/abhisek/signalquiz/internal/ui/components"
	"github.com/abhisek/signalquiz/internal/ui/layout"
	"github.com/abhisek/signalquiz/internal/ui/theme"
)

// Screen drives one quiz session.
type Screen struct {
	svc     *screens.Services
	session *quiz.Session
	choices components.Choices
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New starts a fresh session over the configured bank.
func New(svc *screens.Services) *Screen {
	s := &Screen{
		svc:     svc,
		session: quiz.NewSession(svc.Bank, svc.Flow, nil),
	}
	s.loadChoices()
	return s
}

// Session exposes the running session.
func (s *Screen) Session() *quiz.Session { return s.session }

func (s *Screen) loadChoices() {
	q := s.session.Current()
	if q == nil {
		return
	}
	opts := make([]string, len(q.Answers))
	for i, a := range q.Answers {
		opts[i] = a.Text
	}
	s.choices = components.NewChoices(opts)
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Quiz" }

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Choose"},
	}
	if s.session.CanGoBack() {
		hints = append(hints, layout.KeyHint{Key: "b", Description: "Back"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit quiz"})
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || s.session.Done() {
		return s, nil
	}

	switch key.String() {
	case "b", "left":
		if s.session.Back() {
			s.loadChoices()
		}
		return s, nil
	}

	var picked int
	s.choices, picked = s.choices.Update(msg)
	if picked < 0 {
		return s, nil
	}

	done, err := s.session.Answer(picked)
	if err != nil {
		s.svc.Logger().Sugar().Warnw("answer rejected", "err", err)
		return s, nil
	}
	if done {
		return s, router.Replace(results.New(s.svc, s.session))
	}
	s.loadChoices()
	return s, nil
}

func (s *Screen) View(width, height int) string {
	q := s.session.Current()
	if q == nil {
		return ""
	}
	cw := components.ContentWidth(width)

	body := lipgloss.JoinVertical(lipgloss.Left,
		components.Progress(s.session.Position()+1, s.session.Len(), cw),
		"",
		theme.Body.Bold(true).Width(cw).Render(q.Prompt),
		"",
		s.choices.View(cw),
	)
	return components.Center(body, width, height)
}
