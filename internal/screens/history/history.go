// Package history lists the player's past quizzes from the local event
// log.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/signalquiz/internal/quiz"
	"github.com/abhisek/signalquiz/internal/router"
	"github.com/abhisek/signalquiz/internal/screen"
	"github.com/abhisek/signalquiz/internal/screens"
	"github.com/abhisek/signalquiz/internal/store"
	"github.com/abhisek/signalquiz/internal/ui/components"
	"github.com/abhisek/signalquiz/internal/ui/layout"
	"github.com/abhisek/signalquiz/internal/ui/theme"
)

// Limit bounds how many events are read back.
const Limit = 200

type loadedMsg struct {
	runs []store.ResultEvent
	err  error
}

// Screen shows one row per quiz run. Enter expands a row.
type Screen struct {
	svc      *screens.Services
	runs     []store.ResultEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

func New(svc *screens.Services) *Screen {
	return &Screen{svc: svc, expanded: make(map[int]bool)}
}

func (s *Screen) Init() tea.Cmd {
	h := s.svc.History
	return func() tea.Msg {
		if h == nil {
			return loadedMsg{}
		}
		events, err := h.Results(context.Background(), store.QueryOpts{Limit: Limit})
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{runs: latestPerSession(events)}
	}
}

// latestPerSession keeps the newest event of each session. A run is
// journaled once when it ends and again when it is revealed.
func latestPerSession(events []store.ResultEvent) []store.ResultEvent {
	seen := make(map[string]bool, len(events))
	var out []store.ResultEvent
	for _, e := range events {
		if seen[e.SessionID] {
			continue
		}
		seen[e.SessionID] = true
		out = append(out, e)
	}
	return out
}

func (s *Screen) Title() string { return "My Results" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			s.svc.Logger().Warn("load history", zap.Error(msg.err))
		}
		s.runs = msg.runs
		s.loaded = true

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.runs)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		case "q":
			return s, router.Pop
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return components.Center(theme.ErrorText.Render("Error: "+s.errMsg), width, height)
	case !s.loaded:
		return components.Center(theme.Hint.Render("Loading history..."), width, height)
	case len(s.runs) == 0:
		return components.Center(theme.Hint.Render("No quizzes yet. Take one from the menu!"), width, height)
	}

	var b strings.Builder
	for i, r := range s.runs {
		prefix := "  "
		style := theme.Body
		if i == s.selected {
			prefix = "> "
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		line := fmt.Sprintf("%s%s  %2d/%d  %s",
			prefix, r.Timestamp.Format("Jan 02 15:04"), r.Score, quiz.MaxScore, outcome(r))
		b.WriteString(style.Render(line))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(theme.Hint.Render(details(r)))
			b.WriteString("\n")
		}
	}
	return components.Center(strings.TrimRight(b.String(), "\n"), width, height)
}

// outcome names the creator type only for revealed runs.
func outcome(r store.ResultEvent) string {
	if !r.Revealed {
		return "🔒 not revealed"
	}
	return quiz.Classify(r.Score).Title
}

func details(r store.ResultEvent) string {
	lines := []string{"    session " + r.SessionID}
	if r.Revealed {
		lines = append(lines, "    "+quiz.Classify(r.Score).Description)
	}
	if r.DisplayName != "" {
		lines = append(lines, "    on the leaderboard as "+r.DisplayName)
	}
	return strings.Join(lines, "\n")
}
