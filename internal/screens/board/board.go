// Package board shows the top of the leaderboard.
package board

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/signalquiz/internal/leaderboard"
	"github.com/abhisek/signalquiz/internal/screen"
	"github.com/abhisek/signalquiz/internal/screens"
	"github.com/abhisek/signalquiz/internal/ui/components"
	"github.com/abhisek/signalquiz/internal/ui/layout"
	"github.com/abhisek/signalquiz/internal/ui/theme"
)

// Rows is how many entries the screen lists.
const Rows = 20

type loadedMsg []leaderboard.Entry

// Screen lists the top entries, highlighting the player's own.
type Screen struct {
	svc       *screens.Services
	highlight string
	timestamp int64
	entries   []leaderboard.Entry
	loaded    bool
}

var _ screen.Screen = (*Screen)(nil)

// Option configures the screen.
type Option func(*Screen)

// WithTimestamp narrows the highlight to the entry recorded at ts, so
// only the current run is marked when a player has several.
func WithTimestamp(ts int64) Option {
	return func(s *Screen) { s.timestamp = ts }
}

// New creates the screen. highlight is a leaderboard identity key; empty
// highlights nothing.
func New(svc *screens.Services, highlight string, opts ...Option) *Screen {
	s := &Screen{svc: svc, highlight: highlight}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Screen) Init() tea.Cmd {
	b := s.svc.Board
	return func() tea.Msg {
		if b == nil {
			return loadedMsg(nil)
		}
		return loadedMsg(b.Top(context.Background(), Rows))
	}
}

func (s *Screen) Title() string { return "Leaderboard" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(loadedMsg); ok {
		s.entries = msg
		s.loaded = true
	}
	return s, nil
}

func (s *Screen) isMine(e leaderboard.Entry) bool {
	if s.highlight == "" || e.IdentityKey() != s.highlight {
		return false
	}
	return s.timestamp == 0 || e.Timestamp == s.timestamp
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if !s.loaded {
		return components.Center(theme.Hint.Render("Loading..."), width, height)
	}
	if len(s.entries) == 0 {
		return components.Center(theme.Hint.Render("No scores yet. Be the first!"), width, height)
	}

	nameWidth := max(cw-22, 8)
	rows := []string{theme.Title.Render("🏆 Top Creators"), ""}
	rows = append(rows, lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%4s  %-*s %6s  %-8s", "#", nameWidth, "Name", "Score", "When")))

	for i, e := range s.entries {
		line := fmt.Sprintf("%4d  %-*s %6s  %-8s",
			i+1, nameWidth, truncate(e.Username, nameWidth),
			fmt.Sprintf("%d/40", e.Score), formatWhen(e.Timestamp))
		if s.isMine(e) {
			line = theme.Highlight.Render(line)
		} else {
			line = theme.Body.Render(line)
		}
		rows = append(rows, line)
	}
	return components.Center(strings.Join(rows, "\n"), width, height)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func formatWhen(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).Format("Jan 2")
}
