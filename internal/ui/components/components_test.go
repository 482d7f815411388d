package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

func TestChoicesDigitPicks(t *testing.T) {
	c := NewChoices([]string{"a", "b", "c", "d"})
	c, picked := c.Update(key("3"))
	if picked != 2 || c.Cursor != 2 {
		t.Fatalf("picked=%d cursor=%d", picked, c.Cursor)
	}
	if _, picked = c.Update(key("7")); picked != -1 {
		t.Fatalf("out-of-range digit picked %d", picked)
	}
}

func TestChoicesArrowsAndEnter(t *testing.T) {
	c := NewChoices([]string{"a", "b", "c", "d"})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	_, picked := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if picked != 1 {
		t.Fatalf("picked = %d", picked)
	}
}

func TestMenuSkipsHiddenAndWraps(t *testing.T) {
	var ran string
	m := NewMenu(
		MenuItem{Label: "Start", Action: func() tea.Cmd { ran = "start"; return nil }},
		MenuItem{Label: "Leaderboard", Hidden: true},
		MenuItem{Label: "Quit", Action: func() tea.Cmd { ran = "quit"; return nil }},
	)
	if m.Len() != 2 || strings.Contains(m.View(), "Leaderboard") {
		t.Fatal("hidden item rendered")
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if ran != "quit" {
		t.Fatalf("ran = %q", ran)
	}
}

func TestProgressLabel(t *testing.T) {
	if p := Progress(3, 10, 20); !strings.Contains(p, "Question 3 of 10") {
		t.Fatalf("progress = %q", p)
	}
}
