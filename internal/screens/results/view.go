package results

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/signalquiz/internal/payment"
	"github.com/abhisek/signalquiz/internal/ui/components"
	"github.com/abhisek/signalquiz/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var body string
	if s.snap.Revealed {
		body = s.renderResult(cw)
	} else {
		body = s.renderGate(cw)
	}
	return components.Center(body, width, height)
}

func (s *Screen) renderGate(cw int) string {
	lines := []string{
		theme.Title.Render("🔒 Your result is ready"),
		"",
	}

	busy := func(text string) string { return s.spin.View() + " " + theme.Body.Render(text) }

	switch s.snap.State {
	case payment.StateIdle:
		lines = append(lines,
			theme.Body.Width(cw-6).Render(fmt.Sprintf("Pay %s to reveal your creator type.", s.svc.Price)),
			"", theme.Hint.Render("Press Enter to connect your wallet."))
	case payment.StateConnecting:
		lines = append(lines, busy("Connecting wallet..."))
	case payment.StateReady:
		lines = append(lines,
			theme.Body.Render("Wallet "+shortHex(s.snap.Address)+" connected."),
			"", theme.Hint.Render(fmt.Sprintf("Press Enter to pay %s.", s.svc.Price)))
	case payment.StatePending:
		lines = append(lines, busy("Approve the transaction in your wallet..."))
	case payment.StateConfirming:
		lines = append(lines, busy("Confirming "+shortHex(s.snap.TxHash)+"..."))
	case payment.StateError:
		lines = append(lines,
			theme.ErrorText.Width(cw-6).Render(s.snap.Error),
			"", theme.Hint.Render("Press r to try again."))
	}
	if s.notice != "" {
		lines = append(lines, "", theme.Hint.Render(s.notice))
	}

	return components.Card(lipgloss.JoinVertical(lipgloss.Center, lines...), cw)
}

func (s *Screen) renderResult(cw int) string {
	cat := s.category
	sections := []string{
		theme.Title.Render(cat.Emoji + "  " + cat.Title),
		theme.SuccessText.Render(fmt.Sprintf("Score: %d/40", s.score)),
		"",
		theme.Body.Width(cw - 6).Align(lipgloss.Center).Render(cat.Description),
	}
	result := components.AccentCard(lipgloss.JoinVertical(lipgloss.Center, sections...), cw, theme.Secondary)

	var extra []string
	switch {
	case s.naming:
		extra = append(extra, theme.Body.Render("Add your name to the leaderboard:"), s.name.View())
	case s.entry != nil && s.rank > 0:
		extra = append(extra, theme.Selected.Render(fmt.Sprintf("You're #%d on the leaderboard.", s.rank)))
	case s.entry != nil:
		extra = append(extra, theme.Hint.Render("Your score didn't make the top 100."))
	case s.boardErr != "":
		extra = append(extra, theme.ErrorText.Render(s.boardErr))
	}

	switch {
	case s.insight != nil:
		extra = append(extra, "", components.Card(
			theme.Selected.Render(s.insight.Headline)+"\n"+
				theme.Body.Width(cw-6).Render(s.insight.Advice), cw))
	case s.insightPending:
		extra = append(extra, "", theme.Hint.Render("Thinking about your answers..."))
	}

	if s.shareStatus != "" {
		style := theme.Hint
		if s.shareErr {
			style = theme.ErrorText
		}
		extra = append(extra, "", style.Render(s.shareStatus))
	}

	return lipgloss.JoinVertical(lipgloss.Center, append([]string{result, ""}, extra...)...)
}

// shortHex abbreviates an address or hash to 0x1234…abcd.
func shortHex(h string) string {
	if len(h) <= 12 {
		return h
	}
	return h[:6] + "…" + h[len(h)-4:]
}
