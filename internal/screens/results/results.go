// Package results shows the payment gate and, once paid, the result.
package results

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/signalquiz/internal/insight"
	"github.com/abhisek/signalquiz/internal/leaderboard"
	"github.com/abhisek/signalquiz/internal/payment"
	"github.com/abhisek/signalquiz/internal/quiz"
	"github.com/abhisek/signalquiz/internal/router"
	"github.com/abhisek/signalquiz/internal/screen"
	"github.com/abhisek/signalquiz/internal/screens"
	"github.com/abhisek/signalquiz/internal/screens/board"
	"github.com/abhisek/signalquiz/internal/share"
	"github.com/abhisek/signalquiz/internal/store"
	"github.com/abhisek/signalquiz/internal/ui/components"
	"github.com/abhisek/signalquiz/internal/ui/layout"
	"github.com/abhisek/signalquiz/internal/ui/theme"
)

const maxNameLen = 24

// Screen is mounted once per finished quiz and owns one payment session.
type Screen struct {
	svc      *screens.Services
	session  *quiz.Session
	score    int
	category quiz.Category

	gate     *payment.Gate
	snap     payment.Snapshot
	inFlight bool
	spin     spinner.Model

	name     components.NameInput
	naming   bool
	entry    *leaderboard.Entry
	rank     int
	boardErr string

	shareStatus string
	shareErr    bool

	// notice is a transient hint shown on the gate panel.
	notice string

	insight        *insight.Insight
	insightPending bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.Guard = (*Screen)(nil)

// New creates the results screen for a completed session.
func New(svc *screens.Services, session *quiz.Session) *Screen {
	s := &Screen{
		svc:      svc,
		session:  session,
		score:    session.Score(),
		category: session.Result(),
		spin: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(theme.Selected),
		),
		name: components.NewNameInput("your name", maxNameLen),
	}
	s.gate = svc.NewGate(payment.WithLogger(svc.Logger()))
	s.snap = s.gate.Snapshot()
	return s
}

func (s *Screen) Init() tea.Cmd {
	s.svc.JournalResult(context.Background(), s.resultEvent(false, ""))
	gate := s.gate
	return func() tea.Msg {
		gate.Sync(context.Background())
		return gateMsg(gate.Snapshot())
	}
}

func (s *Screen) Title() string {
	if s.snap.Revealed {
		return "Your Result"
	}
	return "Reveal"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.naming:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save name (empty skips)"},
		}
	case s.snap.Revealed:
		hints := []layout.KeyHint{{Key: "s", Description: "Share"}}
		if s.svc.Flow.EnableLeaderboardUI {
			hints = append(hints, layout.KeyHint{Key: "l", Description: "Leaderboard"})
		}
		return append(hints,
			layout.KeyHint{Key: "n", Description: "New quiz"},
			layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	case s.snap.Loading || s.inFlight:
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	case s.snap.State == payment.StateError:
		return []layout.KeyHint{
			{Key: "r", Description: "Retry"},
			{Key: "n", Description: "New quiz"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Reveal"},
		{Key: "n", Description: "New quiz"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case gateMsg:
		s.snap = payment.Snapshot(msg)
		return s, nil

	case spinner.TickMsg:
		s.snap = s.gate.Snapshot()
		if !s.inFlight {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case revealDoneMsg:
		s.inFlight = false
		s.snap = s.gate.Snapshot()
		if errors.Is(msg.err, payment.ErrBusy) {
			s.notice = "Your wallet is busy. Try again in a moment."
		} else if msg.err != nil {
			s.svc.Logger().Debug("reveal", zap.Error(msg.err))
		}
		if s.snap.Revealed {
			return s, s.onRevealed()
		}
		return s, nil

	case recordedMsg:
		if msg.err != nil {
			s.boardErr = "Couldn't save your score."
			s.svc.Logger().Warn("record leaderboard", zap.Error(msg.err))
			return s, nil
		}
		s.entry = &msg.entry
		s.rank = msg.rank
		return s, nil

	case sharedMsg:
		s.shareStatus, s.shareErr = shareStatus(msg.method, msg.err)
		return s, nil

	case insightMsg:
		s.insightPending = false
		if msg.err != nil {
			s.svc.Logger().Debug("insight", zap.Error(msg.err))
			return s, nil
		}
		s.insight = msg.insight
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.naming {
		var cmd tea.Cmd
		s.name, cmd = s.name.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.naming {
		if msg.String() == "enter" {
			return s, s.submitName()
		}
		var cmd tea.Cmd
		s.name, cmd = s.name.Update(msg)
		return s, cmd
	}

	switch msg.String() {
	case "n":
		if !s.inFlight {
			return s, router.PopToRoot
		}
	case "enter":
		if !s.snap.Revealed {
			return s, s.reveal()
		}
	case "r":
		if s.snap.State == payment.StateError && !s.inFlight {
			gate := s.gate
			return s, func() tea.Msg {
				gate.Reset(context.Background())
				return gateMsg(gate.Snapshot())
			}
		}
	case "s":
		if s.snap.Revealed {
			return s, s.share()
		}
	case "l":
		if s.snap.Revealed && s.svc.Flow.EnableLeaderboardUI {
			var highlight string
			var ts int64
			if s.entry != nil {
				highlight, ts = s.entry.IdentityKey(), s.entry.Timestamp
			}
			return s, router.Push(board.New(s.svc, highlight, board.WithTimestamp(ts)))
		}
	}
	return s, nil
}

// reveal runs Gate.Reveal in the background and animates while it runs.
// Presses during an in-flight call are dropped here; the gate itself also
// refuses concurrent calls.
func (s *Screen) reveal() tea.Cmd {
	if s.inFlight || s.snap.Loading {
		return nil
	}
	s.inFlight = true
	s.notice = ""
	gate := s.gate
	return tea.Batch(
		func() tea.Msg { return revealDoneMsg{err: gate.Reveal(context.Background())} },
		s.spin.Tick,
	)
}

func (s *Screen) onRevealed() tea.Cmd {
	var name string
	if id := s.svc.Env.Identity; id != nil {
		name = id.Name()
	}
	s.svc.JournalResult(context.Background(), s.resultEvent(true, name))

	var cmds []tea.Cmd
	if s.svc.Insight != nil {
		s.insightPending = true
		cmds = append(cmds, s.requestInsight())
	}
	if s.svc.Flow.EnableLeaderboardUI && s.svc.Board != nil {
		if id := s.svc.Env.Identity; id != nil {
			cmds = append(cmds, s.record(leaderboard.Entry{
				Username:       id.Name(),
				Score:          s.score,
				ProfilePicture: id.PFPURL,
				FID:            id.FID,
			}))
		} else {
			s.naming = true
			cmds = append(cmds, s.name.Focus())
		}
	}
	return tea.Batch(cmds...)
}

func (s *Screen) submitName() tea.Cmd {
	s.naming = false
	s.name.Blur()
	name := s.name.Value()
	if name == "" {
		return nil
	}
	return s.record(leaderboard.Entry{Username: name, Score: s.score})
}

func (s *Screen) record(e leaderboard.Entry) tea.Cmd {
	b := s.svc.Board
	return func() tea.Msg {
		ctx := context.Background()
		stored, err := b.Record(ctx, e)
		if err != nil {
			return recordedMsg{err: err}
		}
		return recordedMsg{entry: stored, rank: b.Rank(ctx, stored.IdentityKey(), stored.Timestamp)}
	}
}

func (s *Screen) share() tea.Cmd {
	sharer := s.svc.Sharer
	m := share.NewMessage(s.score, s.category, s.svc.HomeURL)
	return func() tea.Msg {
		method, err := sharer.Share(context.Background(), m)
		return sharedMsg{method: method, err: err}
	}
}

func (s *Screen) requestInsight() tea.Cmd {
	svc := s.svc.Insight
	in := insight.Input{Score: s.score, Category: s.category, Picks: s.session.Picks()}
	return func() tea.Msg {
		ins, err := svc.Generate(context.Background(), in)
		return insightMsg{insight: ins, err: err}
	}
}

func (s *Screen) resultEvent(revealed bool, name string) store.ResultEventData {
	return store.ResultEventData{
		SessionID:   s.session.ID,
		Score:       s.score,
		Category:    s.category.Key,
		Revealed:    revealed,
		DisplayName: name,
	}
}

func shareStatus(m share.Method, err error) (string, bool) {
	if err != nil {
		return "Couldn't share: " + err.Error(), true
	}
	switch m {
	case share.MethodHost:
		return "Opened the composer.", false
	case share.MethodSystem:
		return "Opened the share link in your browser.", false
	default:
		return "Copied your result to the clipboard.", false
	}
}

// Busy reports whether a wallet call is in flight.
func (s *Screen) Busy() bool { return s.inFlight }
