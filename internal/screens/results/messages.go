package results

import (
	"github.com/abhisek/signalquiz/internal/insight"
	"github.com/abhisek/signalquiz/internal/leaderboard"
	"github.com/abhisek/signalquiz/internal/payment"
	"github.com/abhisek/signalquiz/internal/share"
)

// gateMsg carries a fresh gate snapshot.
type gateMsg payment.Snapshot

// revealDoneMsg is sent when a Reveal call returns.
type revealDoneMsg struct{ err error }

// recordedMsg is sent once the leaderboard write finished.
type recordedMsg struct {
	entry leaderboard.Entry
	rank  int
	err   error
}

type sharedMsg struct {
	method share.Method
	err    error
}

type insightMsg struct {
	insight *insight.Insight
	err     error
}
