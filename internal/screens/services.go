// Package screens holds what every quiz screen shares. The screens
// themselves live in subpackages.
package screens

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/signalquiz/internal/host"
	"github.com/abhisek/signalquiz/internal/insight"
	"github.com/abhisek/signalquiz/internal/leaderboard"
	"github.com/abhisek/signalquiz/internal/payment"
	"github.com/abhisek/signalquiz/internal/quiz"
	"github.com/abhisek/signalquiz/internal/share"
	"github.com/abhisek/signalquiz/internal/store"
)

// ResultJournal records finished quizzes. store.EventRepo satisfies it.
type ResultJournal interface {
	AppendResult(ctx context.Context, data store.ResultEventData) error
}

// ResultHistory reads finished quizzes back, newest first.
type ResultHistory interface {
	Results(ctx context.Context, opts store.QueryOpts) ([]store.ResultEvent, error)
}

// Services are the collaborators screens are built with.
type Services struct {
	Bank []quiz.Question
	Flow quiz.Flow
	Env  host.Environment

	// NewGate opens a payment session for one results screen.
	NewGate func(opts ...payment.Option) *payment.Gate
	// Price is shown on the gate panel, e.g. "0.00001 ETH on Base".
	Price string

	Board   *leaderboard.Board
	Sharer  *share.Sharer
	Insight *insight.Service // nil disables insights
	Results ResultJournal    // may be nil
	History ResultHistory    // nil hides the history screen
	HomeURL string
	Log     *zap.Logger
}

// Logger never returns nil.
func (s *Services) Logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// JournalResult appends a result event, logging failures.
func (s *Services) JournalResult(ctx context.Context, data store.ResultEventData) {
	if s.Results == nil {
		return
	}
	if err := s.Results.AppendResult(context.WithoutCancel(ctx), data); err != nil {
		s.Logger().Warn("journal result", zap.Error(err))
	}
}
