package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// ErrSessionDone is returned when answering after the last question.
var ErrSessionDone = errors.New("quiz session already complete")

// Flow holds the presentation choices that differ between deployments.
type Flow struct {
	Shuffle              bool
	EnableBackNavigation bool
	EnableLeaderboardUI  bool
}

// DefaultFlow shuffles questions and allows revisiting earlier answers.
func DefaultFlow() Flow {
	return Flow{
		Shuffle:              true,
		EnableBackNavigation: true,
		EnableLeaderboardUI:  true,
	}
}

// answerRecord is one entry of the answer history.
type answerRecord struct {
	index  int
	choice int
	value  int
}

// Session is a single run through the question bank. It is created when
// the quiz starts and discarded on restart.
type Session struct {
	ID        string
	questions []Question
	flow      Flow
	current   int
	history   []answerRecord
	done      bool
}

// NewSession builds a session over bank. rng may be nil, in which case a
// randomly seeded source is used when shuffling is enabled.
func NewSession(bank []Question, flow Flow, rng *rand.Rand) *Session {
	qs := make([]Question, len(bank))
	copy(qs, bank)
	if flow.Shuffle {
		if rng == nil {
			rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		rng.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
	}
	return &Session{
		ID:        uuid.New().String(),
		questions: qs,
		flow:      flow,
	}
}

// Flow returns the presentation options the session was created with.
func (s *Session) Flow() Flow { return s.flow }

// Len returns the number of questions in the session.
func (s *Session) Len() int { return len(s.questions) }

// Position returns the zero-based index of the current question.
func (s *Session) Position() int { return s.current }

// Current returns the question being asked, or nil once the session is done.
func (s *Session) Current() *Question {
	if s.done || s.current >= len(s.questions) {
		return nil
	}
	return &s.questions[s.current]
}

// Done reports whether every question has been answered.
func (s *Session) Done() bool { return s.done }

// Answer records the choice for the current question and moves forward.
// Any answers recorded for this or later questions are dropped first, so
// revisiting a question after going back replaces the old answer.
func (s *Session) Answer(choice int) (bool, error) {
	q := s.Current()
	if q == nil {
		return true, ErrSessionDone
	}
	if choice < 0 || choice >= len(q.Answers) {
		return false, fmt.Errorf("answer %d out of range for question %d", choice, q.ID)
	}

	kept := s.history[:0]
	for _, h := range s.history {
		if h.index < s.current {
			kept = append(kept, h)
		}
	}
	s.history = append(kept, answerRecord{index: s.current, choice: choice, value: q.Answers[choice].Value})

	if s.current < len(s.questions)-1 {
		s.current++
		return false, nil
	}
	s.done = true
	return true, nil
}

// CanGoBack reports whether Back would move to an earlier question.
func (s *Session) CanGoBack() bool {
	return s.flow.EnableBackNavigation && !s.done && s.current > 0
}

// Back returns to the previous question. The answers already given stay
// recorded until that question is answered again.
func (s *Session) Back() bool {
	if !s.CanGoBack() {
		return false
	}
	s.current--
	return true
}

// Answers returns the recorded answer values in question order.
func (s *Session) Answers() []int {
	out := make([]int, len(s.history))
	for i, h := range s.history {
		out[i] = h.value
	}
	return out
}

// Pick is an answered question together with the chosen option.
type Pick struct {
	Question Question
	Answer   Answer
}

// Picks returns the answered questions in the order they were asked.
func (s *Session) Picks() []Pick {
	out := make([]Pick, len(s.history))
	for i, h := range s.history {
		q := s.questions[h.index]
		out[i] = Pick{Question: q, Answer: q.Answers[h.choice]}
	}
	return out
}

// Score is the running total of recorded answers.
func (s *Session) Score() int {
	return ComputeScore(s.Answers())
}

// Result classifies the current score.
func (s *Session) Result() Category {
	return Classify(s.Score())
}

// Questions returns the questions in the order they are asked.
func (s *Session) Questions() []Question {
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	return out
}
