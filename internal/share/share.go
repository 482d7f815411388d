// Package share posts a quiz result through the best available channel:
// the host's compose action, the system browser, then the clipboard.
package share

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/signalquiz/internal/quiz"
)

// ErrNoShareTarget is returned when every target failed.
var ErrNoShareTarget = errors.New("share: no share target available")

// Method names the channel a message went out on.
type Method string

const (
	MethodHost      Method = "host"
	MethodSystem    Method = "system"
	MethodClipboard Method = "clipboard"
)

// Message is the content to share.
type Message struct {
	Text   string
	Embeds []string
}

// NewMessage builds the result post for score and its category. homeURL
// is the public app URL; the first embed links to the category's result
// page.
func NewMessage(score int, cat quiz.Category, homeURL string) Message {
	m := Message{
		Text: fmt.Sprintf("I scored %d/%d on the Signal Creator Quiz! I'm a %s. Take the quiz yourself!",
			score, quiz.MaxScore, cat.Title),
	}
	if homeURL != "" {
		m.Embeds = append(m.Embeds, strings.TrimRight(homeURL, "/")+"/result/"+cat.Key)
	}
	if cat.ShareImageURL != "" {
		m.Embeds = append(m.Embeds, cat.ShareImageURL)
	}
	return m
}

// Target is one share channel.
type Target interface {
	Method() Method
	Share(ctx context.Context, m Message) error
}

// Sharer tries targets in order until one succeeds.
type Sharer struct {
	targets []Target
}

// New creates a Sharer over targets, highest priority first.
func New(targets ...Target) *Sharer {
	return &Sharer{targets: targets}
}

// Share sends m through the first target that accepts it and reports
// which one did.
func (s *Sharer) Share(ctx context.Context, m Message) (Method, error) {
	errs := []error{ErrNoShareTarget}
	for _, t := range s.targets {
		err := t.Share(ctx, m)
		if err == nil {
			return t.Method(), nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", t.Method(), err))
	}
	return "", errors.Join(errs...)
}
