package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockReply is one canned result for Mock.
type MockReply struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// Mock replays queued replies in order and records every request.
// Once the queue is drained it returns Fallback, or ErrUnavailable when
// Fallback is nil.
type Mock struct {
	Fallback json.RawMessage

	mu      sync.Mutex
	replies []MockReply
	calls   []Request
}

func NewMock(replies ...MockReply) *Mock {
	return &Mock{replies: replies}
}

func (m *Mock) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)

	var r MockReply
	switch {
	case len(m.replies) > 0:
		r = m.replies[0]
		m.replies = m.replies[1:]
	case m.Fallback != nil:
		r = MockReply{Content: m.Fallback}
	default:
		return nil, &ErrUnavailable{}
	}
	if r.Err != nil {
		return nil, r.Err
	}
	if err := validateResponse(req.Schema, r.Content); err != nil {
		return nil, err
	}
	return &Response{Content: r.Content, Usage: r.Usage, Model: "mock"}, nil
}

func (m *Mock) ModelID() string { return "mock" }

// Queue appends replies.
func (m *Mock) Queue(replies ...MockReply) {
	m.mu.Lock()
	m.replies = append(m.replies, replies...)
	m.mu.Unlock()
}

// Calls returns a copy of the requests seen so far.
func (m *Mock) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.calls...)
}
