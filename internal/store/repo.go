package store

import (
	"context"
	"time"
)

// QueryOpts filters event queries.
type QueryOpts struct {
	Limit     int    // max results (0 = unlimited)
	SessionID string // only events for this quiz session
}

// PaymentEventData is one payment gate state transition.
type PaymentEventData struct {
	SessionID string
	From      string
	To        string
	Address   string
	TxHash    string
	Error     string
}

// PaymentEvent is a stored PaymentEventData.
type PaymentEvent struct {
	Sequence  int64
	Timestamp time.Time
	PaymentEventData
}

// ResultEventData records a completed quiz.
type ResultEventData struct {
	SessionID   string
	Score       int
	Category    string
	Revealed    bool
	DisplayName string
}

// ResultEvent is a stored ResultEventData.
type ResultEvent struct {
	Sequence  int64
	Timestamp time.Time
	ResultEventData
}

// LLMRequestEventData captures a single LLM request.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM requests sharing a purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo appends to and reads from the event log. Events are never
// updated or deleted. Queries return newest first.
type EventRepo interface {
	AppendPayment(ctx context.Context, data PaymentEventData) error
	AppendResult(ctx context.Context, data ResultEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	Payments(ctx context.Context, opts QueryOpts) ([]PaymentEvent, error)
	Results(ctx context.Context, opts QueryOpts) ([]ResultEvent, error)
	LLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
}
