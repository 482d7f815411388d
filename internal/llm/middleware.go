package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/signalquiz/internal/store"
)

// Retry wraps p with exponential backoff. Rate limits and unavailability
// are retried up to cfg.MaxAttempts; a schema mismatch is retried once.
func Retry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &retrying{inner: p, cfg: cfg, sleep: sleepCtx}
}

type retrying struct {
	inner Provider
	cfg   RetryConfig
	sleep func(context.Context, time.Duration) error
}

func (r *retrying) ModelID() string { return r.inner.ModelID() }

func (r *retrying) Generate(ctx context.Context, req Request) (*Response, error) {
	invalidSeen := false
	var err error
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !retryable(err, &invalidSeen) || attempt == r.cfg.MaxAttempts-1 {
			break
		}
		if serr := r.sleep(ctx, r.wait(attempt, err)); serr != nil {
			return nil, serr
		}
	}
	return nil, err
}

func retryable(err error, invalidSeen *bool) bool {
	var rl *ErrRateLimit
	var un *ErrUnavailable
	var inv *ErrInvalidResponse
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.As(err, &inv):
		if *invalidSeen {
			return false
		}
		*invalidSeen = true
		return true
	case errors.As(err, &rl), errors.As(err, &un):
		return true
	}
	return false
}

func (r *retrying) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	d := r.cfg.InitialWait << attempt
	if r.cfg.MaxWait > 0 && (d > r.cfg.MaxWait || d <= 0) {
		d = r.cfg.MaxWait
	}
	// up to 20% jitter
	if d > 0 {
		d += time.Duration(rand.Int64N(int64(d)/5 + 1))
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Journal records one row per provider call.
type Journal interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// Record wraps p so every call is written to j and logged. j may be nil.
func Record(p Provider, provider string, j Journal, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &recording{inner: p, provider: provider, journal: j, log: log}
}

type recording struct {
	inner    Provider
	provider string
	journal  Journal
	log      *zap.Logger
}

func (r *recording) ModelID() string { return r.inner.ModelID() }

func (r *recording) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := r.inner.Generate(ctx, req)
	latency := time.Since(start)

	ev := store.LLMRequestEventData{
		Provider:  r.provider,
		Model:     r.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: latency.Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
		r.log.Warn("llm request failed",
			zap.String("purpose", ev.Purpose), zap.Duration("latency", latency), zap.Error(err))
	} else {
		r.log.Debug("llm request",
			zap.String("purpose", ev.Purpose), zap.Duration("latency", latency),
			zap.Int("input_tokens", ev.InputTokens), zap.Int("output_tokens", ev.OutputTokens))
	}

	if r.journal != nil {
		if jerr := r.journal.AppendLLMRequest(context.WithoutCancel(ctx), ev); jerr != nil {
			r.log.Warn("journal llm request", zap.Error(jerr))
		}
	}
	return resp, err
}
