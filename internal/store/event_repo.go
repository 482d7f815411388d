package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on the ent SQL driver and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *eventRepo) insert(ctx context.Context, table string, columns []string, values ...any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	cols := append([]string{"sequence", "timestamp"}, columns...)
	vals := append([]any{seqNum, time.Now().UnixMilli()}, values...)

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(table).
		Columns(cols...).
		Values(vals...).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func (r *eventRepo) AppendPayment(ctx context.Context, data PaymentEventData) error {
	return r.insert(ctx, "payment_events",
		[]string{"session_id", "from_state", "to_state", "address", "tx_hash", "error_message"},
		data.SessionID, data.From, data.To, data.Address, data.TxHash, data.Error,
	)
}

func (r *eventRepo) AppendResult(ctx context.Context, data ResultEventData) error {
	return r.insert(ctx, "result_events",
		[]string{"session_id", "score", "category", "revealed", "display_name"},
		data.SessionID, data.Score, data.Category, data.Revealed, data.DisplayName,
	)
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	return r.insert(ctx, "llm_events",
		[]string{"provider", "model", "purpose", "input_tokens", "output_tokens", "latency_ms", "success", "error_message"},
		data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
		data.LatencyMs, data.Success, data.ErrorMessage,
	)
}

func selectEvents(table string, opts QueryOpts, columns ...string) (string, []any) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(append([]string{"sequence", "timestamp"}, columns...)...).
		From(entsql.Table(table)).
		OrderBy(entsql.Desc("sequence"))
	if opts.SessionID != "" {
		sel = sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	return sel.Query()
}

func (r *eventRepo) Payments(ctx context.Context, opts QueryOpts) ([]PaymentEvent, error) {
	query, args := selectEvents("payment_events", opts,
		"session_id", "from_state", "to_state", "address", "tx_hash", "error_message")

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query payment events: %w", err)
	}
	defer rows.Close()

	var out []PaymentEvent
	for rows.Next() {
		var (
			e  PaymentEvent
			ts int64
		)
		if err := rows.Scan(&e.Sequence, &ts, &e.SessionID, &e.From, &e.To,
			&e.Address, &e.TxHash, &e.Error); err != nil {
			return nil, fmt.Errorf("scan payment event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) Results(ctx context.Context, opts QueryOpts) ([]ResultEvent, error) {
	query, args := selectEvents("result_events", opts,
		"session_id", "score", "category", "revealed", "display_name")

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query result events: %w", err)
	}
	defer rows.Close()

	var out []ResultEvent
	for rows.Next() {
		var (
			e  ResultEvent
			ts int64
		)
		if err := rows.Scan(&e.Sequence, &ts, &e.SessionID, &e.Score, &e.Category,
			&e.Revealed, &e.DisplayName); err != nil {
			return nil, fmt.Errorf("scan result event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	// llm_events has no session column.
	opts.SessionID = ""
	query, args := selectEvents("llm_events", opts,
		"provider", "model", "purpose", "input_tokens", "output_tokens",
		"latency_ms", "success", "error_message")

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEvent
	for rows.Next() {
		var (
			e  LLMRequestEvent
			ts int64
		)
		if err := rows.Scan(&e.Sequence, &ts, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan llm event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	const query = `SELECT purpose, COUNT(*), COALESCE(SUM(input_tokens), 0),
		COALESCE(SUM(output_tokens), 0), CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)
		FROM llm_events GROUP BY purpose ORDER BY purpose`

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, []any{}, &rows); err != nil {
		return nil, fmt.Errorf("query llm usage: %w", err)
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var u LLMUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan llm usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
