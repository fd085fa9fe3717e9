package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// eventRepo implements EventRepo backed by the llm_requests table and the
// global sequence counter.
type eventRepo struct {
	db     *sql.DB
	driver Driver
	seq    *sequenceCounter
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, rebind(r.driver, `INSERT INTO llm_requests
		(sequence, provider, model, purpose, input_tokens, output_tokens, latency_ms, cost_usd, success, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		seqNum, data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs, data.CostUSD,
		data.Success, data.ErrorMessage, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}

	return nil
}

func (r *eventRepo) RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, rebind(r.driver, `SELECT
		sequence, provider, model, purpose, input_tokens, output_tokens, latency_ms, cost_usd, success, error_message, created_at
		FROM llm_requests ORDER BY sequence DESC LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("query LLM request events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEvent
	for rows.Next() {
		var (
			ev      LLMRequestEvent
			created int64
		)
		if err := rows.Scan(&ev.Sequence, &ev.Provider, &ev.Model, &ev.Purpose,
			&ev.InputTokens, &ev.OutputTokens, &ev.LatencyMs, &ev.CostUSD, &ev.Success,
			&ev.ErrorMessage, &created); err != nil {
			return nil, fmt.Errorf("scan LLM request event: %w", err)
		}
		ev.Timestamp = time.UnixMilli(created).UTC()
		out = append(out, ev)
	}
	return out, rows.Err()
}
